package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/logging"
	"github.com/cqusn/smartcar/pkg/model"
)

// FileStore persists records to a single text file
type FileStore struct {
	config FileStoreConfig
	codec  *codec.RecordCodec
	logger *zap.Logger
}

// NewFileStore creates a file store. A nil logger disables logging.
func NewFileStore(config FileStoreConfig, logger *zap.Logger) *FileStore {
	return &FileStore{
		config: config,
		codec:  codec.NewRecordCodec(config.Policy),
		logger: logging.OrNop(logger).With(zap.String("path", config.Path)),
	}
}

// Path returns the record file path
func (s *FileStore) Path() string {
	return s.config.Path
}

// Save replaces the file contents with the given records. The records are encoded
// before the file is touched, so an encoding error leaves the file unchanged.
func (s *FileStore) Save(cars []model.Car, students []model.Student) error {
	text, err := s.codec.Encode(cars, students)
	if err != nil {
		s.logger.Warn("failed to encode records", zap.Error(err))
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if dir := filepath.Dir(s.config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return s.unavailable("write", err)
		}
	}

	file, err := os.OpenFile(s.config.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return s.unavailable("write", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(text); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if s.config.Fsync {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("failed to sync record file: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close record file: %w", err)
	}

	s.logger.Info("saved records", zap.Int("records", len(cars)), zap.Int("bytes", len(text)))
	return nil
}

// Load reads every record from the file. When the file cannot be opened it returns
// an empty collection and an error wrapping ErrStorageUnavailable.
func (s *FileStore) Load() (*Collection, error) {
	file, err := os.Open(s.config.Path)
	if err != nil {
		return emptyCollection(), s.unavailable("read", err)
	}
	defer file.Close()

	cars, students, report, err := s.codec.Read(bufio.NewReader(file))
	if err != nil {
		s.logger.Warn("failed to decode records", zap.Error(err))
		return emptyCollection(), fmt.Errorf("failed to decode %s: %w", s.config.Path, err)
	}

	fields := []zap.Field{
		zap.Int("records", report.Records),
		zap.Int("defaulted", len(report.Defaulted)),
		zap.Int("skipped", len(report.Skipped)),
	}
	if report.Clean() {
		s.logger.Info("loaded records", fields...)
	} else {
		s.logger.Warn("loaded records with malformed input", fields...)
	}

	return &Collection{Cars: cars, Students: students, Report: report}, nil
}

func (s *FileStore) unavailable(op string, err error) error {
	s.logger.Error("record file unavailable", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: cannot open %s for %s: %w", ErrStorageUnavailable, s.config.Path, op, err)
}
