// Package archive keeps point-in-time snapshots of the record file in a pebble database.
//
// Each snapshot is identified by a KSUID, so listing snapshots in key order lists
// them by creation time. Records are stored one line per key in the same text
// format as the record file:
//
//	meta/<ksuid>            JSON SnapshotInfo
//	rec/<ksuid>/<00000000>  encoded line of record 0
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/logging"
	"github.com/cqusn/smartcar/pkg/model"
	"github.com/cqusn/smartcar/pkg/store"
)

const (
	metaPrefix   = "meta/"
	recordPrefix = "rec/"
)

var (
	// ErrSnapshotNotFound is returned for ids with no stored snapshot
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrCorruptSnapshot is returned when stored records disagree with the metadata
	ErrCorruptSnapshot = errors.New("snapshot is corrupt")
)

// SnapshotInfo describes one stored snapshot
type SnapshotInfo struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Records int       `json:"records"`
	Source  string    `json:"source,omitempty"`
}

// Options configures an Archive
type Options struct {
	Dir    string
	Policy codec.Policy
	Logger *zap.Logger
}

// Archive stores record snapshots
type Archive struct {
	db     *pebble.DB
	codec  *codec.RecordCodec
	logger *zap.Logger
	newID  func() (ksuid.KSUID, error)
}

// Open opens or creates the archive database in opts.Dir
func Open(opts Options) (*Archive, error) {
	if err := os.MkdirAll(opts.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}

	db, err := pebble.Open(opts.Dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	return &Archive{
		db:     db,
		codec:  codec.NewRecordCodec(opts.Policy),
		logger: logging.OrNop(opts.Logger).With(zap.String("archive", opts.Dir)),
		newID:  ksuid.NewRandom,
	}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// Snapshot stores the records under a new id in a single synced batch
func (a *Archive) Snapshot(cars []model.Car, students []model.Student, source string) (SnapshotInfo, error) {
	records, err := model.Pair(cars, students)
	if err != nil {
		return SnapshotInfo{}, err
	}

	id, err := a.newID()
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to generate snapshot id: %w", err)
	}

	info := SnapshotInfo{
		ID:      id.String(),
		Created: id.Time().UTC(),
		Records: len(records),
		Source:  source,
	}

	batch := a.db.NewBatch()
	defer batch.Close()

	for i, rec := range records {
		line, err := a.codec.EncodeRecord(rec)
		if err != nil {
			return SnapshotInfo{}, fmt.Errorf("record %d: %w", i, err)
		}
		if err := batch.Set(recordKey(info.ID, i), []byte(line), nil); err != nil {
			return SnapshotInfo{}, fmt.Errorf("failed to stage record %d: %w", i, err)
		}
	}

	meta, err := json.Marshal(info)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to marshal snapshot info: %w", err)
	}
	if err := batch.Set(metaKey(info.ID), meta, nil); err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to stage snapshot info: %w", err)
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	a.logger.Info("stored snapshot", zap.String("id", info.ID), zap.Int("records", info.Records))
	return info, nil
}

// Get returns the metadata of one snapshot
func (a *Archive) Get(id string) (SnapshotInfo, error) {
	if _, err := ksuid.Parse(id); err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: invalid id %q: %v", ErrSnapshotNotFound, id, err)
	}

	data, closer, err := a.db.Get(metaKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return SnapshotInfo{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return SnapshotInfo{}, fmt.Errorf("failed to read snapshot info: %w", err)
	}
	defer closer.Close()

	var info SnapshotInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return SnapshotInfo{}, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, id, err)
	}
	return info, nil
}

// List returns every snapshot, oldest first
func (a *Archive) List() ([]SnapshotInfo, error) {
	iter, err := a.db.NewIter(prefixBounds(metaPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	defer iter.Close()

	snapshots := []SnapshotInfo{}
	for iter.First(); iter.Valid(); iter.Next() {
		var info SnapshotInfo
		if err := json.Unmarshal(iter.Value(), &info); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, iter.Key(), err)
		}
		snapshots = append(snapshots, info)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

// Restore decodes a snapshot back into a collection
func (a *Archive) Restore(id string) (*store.Collection, error) {
	info, err := a.Get(id)
	if err != nil {
		return nil, err
	}

	iter, err := a.db.NewIter(prefixBounds(recordPrefix + id + "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot records: %w", err)
	}
	defer iter.Close()

	var sb strings.Builder
	for iter.First(); iter.Valid(); iter.Next() {
		sb.Write(iter.Value())
		sb.WriteByte('\n')
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot records: %w", err)
	}

	cars, students, report, err := a.codec.Decode(sb.String())
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	if len(cars)+len(report.Skipped) != info.Records {
		return nil, fmt.Errorf("%w: %s has %d records, metadata says %d", ErrCorruptSnapshot, id, len(cars), info.Records)
	}

	a.logger.Info("restored snapshot", zap.String("id", id), zap.Int("records", len(cars)))
	return &store.Collection{Cars: cars, Students: students, Report: report}, nil
}

// Delete removes a snapshot and its records
func (a *Archive) Delete(id string) error {
	if _, err := a.Get(id); err != nil {
		return err
	}

	bounds := prefixBounds(recordPrefix + id + "/")
	batch := a.db.NewBatch()
	defer batch.Close()

	if err := batch.DeleteRange(bounds.LowerBound, bounds.UpperBound, nil); err != nil {
		return fmt.Errorf("failed to stage record deletion: %w", err)
	}
	if err := batch.Delete(metaKey(id), nil); err != nil {
		return fmt.Errorf("failed to stage snapshot deletion: %w", err)
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	a.logger.Info("deleted snapshot", zap.String("id", id))
	return nil
}

func metaKey(id string) []byte {
	return []byte(metaPrefix + id)
}

func recordKey(id string, index int) []byte {
	return []byte(fmt.Sprintf("%s%s/%08d", recordPrefix, id, index))
}

func prefixBounds(prefix string) *pebble.IterOptions {
	lower := []byte(prefix)
	return &pebble.IterOptions{
		LowerBound: lower,
		UpperBound: append([]byte(prefix), 0xFF),
	}
}
