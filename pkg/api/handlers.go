package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/logging"
	"github.com/cqusn/smartcar/pkg/store"
)

// Server holds the API server state
type Server struct {
	source  RecordSource
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server over source. The records are read-only.
func NewServer(source RecordSource, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	s := &Server{
		source:  source,
		config:  config,
		metrics: metrics,
		logger:  logging.OrNop(logger),
	}

	var report *codec.Report
	if rs, ok := source.(reportSource); ok {
		report = rs.DecodeReport()
	}
	metrics.RecordLoad(source.Len(), report)

	return s
}

// handleHealth reports that the server is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListRecords returns every record in file order
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, RecordsResponse{
		Count:   s.source.Len(),
		Records: s.source.Records(),
	})
}

// handleGetRecord returns the record at {index}
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		sendError(w, "Index must be an integer", http.StatusBadRequest)
		return
	}

	rec, err := s.source.At(index)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("failed to read record", zap.Int("index", index), zap.Error(err))
		sendError(w, "Failed to read record", http.StatusInternalServerError)
		return
	}

	sendSuccess(w, RecordResponse{Index: index, Record: rec})
}

// handleSchema returns the ordered line layout
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, codec.Fields())
}

// handleReport returns the decode report of the served collection
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.source.(reportSource)
	if !ok || rs.DecodeReport() == nil {
		sendSuccess(w, &codec.Report{Records: s.source.Len()})
		return
	}
	sendSuccess(w, rs.DecodeReport())
}
