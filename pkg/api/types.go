package api

import (
	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/model"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordsResponse is the payload of the record listing
type RecordsResponse struct {
	Count   int            `json:"count"`
	Records []model.Record `json:"records"`
}

// RecordResponse is the payload for a single record
type RecordResponse struct {
	Index  int          `json:"index"`
	Record model.Record `json:"record"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr   string // listen address, host:port
	APIKey string // optional; when set every /api/v1 route requires X-API-Key
}

// RecordSource is the read-only view the server exposes.
// *store.Collection satisfies it.
type RecordSource interface {
	Len() int
	At(i int) (model.Record, error)
	Records() []model.Record
}

// reportSource is implemented by sources that carry a decode report
type reportSource interface {
	DecodeReport() *codec.Report
}
