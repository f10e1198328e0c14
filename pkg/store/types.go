package store

import (
	"fmt"

	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/model"
)

// FileStoreConfig holds configuration for the text file store
type FileStoreConfig struct {
	Path   string       // Path to the record file
	Policy codec.Policy // Malformed input policy, permissive if empty
	Fsync  bool         // Sync the file before closing it on save
}

// Errors
var (
	ErrStorageUnavailable = &StoreError{"storage unavailable"}
	ErrIndexOutOfRange    = &StoreError{"record index out of range"}
)

// StoreError represents a record store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// Collection is a decoded set of records. Cars and Students are aligned by index.
type Collection struct {
	Cars     []model.Car     `json:"cars"`
	Students []model.Student `json:"students"`
	Report   *codec.Report   `json:"report,omitempty"`
}

// NewCollection pairs cars and students into a collection
func NewCollection(cars []model.Car, students []model.Student) (*Collection, error) {
	if len(cars) != len(students) {
		return nil, fmt.Errorf("%w: %d cars, %d students", model.ErrLengthMismatch, len(cars), len(students))
	}
	return &Collection{Cars: cars, Students: students, Report: &codec.Report{Records: len(cars)}}, nil
}

func emptyCollection() *Collection {
	return &Collection{Cars: []model.Car{}, Students: []model.Student{}, Report: &codec.Report{}}
}

// Len returns the number of records
func (c *Collection) Len() int {
	return len(c.Cars)
}

// At returns the i-th record
func (c *Collection) At(i int) (model.Record, error) {
	if i < 0 || i >= c.Len() {
		return model.Record{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, c.Len())
	}
	return model.Record{Car: c.Cars[i], Student: c.Students[i]}, nil
}

// Records returns the collection as car/student pairs
func (c *Collection) Records() []model.Record {
	records := make([]model.Record, c.Len())
	for i := range records {
		records[i] = model.Record{Car: c.Cars[i], Student: c.Students[i]}
	}
	return records
}

// DecodeReport returns the report of the decode that produced the collection
func (c *Collection) DecodeReport() *codec.Report {
	return c.Report
}
