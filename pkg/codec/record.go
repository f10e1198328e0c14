package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cqusn/smartcar/pkg/model"
)

// Policy selects how malformed input is handled
type Policy string

const (
	// PolicyPermissive turns unparsable numbers into zero and skips short lines,
	// recording both in the Report.
	PolicyPermissive Policy = "permissive"
	// PolicyStrict fails the whole decode on the first malformed field or line,
	// and refuses to encode text containing a separator.
	PolicyStrict Policy = "strict"
)

// ParsePolicy parses a policy name. The empty string selects PolicyPermissive.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown codec policy %q (want %q or %q)", s, PolicyPermissive, PolicyStrict)
	}
}

// Report summarizes what a decode had to tolerate
type Report struct {
	Lines     int           `json:"lines"`
	Records   int           `json:"records"`
	Defaulted []*FieldError `json:"defaulted,omitempty"`
	Skipped   []*LineError  `json:"skipped,omitempty"`
}

// Clean reports whether every line decoded without defaulting or skipping
func (r *Report) Clean() bool {
	return len(r.Defaulted) == 0 && len(r.Skipped) == 0
}

// RecordCodec converts records to and from the line format
type RecordCodec struct {
	policy Policy
}

// NewRecordCodec creates a codec with the given policy. An empty policy is permissive.
func NewRecordCodec(policy Policy) *RecordCodec {
	if policy == "" {
		policy = PolicyPermissive
	}
	return &RecordCodec{policy: policy}
}

// Policy returns the codec's malformed-input policy
func (c *RecordCodec) Policy() Policy {
	return c.policy
}

// EncodeRecord renders one record as a line without the terminator
func (c *RecordCodec) EncodeRecord(rec model.Record) (string, error) {
	fields := make([]string, len(layout))
	for i, col := range layout {
		switch col.kind {
		case kindText:
			v := *col.text(&rec)
			if c.policy == PolicyStrict && strings.ContainsAny(v, ",;\n\r") {
				return "", &FieldError{Field: col.name, Value: v, Err: ErrReservedCharacter}
			}
			fields[i] = v
		case kindInt:
			fields[i] = strconv.Itoa(*col.num(&rec))
		case kindFloat:
			fields[i] = strconv.FormatFloat(*col.float(&rec), 'f', -1, 64)
		case kindTires:
			tires := *col.tires(&rec)
			if c.policy == PolicyStrict {
				for j, t := range tires {
					if strings.ContainsAny(t.Model, ",;\n\r") {
						return "", &FieldError{Field: fmt.Sprintf("tires[%d].model", j), Value: t.Model, Err: ErrReservedCharacter}
					}
				}
			}
			fields[i] = FormatTires(tires)
		}
	}
	return strings.Join(fields, fieldSep), nil
}

// Encode renders the paired sequences, one newline-terminated line per record
func (c *RecordCodec) Encode(cars []model.Car, students []model.Student) (string, error) {
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, cars, students); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write encodes to w. Nothing is written unless every record encodes.
func (c *RecordCodec) Write(w io.Writer, cars []model.Car, students []model.Student) error {
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, cars, students); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *RecordCodec) encodeTo(buf *bytes.Buffer, cars []model.Car, students []model.Student) error {
	records, err := model.Pair(cars, students)
	if err != nil {
		return err
	}
	for i, rec := range records {
		line, err := c.EncodeRecord(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		buf.WriteString(line)
		buf.WriteString(lineSep)
	}
	return nil
}

// Decode parses text produced by Encode
func (c *RecordCodec) Decode(text string) ([]model.Car, []model.Student, *Report, error) {
	return c.Read(strings.NewReader(text))
}

// Read decodes every line from r. Lines have no length limit and blank lines are
// skipped. Under PolicyStrict the first malformed line aborts the decode and no
// records are returned.
func (c *RecordCodec) Read(r io.Reader) ([]model.Car, []model.Student, *Report, error) {
	cars := []model.Car{}
	students := []model.Student{}
	report := &Report{}

	br := bufio.NewReader(r)

	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, nil, report, fmt.Errorf("failed to read records: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}

		lineNo++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, lineSep), "\r")
		if line != "" {
			report.Lines++

			rec, err := c.decodeLine(lineNo, line, report)
			if err != nil {
				var lineErr *LineError
				if c.policy != PolicyPermissive || !errors.As(err, &lineErr) {
					return nil, nil, report, err
				}
				report.Skipped = append(report.Skipped, lineErr)
			} else {
				cars = append(cars, rec.Car)
				students = append(students, rec.Student)
				report.Records++
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	return cars, students, report, nil
}

// decodeLine maps the comma segments of a line onto layout. Columns after the
// tire block are counted from the end, so the block takes whatever is left over.
func (c *RecordCodec) decodeLine(lineNo int, line string, report *Report) (model.Record, error) {
	var rec model.Record

	parts := strings.Split(line, fieldSep)
	extra := len(parts) - len(layout)
	if extra < 0 {
		return rec, &LineError{Line: lineNo, Fields: len(parts), Err: ErrTooFewFields}
	}

	p := &numParser{policy: c.policy, line: lineNo, report: report}
	for i, col := range layout {
		j := i
		if i > tireSlot {
			j = i + extra
		}

		switch col.kind {
		case kindText:
			*col.text(&rec) = parts[j]
		case kindInt:
			n, err := p.atoi(col.name, parts[j])
			if err != nil {
				return rec, err
			}
			*col.num(&rec) = n
		case kindFloat:
			f, err := p.parseFloat(col.name, parts[j])
			if err != nil {
				return rec, err
			}
			*col.float(&rec) = f
		case kindTires:
			block := strings.Join(parts[i:i+extra+1], fieldSep)
			tires, err := parseTires(block, p.atoi)
			if err != nil {
				return rec, err
			}
			*col.tires(&rec) = tires
		}
	}

	return rec, nil
}

// numParser applies the policy to numeric segments
type numParser struct {
	policy Policy
	line   int
	report *Report
}

func (p *numParser) atoi(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, p.empty(field)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.malformed(field, s, err)
	}
	return n, nil
}

func (p *numParser) parseFloat(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, p.empty(field)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.malformed(field, s, err)
	}
	return f, nil
}

func (p *numParser) empty(field string) error {
	if p.policy == PolicyStrict {
		return &FieldError{Line: p.line, Field: field, Err: ErrEmptyNumber}
	}
	return nil
}

func (p *numParser) malformed(field, value string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	fe := &FieldError{Line: p.line, Field: field, Value: value, Err: err}
	if p.policy == PolicyStrict {
		return fe
	}
	if p.report != nil {
		p.report.Defaulted = append(p.report.Defaulted, fe)
	}
	return nil
}

var defaultCodec = NewRecordCodec(PolicyPermissive)

// Encode renders records with the permissive codec
func Encode(cars []model.Car, students []model.Student) (string, error) {
	return defaultCodec.Encode(cars, students)
}

// Decode parses records with the permissive codec
func Decode(text string) ([]model.Car, []model.Student, error) {
	cars, students, _, err := defaultCodec.Decode(text)
	return cars, students, err
}
