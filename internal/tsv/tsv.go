// Package tsv reads and writes tab-separated tables with a header row.
package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/me/iggpool/internal/schema"
	"github.com/me/iggpool/internal/stream"
	"github.com/me/iggpool/pkg/model"
)

// maxLine bounds a single table line.
const maxLine = 16 << 20

// Reader yields typed records for the columns of a schema, selected by
// header name. Extra columns in the file are ignored. Lines are split on
// tabs only; quotes carry no meaning. Blank lines are skipped.
type Reader struct {
	sc     *bufio.Scanner
	path   string
	schema *schema.Schema
	cols   []int // file column for each schema field
	width  int
	line   int
}

// NewReader reads the header from r and maps it onto s. path is used only
// in error messages.
func NewReader(r io.Reader, path string, s *schema.Schema) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	rd := &Reader{sc: sc, path: path, schema: s}

	header, err := rd.scan()
	if err == io.EOF {
		return nil, schemaErr(path, &model.RowError{Path: path, Line: 1, Message: "missing header"})
	}
	if err != nil {
		return nil, err
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if prev, dup := pos[name]; dup {
			return nil, schemaErr(path, &model.RowError{
				Path:    path,
				Line:    rd.line,
				Column:  name,
				Message: fmt.Sprintf("duplicate column in header (fields %d and %d)", prev+1, i+1),
			})
		}
		pos[name] = i
	}
	cols := make([]int, s.Len())
	for i, name := range s.Names() {
		c, ok := pos[name]
		if !ok {
			return nil, schemaErr(path, &model.RowError{Path: path, Line: rd.line, Column: name, Message: "required column missing from header"})
		}
		cols[i] = c
	}
	rd.cols = cols
	rd.width = len(header)
	return rd, nil
}

// scan returns the fields of the next non-blank line.
func (r *Reader) scan() ([]string, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimSuffix(r.sc.Text(), "\r")
		if line == "" {
			continue
		}
		return strings.Split(line, "\t"), nil
	}
	if err := r.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, schemaErr(r.path, &model.RowError{Path: r.path, Line: r.line + 1, Message: "line too long"})
		}
		return nil, &model.PoolError{Code: model.ErrIO, Op: "read table", Path: r.path, Err: err}
	}
	return nil, io.EOF
}

func schemaErr(path string, err error) error {
	return &model.PoolError{Code: model.ErrSchema, Op: "read table", Path: path, Err: err}
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (schema.Record, error) {
	row, err := r.scan()
	if err != nil {
		return schema.Record{}, err
	}
	if len(row) != r.width {
		return schema.Record{}, schemaErr(r.path, &model.RowError{
			Path:    r.path,
			Line:    r.line,
			Message: fmt.Sprintf("expected %d fields, got %d", r.width, len(row)),
		})
	}

	values := make([]any, len(r.cols))
	fields := r.schema.Fields()
	for i, c := range r.cols {
		v, err := r.schema.Parse(i, row[c])
		if err != nil {
			return schema.Record{}, schemaErr(r.path, &model.RowError{Path: r.path, Line: r.line, Column: fields[i].Name, Message: err.Error()})
		}
		values[i] = v
	}
	return schema.NewRecord(r.schema, values), nil
}

// ReadFile reads every record of the table at path.
func ReadFile(path string, s *schema.Schema) ([]schema.Record, error) {
	in, err := stream.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	r, err := NewReader(in, path, s)
	if err != nil {
		return nil, err
	}
	var records []schema.Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Writer writes tab-joined rows. Fields are written verbatim.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRow writes one line. After the first failure every call is a no-op
// and Err reports it.
func (w *Writer) WriteRow(fields ...string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, strings.Join(fields, "\t")+"\n")
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}
