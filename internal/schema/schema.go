// Package schema defines the column layouts of the per-sample profile tables,
// the samples-pool table of contents, and the pooled summary.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/me/iggpool/pkg/model"
)

// Column names shared across schemas.
const (
	SpeciesID       = "species_id"
	SampleName      = "sample_name"
	MidasOutDir     = "midas_outdir"
	MeanCoverage    = "mean_coverage"
	FractionCovered = "fraction_covered"
)

// Type is the value type of a column.
type Type int

const (
	String Type = iota
	Int
	Float
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return "string"
}

// Field is one named, typed column.
type Field struct {
	Name string
	Type Type
}

// Schema is an ordered set of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from fields in column order.
func New(fields ...Field) *Schema {
	s := &Schema{fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

// Fields returns the fields in column order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Index returns the column position of name, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Parse converts raw column text to a typed value for field i.
func (s *Schema) Parse(i int, raw string) (any, error) {
	switch s.fields[i].Type {
	case Int:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q", raw)
		}
		return v, nil
	case Float:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", raw)
		}
		return v, nil
	}
	return raw, nil
}

var (
	snpsProfile = New(
		Field{SpeciesID, String},
		Field{"genome_length", Int},
		Field{"covered_bases", Int},
		Field{"total_depth", Int},
		Field{"aligned_reads", Int},
		Field{"mapped_reads", Int},
		Field{FractionCovered, Float},
		Field{MeanCoverage, Float},
	)

	genesProfile = New(
		Field{SpeciesID, String},
		Field{"pangenome_size", Int},
		Field{"covered_genes", Int},
		Field{FractionCovered, Float},
		Field{MeanCoverage, Float},
		Field{"marker_coverage", Float},
		Field{"aligned_reads", Int},
		Field{"mapped_reads", Int},
	)

	samplesPool = New(
		Field{SampleName, String},
		Field{MidasOutDir, String},
	)
)

// ForDBType returns the per-sample profile schema for a db-type.
func ForDBType(dbtype model.DBType) (*Schema, error) {
	switch dbtype {
	case model.DBTypeSNPs:
		return snpsProfile, nil
	case model.DBTypeGenes:
		return genesProfile, nil
	}
	return nil, &model.PoolError{
		Code: model.ErrSchema,
		Op:   "fetch schema",
		Err:  fmt.Errorf("no profile schema for db-type %q", dbtype),
	}
}

// SamplesPool returns the table-of-contents schema.
func SamplesPool() *Schema {
	return samplesPool
}

// Pooled returns the pooled summary schema derived from a profile schema:
// the profile's id column, sample_name, then the remaining profile columns.
func Pooled(profile *Schema) *Schema {
	fields := make([]Field, 0, profile.Len()+1)
	fields = append(fields, profile.fields[0], Field{SampleName, String})
	fields = append(fields, profile.fields[1:]...)
	return New(fields...)
}

// FormatData renders a value for output. Floats get three decimals.
func FormatData(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 3, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
