package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestPoolError_Error(t *testing.T) {
	err := &PoolError{Code: ErrIO, Op: "load profile", Path: "/tmp/s1/snps/output/summary.tsv", Err: fs.ErrNotExist}
	want := "IO_ERROR: load profile /tmp/s1/snps/output/summary.tsv: file does not exist"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPoolError_Unwrap(t *testing.T) {
	err := fmt.Errorf("init pool: %w", &PoolError{Code: ErrIO, Op: "open", Err: fs.ErrNotExist})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected errors.Is to find fs.ErrNotExist")
	}
	if !errors.Is(err, &PoolError{Code: ErrIO}) {
		t.Error("expected errors.Is to match on code")
	}
	if errors.Is(err, &PoolError{Code: ErrSchema}) {
		t.Error("did not expect a SCHEMA_ERROR match")
	}
	var pe *PoolError
	if !errors.As(err, &pe) || pe.Op != "open" {
		t.Errorf("errors.As = %v, want op open", pe)
	}
}

func TestRowError_Error(t *testing.T) {
	tests := []struct {
		err  *RowError
		want string
	}{
		{&RowError{Path: "toc.tsv", Line: 3, Message: "expected 2 fields, got 1"}, "toc.tsv:3: expected 2 fields, got 1"},
		{&RowError{Path: "s.tsv", Line: 2, Column: "mean_coverage", Message: "invalid float"}, "s.tsv:2: column mean_coverage: invalid float"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid filter",
		FieldError{Field: "genome_depth", Message: "must be >= 0"},
		FieldError{Field: "sample_counts", Message: "must be >= 0"},
	)
	if len(err.Details) != 2 {
		t.Fatalf("Details length = %d, want 2", len(err.Details))
	}
	want := "invalid filter: genome_depth: must be >= 0; sample_counts: must be >= 0"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseDBType(t *testing.T) {
	tests := []struct {
		input    string
		want     DBType
		wantErr  bool
		coverage bool
	}{
		{"snps", DBTypeSNPs, false, true},
		{"genes", DBTypeGenes, false, false},
		{"species", "", true, false},
		{"", "", true, false},
	}
	for _, tt := range tests {
		got, err := ParseDBType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDBType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDBType(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got.RequiresCoverage() != tt.coverage {
			t.Errorf("%q.RequiresCoverage() = %v, want %v", got, got.RequiresCoverage(), tt.coverage)
		}
	}
}
