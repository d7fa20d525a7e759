// Package sample holds one sample's per-species profile as produced by the
// single-sample stage of the pipeline.
package sample

import (
	"fmt"

	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/internal/schema"
	"github.com/me/iggpool/internal/tsv"
	"github.com/me/iggpool/pkg/model"
)

// Sample is a named sample bound to its own output root.
type Sample struct {
	Name   string
	OutDir string
	DBType model.DBType

	profile map[string]schema.Record
	species []string // profile row order
}

// New creates a Sample. The profile is empty until LoadProfile.
func New(name, outDir string, dbtype model.DBType) *Sample {
	return &Sample{Name: name, OutDir: outDir, DBType: dbtype}
}

// SummaryPath returns the sample's profile table for its db-type.
func (s *Sample) SummaryPath() string {
	return layout.SampleSummary(s.OutDir, s.Name, s.DBType)
}

// LoadProfile reads the sample's profile table into memory.
func (s *Sample) LoadProfile() error {
	sch, err := schema.ForDBType(s.DBType)
	if err != nil {
		return err
	}
	path := s.SummaryPath()
	records, err := tsv.ReadFile(path, sch)
	if err != nil {
		return fmt.Errorf("load profile of sample %s: %w", s.Name, err)
	}
	return s.setProfile(path, records)
}

func (s *Sample) setProfile(path string, records []schema.Record) error {
	profile := make(map[string]schema.Record, len(records))
	species := make([]string, 0, len(records))
	for i, rec := range records {
		id := rec.String(schema.SpeciesID)
		if _, dup := profile[id]; dup {
			return &model.PoolError{
				Code: model.ErrSchema,
				Op:   "load profile",
				Path: path,
				Err:  &model.RowError{Path: path, Line: i + 2, Column: schema.SpeciesID, Message: fmt.Sprintf("duplicate species %q", id)},
			}
		}
		profile[id] = rec
		species = append(species, id)
	}
	s.profile = profile
	s.species = species
	return nil
}

// Profile returns the record for speciesID.
func (s *Sample) Profile(speciesID string) (schema.Record, bool) {
	rec, ok := s.profile[speciesID]
	return rec, ok
}

// SpeciesIDs returns the profiled species in file order.
func (s *Sample) SpeciesIDs() []string {
	return s.species
}

// FromRecords builds a Sample with an already-parsed profile.
func FromRecords(name, outDir string, dbtype model.DBType, records []schema.Record) (*Sample, error) {
	s := New(name, outDir, dbtype)
	if err := s.setProfile("<memory>", records); err != nil {
		return nil, err
	}
	return s, nil
}
