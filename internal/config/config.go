package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/me/iggpool/pkg/model"
)

// SpeciesList is an allow-set of species ids. In YAML it may be written as
// a comma-separated string or as a sequence.
type SpeciesList []string

// ParseSpeciesList splits a comma-separated list, dropping empty entries.
func ParseSpeciesList(s string) SpeciesList {
	var out SpeciesList
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// UnmarshalYAML accepts a scalar or a sequence.
func (l *SpeciesList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = ParseSpeciesList(node.Value)
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*l = ParseSpeciesList(strings.Join(ids, ","))
		return nil
	}
	return fmt.Errorf("line %d: species_list must be a string or a list", node.Line)
}

// Set returns the list as a lookup set, or nil when the list is empty
// (no restriction).
func (l SpeciesList) Set() map[string]bool {
	if len(l) == 0 {
		return nil
	}
	set := make(map[string]bool, len(l))
	for _, id := range l {
		set[id] = true
	}
	return set
}

// String returns the comma-separated form.
func (l SpeciesList) String() string {
	return strings.Join(l, ",")
}

// FilterConfig holds the species selection thresholds.
type FilterConfig struct {
	SpeciesList    SpeciesList `yaml:"species_list,omitempty"`
	GenomeDepth    float64     `yaml:"genome_depth"`    // min mean_coverage per sample-species pair
	GenomeCoverage float64     `yaml:"genome_coverage"` // min fraction_covered, snps only
	SampleCounts   int         `yaml:"sample_counts"`   // min qualifying samples per species
}

// DefaultFilterConfig returns the merge defaults for a db-type.
func DefaultFilterConfig(dbtype model.DBType) FilterConfig {
	if dbtype == model.DBTypeGenes {
		return FilterConfig{GenomeDepth: 1.0, SampleCounts: 1}
	}
	return FilterConfig{GenomeDepth: 5.0, GenomeCoverage: 0.4, SampleCounts: 2}
}

// Validate checks the thresholds.
func (f FilterConfig) Validate() error {
	var details []model.FieldError
	if f.GenomeDepth < 0 {
		details = append(details, model.FieldError{Field: "genome_depth", Message: "must be >= 0"})
	}
	if f.GenomeCoverage < 0 || f.GenomeCoverage > 1 {
		details = append(details, model.FieldError{Field: "genome_coverage", Message: "must be within [0, 1]"})
	}
	if f.SampleCounts < 0 {
		details = append(details, model.FieldError{Field: "sample_counts", Message: "must be >= 0"})
	}
	if len(details) > 0 {
		return model.NewValidationError("invalid filter", details...)
	}
	return nil
}

// MergeConfig holds everything a pool merge needs.
type MergeConfig struct {
	SamplesList string       `yaml:"samples_list"` // table of contents
	OutDir      string       `yaml:"outdir"`       // pooled workspace root
	DBType      model.DBType `yaml:"db_type"`
	Debug       bool         `yaml:"debug"` // reuse existing temp data
	Filter      FilterConfig `yaml:"filter"`
}

// DefaultMergeConfig returns defaults for a db-type.
func DefaultMergeConfig(dbtype model.DBType) MergeConfig {
	return MergeConfig{DBType: dbtype, Filter: DefaultFilterConfig(dbtype)}
}

// LoadFile reads a YAML merge config. Keys absent from the file keep the
// values already in base.
func LoadFile(path string, base MergeConfig) (MergeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, &model.PoolError{Code: model.ErrIO, Op: "read config", Path: path, Err: err}
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, &model.PoolError{Code: model.ErrConfig, Op: "parse config", Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks required fields and the filter.
func (c MergeConfig) Validate() error {
	var details []model.FieldError
	if c.SamplesList == "" {
		details = append(details, model.FieldError{Field: "samples_list", Message: "required"})
	}
	if c.OutDir == "" {
		details = append(details, model.FieldError{Field: "outdir", Message: "required"})
	}
	if !c.DBType.Valid() {
		details = append(details, model.FieldError{Field: "db_type", Message: fmt.Sprintf("unknown db-type %q", c.DBType)})
	}
	if err := c.Filter.Validate(); err != nil {
		if ve, ok := err.(*model.ValidationError); ok {
			details = append(details, ve.Details...)
		}
	}
	if len(details) > 0 {
		return model.NewValidationError("invalid merge config", details...)
	}
	return nil
}
