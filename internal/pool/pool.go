// Package pool builds a pool of samples from a table of contents, selects
// the species that are well covered across the pool, and writes the pooled
// summary tables.
package pool

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/internal/sample"
	"github.com/me/iggpool/internal/schema"
	"github.com/me/iggpool/internal/tsv"
	"github.com/me/iggpool/pkg/model"
)

// Pool is the set of samples analyzed together in one run.
type Pool struct {
	SamplesList string
	OutDir      string
	DBType      model.DBType
	Layout      layout.Resolver
	Samples     []*sample.Sample

	logger *slog.Logger
}

// New reads the table of contents at samplesList and loads every sample's
// profile for dbtype. Any failure aborts the whole pool.
func New(samplesList, outDir string, dbtype model.DBType, logger *slog.Logger) (*Pool, error) {
	if !dbtype.Valid() {
		return nil, &model.PoolError{Code: model.ErrConfig, Op: "init pool", Err: fmt.Errorf("unknown db-type %q", dbtype)}
	}
	p := &Pool{
		SamplesList: samplesList,
		OutDir:      outDir,
		DBType:      dbtype,
		Layout:      layout.New(outDir, dbtype),
		logger:      logger.With("component", "pool", "db_type", dbtype.String()),
	}
	samples, err := p.initSamples()
	if err != nil {
		return nil, err
	}
	p.Samples = samples
	return p, nil
}

func (p *Pool) initSamples() ([]*sample.Sample, error) {
	rows, err := tsv.ReadFile(p.SamplesList, schema.SamplesPool())
	if err != nil {
		return nil, fmt.Errorf("read samples list: %w", err)
	}

	seen := make(map[string]int, len(rows))
	samples := make([]*sample.Sample, 0, len(rows))
	for i, row := range rows {
		name := row.String(schema.SampleName)
		line := i + 2
		if name == "" {
			return nil, tocRowErr(p.SamplesList, line, schema.SampleName, "empty sample name")
		}
		if prev, dup := seen[name]; dup {
			return nil, tocRowErr(p.SamplesList, line, schema.SampleName, fmt.Sprintf("duplicate sample %q (first on line %d)", name, prev))
		}
		seen[name] = line
		outDir := row.String(schema.MidasOutDir)
		if strings.TrimSpace(outDir) == "" {
			return nil, tocRowErr(p.SamplesList, line, schema.MidasOutDir, fmt.Sprintf("empty output directory for sample %q", name))
		}

		s := sample.New(name, outDir, p.DBType)
		if err := s.LoadProfile(); err != nil {
			return nil, err
		}
		p.logger.Debug("loaded sample profile", "sample", name, "species", len(s.SpeciesIDs()))
		samples = append(samples, s)
	}
	p.logger.Info("initialized pool", "samples", len(samples))
	return samples, nil
}

func tocRowErr(path string, line int, column, msg string) error {
	return &model.PoolError{
		Code: model.ErrSchema,
		Op:   "read samples list",
		Path: path,
		Err:  &model.RowError{Path: path, Line: line, Column: column, Message: msg},
	}
}

// SampleNames returns the sample names in table-of-contents order.
func (p *Pool) SampleNames() []string {
	names := make([]string, len(p.Samples))
	for i, s := range p.Samples {
		names[i] = s.Name
	}
	return names
}

// Path resolves a layout kind under the pool's workspace.
func (p *Pool) Path(k layout.Kind, speciesID, chunkID string) string {
	return p.Layout.Path(k, speciesID, chunkID)
}
