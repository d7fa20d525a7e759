// Package manifest records what a pool merge selected, so later stages and
// people can tell which run produced a workspace and with which filters.
package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/me/iggpool/internal/config"
	"github.com/me/iggpool/internal/pool"
	"github.com/me/iggpool/internal/stream"
	"github.com/me/iggpool/pkg/model"
)

// Manifest is the YAML record of one merge.
type Manifest struct {
	RunID       string              `yaml:"run_id"`
	CreatedAt   time.Time           `yaml:"created_at"`
	DBType      model.DBType        `yaml:"db_type"`
	SamplesList string              `yaml:"samples_list"`
	Summary     string              `yaml:"summary"`
	Filter      config.FilterConfig `yaml:"filter"`
	Samples     []string            `yaml:"samples"`
	Species     []Species           `yaml:"species"`
	Phases      []Phase             `yaml:"phases,omitempty"`
	Duration    string              `yaml:"duration,omitempty"`
}

// Species is one selected species.
type Species struct {
	ID          string    `yaml:"species_id"`
	SampleCount int       `yaml:"sample_count"`
	Samples     []string  `yaml:"samples"`
	Depths      []float64 `yaml:"depths,flow"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return "run_" + uuid.New().String()
}

// New builds the manifest of a finished merge.
func New(runID string, p *pool.Pool, f config.FilterConfig, sel *pool.Selection, summaryPath string) *Manifest {
	m := &Manifest{
		RunID:       runID,
		CreatedAt:   time.Now().UTC(),
		DBType:      p.DBType,
		SamplesList: p.SamplesList,
		Summary:     summaryPath,
		Filter:      f,
		Samples:     p.SampleNames(),
		Species:     make([]Species, 0, sel.Len()),
	}
	for _, sp := range sel.Species() {
		m.Species = append(m.Species, Species{
			ID:          sp.ID,
			SampleCount: sp.Count(),
			Samples:     sp.SampleNames(),
			Depths:      sp.Depths,
		})
	}
	return m
}

// SetTiming attaches the phases recorded by timer and ends it.
func (m *Manifest) SetTiming(timer *PhaseTimer) {
	phases, total := timer.Finish()
	m.Phases = phases
	m.Duration = formatDuration(total)
}

// Write stores the manifest at path, replacing any previous one atomically.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	out, err := stream.Create(path)
	if err != nil {
		return err
	}
	defer out.Abort()
	if _, err := out.Write(data); err != nil {
		return &model.PoolError{Code: model.ErrIO, Op: "write manifest", Path: path, Err: err}
	}
	return out.Commit()
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.PoolError{Code: model.ErrIO, Op: "read manifest", Path: path, Err: err}
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &model.PoolError{Code: model.ErrConfig, Op: "parse manifest", Path: path, Err: err}
	}
	return &m, nil
}
