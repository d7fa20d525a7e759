package pool

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/internal/schema"
	"github.com/me/iggpool/internal/stream"
	"github.com/me/iggpool/internal/tsv"
	"github.com/me/iggpool/pkg/model"
)

// SummaryPath returns where WriteSummary writes for the pool's db-type.
func (p *Pool) SummaryPath() string {
	return p.Path(layout.SummaryKind(p.DBType), "", "")
}

// WriteSummary writes the pooled summary for sel: one row per selected
// species and qualifying sample. The previous file, if any, is replaced
// only once the new one is complete.
func (p *Pool) WriteSummary(sel *Selection) (string, error) {
	sch, err := schema.ForDBType(p.DBType)
	if err != nil {
		return "", err
	}
	path := p.SummaryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &model.PoolError{Code: model.ErrIO, Op: "create summary dir", Path: path, Err: err}
	}

	out, err := stream.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Abort()

	if err := writeSummary(out, sch, sel); err != nil {
		return "", &model.PoolError{Code: model.ErrIO, Op: "write summary", Path: path, Err: err}
	}
	if err := out.Commit(); err != nil {
		return "", err
	}
	p.logger.Info("wrote pooled summary", "path", path, "species", sel.Len())
	return path, nil
}

func writeSummary(w io.Writer, sch *schema.Schema, sel *Selection) error {
	tw := tsv.NewWriter(w)
	tw.WriteRow(schema.Pooled(sch).Names()...)

	for _, sp := range sel.Species() {
		for _, s := range sp.Samples {
			rec, ok := s.Profile(sp.ID)
			if !ok {
				return fmt.Errorf("sample %s has no profile for species %s", s.Name, sp.ID)
			}
			values := rec.Formatted()
			row := make([]string, 0, len(values)+1)
			row = append(row, values[0], s.Name)
			row = append(row, values[1:]...)
			tw.WriteRow(row...)
		}
	}
	return tw.Err()
}

// SummaryRow is one (species, sample) row of a pooled summary.
type SummaryRow struct {
	SpeciesID  string
	SampleName string
	Record     schema.Record
}

// ReadSummary parses a pooled summary written for dbtype.
func ReadSummary(path string, dbtype model.DBType) ([]SummaryRow, error) {
	sch, err := schema.ForDBType(dbtype)
	if err != nil {
		return nil, err
	}
	records, err := tsv.ReadFile(path, schema.Pooled(sch))
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, len(records))
	for i, rec := range records {
		rows[i] = SummaryRow{
			SpeciesID:  rec.String(schema.SpeciesID),
			SampleName: rec.String(schema.SampleName),
			Record:     rec,
		}
	}
	return rows, nil
}
