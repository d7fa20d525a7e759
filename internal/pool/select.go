package pool

import (
	"github.com/me/iggpool/internal/config"
	"github.com/me/iggpool/internal/schema"
)

// SelectSpecies joins every sample's profile into per-species aggregates,
// keeps the (sample, species) pairs that pass the coverage filters, and then
// drops species found in fewer than f.SampleCounts samples.
//
// An aggregate is created for every allowed species on first sight, even if
// no pair ever qualifies for it; the prevalence filter removes it unless
// SampleCounts is zero.
func (p *Pool) SelectSpecies(f config.FilterConfig) *Selection {
	allow := f.SpeciesList.Set()
	byID := make(map[string]*Species)
	var list []*Species

	for _, s := range p.Samples {
		for _, id := range s.SpeciesIDs() {
			if allow != nil && !allow[id] {
				continue
			}
			sp, ok := byID[id]
			if !ok {
				sp = newSpecies(id, len(list))
				byID[id] = sp
				list = append(list, sp)
			}

			rec, _ := s.Profile(id)
			if rec.Float(schema.MeanCoverage) < f.GenomeDepth {
				continue
			}
			if p.DBType.RequiresCoverage() && rec.Float(schema.FractionCovered) < f.GenomeCoverage {
				continue
			}
			sp.Samples = append(sp.Samples, s)
		}
	}

	sortSpecies(list)
	kept := p.filterSpecies(list, f.SampleCounts)

	p.logger.Info("selected species",
		"seen", len(list),
		"kept", len(kept),
		"genome_depth", f.GenomeDepth,
		"genome_coverage", f.GenomeCoverage,
		"sample_counts", f.SampleCounts,
	)
	return newSelection(kept)
}

// filterSpecies drops low-prevalence species and finalizes the survivors.
func (p *Pool) filterSpecies(list []*Species, minSamples int) []*Species {
	kept := make([]*Species, 0, len(list))
	for _, sp := range list {
		if sp.Count() < minSamples {
			p.logger.Debug("drop species", "species_id", sp.ID, "samples", sp.Count())
			continue
		}
		sp.Depths = sp.fetchDepths()
		p.logger.Debug("keep species", "species_id", sp.ID, "samples", sp.Count())
		kept = append(kept, sp)
	}
	return kept
}
