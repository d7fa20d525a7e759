package pool

import (
	"cmp"
	"slices"

	"github.com/me/iggpool/internal/sample"
	"github.com/me/iggpool/internal/schema"
)

// Species aggregates the samples in which one species passed the
// per-pair quality filters.
type Species struct {
	ID string

	// Samples that qualified, in pool order. Not owned.
	Samples []*sample.Sample

	// Depths holds mean_coverage per entry of Samples. Set once the
	// species survives the prevalence filter.
	Depths []float64

	firstSeen int
}

func newSpecies(id string, firstSeen int) *Species {
	return &Species{ID: id, firstSeen: firstSeen}
}

// Count returns the number of qualifying samples.
func (sp *Species) Count() int {
	return len(sp.Samples)
}

// SampleNames returns the names of the qualifying samples.
func (sp *Species) SampleNames() []string {
	names := make([]string, len(sp.Samples))
	for i, s := range sp.Samples {
		names[i] = s.Name
	}
	return names
}

func (sp *Species) fetchDepths() []float64 {
	depths := make([]float64, len(sp.Samples))
	for i, s := range sp.Samples {
		rec, _ := s.Profile(sp.ID)
		depths[i] = rec.Float(schema.MeanCoverage)
	}
	return depths
}

// sortSpecies orders by qualifying sample count, highest first. Equal
// counts keep the order in which the species were first seen.
func sortSpecies(list []*Species) {
	slices.SortFunc(list, func(a, b *Species) int {
		if c := cmp.Compare(b.Count(), a.Count()); c != 0 {
			return c
		}
		return cmp.Compare(a.firstSeen, b.firstSeen)
	})
}

// Selection is the ordered result of species selection.
type Selection struct {
	species []*Species
	byID    map[string]*Species
}

func newSelection(list []*Species) *Selection {
	byID := make(map[string]*Species, len(list))
	for _, sp := range list {
		byID[sp.ID] = sp
	}
	return &Selection{species: list, byID: byID}
}

// Species returns the selected species in result order.
func (s *Selection) Species() []*Species {
	return s.species
}

// Get returns the aggregate for id.
func (s *Selection) Get(id string) (*Species, bool) {
	sp, ok := s.byID[id]
	return sp, ok
}

// IDs returns the selected species ids in result order.
func (s *Selection) IDs() []string {
	ids := make([]string, len(s.species))
	for i, sp := range s.species {
		ids[i] = sp.ID
	}
	return ids
}

// Len returns the number of selected species.
func (s *Selection) Len() int {
	return len(s.species)
}
