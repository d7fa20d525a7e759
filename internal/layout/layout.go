// Package layout maps symbolic path kinds to the canonical on-disk layout of
// a pooled workspace. Downstream stages depend on these exact shapes.
package layout

import (
	"fmt"
	"path/filepath"

	"github.com/me/iggpool/pkg/model"
)

// Kind names one path in the pooled workspace layout.
type Kind int

const (
	SpeciesPrevalence Kind = iota
	SpeciesReadCounts
	SpeciesCoverage
	SpeciesRelAbundance

	SnpsSummary
	SnpsInfo
	SnpsFreq
	SnpsDepth

	GenesSummary
	GenesPresabs
	GenesCopynum
	GenesDepth

	OutDir
	TempDir
	DBsDirOld // pre-shared per-db-type databases

	DBsDir
	DBsTempDir
	SnpsRepgenomesBAM
	GenesPangenomesBAM

	OutDirBySpecies
	TempDirBySpecies
	GenesInfoFile

	LookupTableByChunk
	SnpsInfoByChunk
	SnpsFreqByChunk
	SnpsDepthByChunk

	Manifest

	numKinds
)

var kindNames = [numKinds]string{
	SpeciesPrevalence:   "species_prevalence",
	SpeciesReadCounts:   "species_read_counts",
	SpeciesCoverage:     "species_coverage",
	SpeciesRelAbundance: "species_rel_abundance",
	SnpsSummary:         "snps_summary",
	SnpsInfo:            "snps_info",
	SnpsFreq:            "snps_freq",
	SnpsDepth:           "snps_depth",
	GenesSummary:        "genes_summary",
	GenesPresabs:        "genes_presabs",
	GenesCopynum:        "genes_copynum",
	GenesDepth:          "genes_depth",
	OutDir:              "outdir",
	TempDir:             "tempdir",
	DBsDirOld:           "dbsdir_old",
	DBsDir:              "dbsdir",
	DBsTempDir:          "dbs_tempdir",
	SnpsRepgenomesBAM:   "snps_repgenomes_bam",
	GenesPangenomesBAM:  "genes_pangenomes_bam",
	OutDirBySpecies:     "outdir_by_species",
	TempDirBySpecies:    "tempdir_by_species",
	GenesInfoFile:       "genes_info_file",
	LookupTableByChunk:  "lookup_table_by_chunk",
	SnpsInfoByChunk:     "snps_info_by_chunk",
	SnpsFreqByChunk:     "snps_freq_by_chunk",
	SnpsDepthByChunk:    "snps_depth_by_chunk",
	Manifest:            "manifest",
}

// String returns the symbolic name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// NeedsSpecies reports whether the path embeds a species id.
func (k Kind) NeedsSpecies() bool {
	switch k {
	case SnpsInfo, SnpsFreq, SnpsDepth,
		GenesPresabs, GenesCopynum, GenesDepth,
		OutDirBySpecies, TempDirBySpecies, GenesInfoFile,
		LookupTableByChunk, SnpsInfoByChunk, SnpsFreqByChunk, SnpsDepthByChunk:
		return true
	}
	return false
}

// NeedsChunk reports whether the path embeds a chunk id.
func (k Kind) NeedsChunk() bool {
	switch k {
	case SnpsInfoByChunk, SnpsFreqByChunk, SnpsDepthByChunk:
		return true
	}
	return false
}

// Kinds returns every path kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind converts a symbolic name such as "snps_info" to a Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, &model.PoolError{
		Code: model.ErrConfig,
		Op:   "parse layout kind",
		Err:  fmt.Errorf("unknown path kind %q", name),
	}
}

// SummaryKind returns the pooled summary kind for a db-type.
func SummaryKind(dbtype model.DBType) Kind {
	if dbtype == model.DBTypeGenes {
		return GenesSummary
	}
	return SnpsSummary
}

// Resolver resolves path kinds under one workspace root and db-type.
type Resolver struct {
	Root   string
	DBType model.DBType
}

// New creates a Resolver rooted at root.
func New(root string, dbtype model.DBType) Resolver {
	return Resolver{Root: root, DBType: dbtype}
}

// Rel returns the slash-separated path of k relative to the workspace root.
// speciesID and chunkID are ignored by kinds that do not embed them.
// Rel panics on a Kind outside the declared set.
func (r Resolver) Rel(k Kind, speciesID, chunkID string) string {
	db := r.DBType.String()
	sid, cid := speciesID, chunkID

	switch k {
	case SpeciesPrevalence:
		return "species/species_prevalence.tsv"
	case SpeciesReadCounts:
		return "species/species_read_counts.tsv"
	case SpeciesCoverage:
		return "species/species_coverage.tsv"
	case SpeciesRelAbundance:
		return "species/species_rel_abundance.tsv"

	case SnpsSummary:
		return "snps/output/snps_summary.tsv"
	case SnpsInfo:
		return fmt.Sprintf("snps/output/%s/%s.snps_info.tsv", sid, sid)
	case SnpsFreq:
		return fmt.Sprintf("snps/output/%s/%s.snps_freqs.tsv", sid, sid)
	case SnpsDepth:
		return fmt.Sprintf("snps/output/%s/%s.snps_depth.tsv", sid, sid)

	case GenesSummary:
		return "genes/output/summary.tsv"
	case GenesPresabs:
		return fmt.Sprintf("genes/output/%s/%s.genes_presabs.tsv", sid, sid)
	case GenesCopynum:
		return fmt.Sprintf("genes/output/%s/%s.genes_copynum.tsv", sid, sid)
	case GenesDepth:
		return fmt.Sprintf("genes/output/%s/%s.genes_depth.tsv", sid, sid)

	case OutDir:
		return db + "/output"
	case TempDir:
		return db + "/temp"
	case DBsDirOld:
		return db + "/dbs"

	case DBsDir:
		return "dbs"
	case DBsTempDir:
		return "dbs/temp"
	case SnpsRepgenomesBAM:
		return "dbs/repgenomes.bam"
	case GenesPangenomesBAM:
		return "dbs/pangenomes.bam"

	case OutDirBySpecies:
		return fmt.Sprintf("%s/output/%s", db, sid)
	case TempDirBySpecies:
		return fmt.Sprintf("%s/temp/%s", db, sid)
	case GenesInfoFile:
		return fmt.Sprintf("%s/temp/%s/gene_info.txt", db, sid)

	case LookupTableByChunk:
		return fmt.Sprintf("%s/temp/%s/cid_lookup.tsv", db, sid)
	case SnpsInfoByChunk:
		return fmt.Sprintf("%s/temp/%s/cid.%s_snps_info.tsv", db, sid, cid)
	case SnpsFreqByChunk:
		return fmt.Sprintf("%s/temp/%s/cid.%s_snps_freqs.tsv", db, sid, cid)
	case SnpsDepthByChunk:
		return fmt.Sprintf("%s/temp/%s/cid.%s_snps_depth.tsv", db, sid, cid)

	case Manifest:
		return db + "/output/manifest.yaml"
	}
	panic(fmt.Sprintf("layout: unresolvable path kind %v", k))
}

// Path returns the absolute (root-joined) path of k.
func (r Resolver) Path(k Kind, speciesID, chunkID string) string {
	return filepath.Join(r.Root, filepath.FromSlash(r.Rel(k, speciesID, chunkID)))
}

// Dir is shorthand for Path on kinds that take no species or chunk id.
func (r Resolver) Dir(k Kind) string {
	return r.Path(k, "", "")
}

// SampleSummary returns the per-sample profile summary written by the
// single-sample stage: <outdir>/<sample>/<dbtype>/output/summary.tsv.
func SampleSummary(outDir, sampleName string, dbtype model.DBType) string {
	return filepath.Join(outDir, sampleName, dbtype.String(), "output", "summary.tsv")
}
