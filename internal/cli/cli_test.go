package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/iggpool/internal/manifest"
	"github.com/me/iggpool/internal/pool"
	"github.com/me/iggpool/pkg/model"
)

const snpsHeader = "species_id\tgenome_length\tcovered_bases\ttotal_depth\taligned_reads\tmapped_reads\tfraction_covered\tmean_coverage\n"

// writeFixture lays out three samples matching the A/B/C scenario and
// returns the workspace root and table-of-contents path.
func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	profiles := map[string]string{
		"A": "X\t1000\t500\t2000\t30\t25\t0.500\t2.000\n" + "Y\t900\t810\t450\t9\t8\t0.900\t0.500\n",
		"B": "X\t1000\t300\t3000\t40\t35\t0.300\t3.000\n",
		"C": "X\t1000\t600\t1500\t20\t18\t0.600\t1.500\n",
	}
	toc := "sample_name\tmidas_outdir\n"
	for _, name := range []string{"A", "B", "C"} {
		toc += name + "\t" + filepath.Join(root, "samples") + "\n"
		path := filepath.Join(root, "samples", name, "snps", "output", "summary.tsv")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(snpsHeader+profiles[name]), 0644); err != nil {
			t.Fatal(err)
		}
	}
	tocPath := filepath.Join(root, "samples.tsv")
	if err := os.WriteFile(tocPath, []byte(toc), 0644); err != nil {
		t.Fatal(err)
	}
	return root, tocPath
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMerge(t *testing.T) {
	root, toc := writeFixture(t)
	outDir := filepath.Join(root, "pool")

	stdout, stderr, err := execute(t, "merge",
		"--samples-list", toc,
		"--outdir", outDir,
		"--genome-depth", "1.0",
		"--genome-coverage", "0.4",
		"--sample-counts", "2",
	)
	if err != nil {
		t.Fatalf("merge: %v\nstderr: %s", err, stderr)
	}

	summary := filepath.Join(outDir, "snps", "output", "snps_summary.tsv")
	if strings.TrimSpace(stdout) != summary {
		t.Errorf("stdout = %q, want %q", stdout, summary)
	}
	if !strings.Contains(stderr, "run_id=run_") {
		t.Errorf("expected run_id in logs, got: %s", stderr)
	}

	rows, err := pool.ReadSummary(summary, model.DBTypeSNPs)
	if err != nil {
		t.Fatalf("ReadSummary: %v", err)
	}
	var pairs []string
	for _, r := range rows {
		pairs = append(pairs, r.SpeciesID+"/"+r.SampleName)
	}
	if got := strings.Join(pairs, ","); got != "X/A,X/C" {
		t.Errorf("summary rows = %s, want X/A,X/C", got)
	}

	for _, dir := range []string{"snps/output/X", "snps/temp/X", "dbs"} {
		if _, err := os.Stat(filepath.Join(outDir, dir)); err != nil {
			t.Errorf("expected %s: %v", dir, err)
		}
	}

	m, err := manifest.Read(filepath.Join(outDir, "snps", "output", "manifest.yaml"))
	if err != nil {
		t.Fatalf("manifest.Read: %v", err)
	}
	if len(m.Species) != 1 || m.Species[0].ID != "X" || m.Species[0].SampleCount != 2 {
		t.Errorf("manifest species = %+v", m.Species)
	}
	if m.Filter.SampleCounts != 2 || m.Filter.GenomeDepth != 1.0 {
		t.Errorf("manifest filter = %+v", m.Filter)
	}
}

func TestMerge_ConfigFileWithFlagOverride(t *testing.T) {
	root, toc := writeFixture(t)
	outDir := filepath.Join(root, "pool")
	cfgPath := filepath.Join(root, "merge.yaml")
	doc := "samples_list: " + toc + "\n" +
		"outdir: " + outDir + "\n" +
		"filter:\n  genome_depth: 1.0\n  genome_coverage: 0.4\n  sample_counts: 3\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, "merge", "--config", cfgPath, "--sample-counts", "1")
	if err != nil {
		t.Fatalf("merge: %v\nstderr: %s", err, stderr)
	}
	m, err := manifest.Read(filepath.Join(outDir, "snps", "output", "manifest.yaml"))
	if err != nil {
		t.Fatalf("manifest.Read: %v", err)
	}
	if m.Filter.SampleCounts != 1 {
		t.Errorf("SampleCounts = %d, want flag override 1", m.Filter.SampleCounts)
	}
	if m.Filter.GenomeDepth != 1.0 {
		t.Errorf("GenomeDepth = %v, want 1.0 from file", m.Filter.GenomeDepth)
	}
}

func TestMerge_FailureLeavesNoSummary(t *testing.T) {
	root, toc := writeFixture(t)
	os.Remove(filepath.Join(root, "samples", "B", "snps", "output", "summary.tsv"))
	outDir := filepath.Join(root, "pool")

	_, _, err := execute(t, "merge", "--samples-list", toc, "--outdir", outDir)
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
	if !strings.Contains(err.Error(), "IO_ERROR") {
		t.Errorf("error = %v, want IO_ERROR", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "snps", "output", "snps_summary.tsv")); err == nil {
		t.Error("no summary should be written when initialization fails")
	}
}

func TestMerge_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "merge", "--db-type", "species", "--genome-depth", "-1")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"samples_list", "outdir", "db_type", "genome_depth"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should mention %s", err, field)
		}
	}
}

func TestMerge_GenomeCoverageRange(t *testing.T) {
	root, toc := writeFixture(t)
	_, _, err := execute(t, "merge", "--samples-list", toc, "--outdir", filepath.Join(root, "pool"), "--genome-coverage", "1.5")
	if err == nil || !strings.Contains(err.Error(), "genome_coverage") {
		t.Fatalf("error = %v, want genome_coverage range error", err)
	}

	help, _, err := execute(t, "merge", "--help")
	if err != nil {
		t.Fatalf("merge --help: %v", err)
	}
	if !strings.Contains(help, "within [0, 1]") {
		t.Errorf("--genome-coverage help should state its range:\n%s", help)
	}
}

func TestSelect(t *testing.T) {
	root, toc := writeFixture(t)
	outDir := filepath.Join(root, "pool")

	stdout, _, err := execute(t, "select",
		"--samples-list", toc,
		"--outdir", outDir,
		"--genome-depth", "1.0",
		"--genome-coverage", "0.4",
		"--sample-counts", "0",
	)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := "species_id\tsample_count\tsamples\nX\t2\tA,C\nY\t0\t\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if _, err := os.Stat(outDir); err == nil {
		t.Error("select must not create the workspace")
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr string
	}{
		{[]string{"layout", "snps_info", "--outdir", "/pool", "--species", "7"}, filepath.Join("/pool", "snps", "output", "7", "7.snps_info.tsv"), ""},
		{[]string{"layout", "tempdir", "--outdir", "/pool", "--db-type", "genes"}, filepath.Join("/pool", "genes", "temp"), ""},
		{[]string{"layout", "snps_freq_by_chunk", "--outdir", "/pool", "--species", "7", "--chunk", "2"}, filepath.Join("/pool", "snps", "temp", "7", "cid.2_snps_freqs.tsv"), ""},
		{[]string{"layout", "snps_depth_by_chunk", "--species", "7"}, "", "requires --chunk"},
		{[]string{"layout", "genes_depth"}, "", "requires --species"},
		{[]string{"layout", "bogus"}, "", "unknown path kind"},
		{[]string{"layout", "outdir", "--db-type", "proteins"}, "", "unknown db-type"},
		{[]string{"layout"}, "", "kind required"},
	}
	for _, tt := range tests {
		stdout, _, err := execute(t, tt.args...)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("%v: error = %v, want %q", tt.args, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v: %v", tt.args, err)
			continue
		}
		if got := strings.TrimSpace(stdout); got != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestLayout_List(t *testing.T) {
	stdout, _, err := execute(t, "layout", "--list")
	if err != nil {
		t.Fatalf("layout --list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if lines[0] != "species_prevalence" || lines[len(lines)-1] != "manifest" {
		t.Errorf("unexpected kind list: %v", lines)
	}
}

func TestSamples(t *testing.T) {
	_, toc := writeFixture(t)
	stdout, _, err := execute(t, "samples", "--samples-list", toc)
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 3 samples:\n%s", len(lines), stdout)
	}
	if f := strings.Fields(lines[2]); f[0] != "A" || f[1] != "2" {
		t.Errorf("sample A line = %q", lines[2])
	}

	if _, _, err := execute(t, "samples"); err == nil {
		t.Error("expected error without --samples-list")
	}
}

func TestMerge_ManifestPhases(t *testing.T) {
	root, toc := writeFixture(t)
	outDir := filepath.Join(root, "pool")
	if _, _, err := execute(t, "merge", "--samples-list", toc, "--outdir", outDir, "--genome-depth", "1"); err != nil {
		t.Fatalf("merge: %v", err)
	}
	m, err := manifest.Read(filepath.Join(outDir, "snps", "output", "manifest.yaml"))
	if err != nil {
		t.Fatalf("manifest.Read: %v", err)
	}
	var names []string
	for _, p := range m.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "init_pool,select_species,write_summary" {
		t.Errorf("phases = %s", got)
	}
	if m.Duration == "" {
		t.Error("expected total duration")
	}
}
