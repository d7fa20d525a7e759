package pool

import (
	"os"
	"path/filepath"

	"github.com/me/iggpool/internal/layout"
	"github.com/me/iggpool/pkg/model"
)

// CreateOutputDir recreates the pool's output directory. The temp and
// database directories are recreated too, unless debug is set and a temp
// directory from an earlier run exists, in which case both are reused.
func (p *Pool) CreateOutputDir(debug bool) error {
	outDir := p.Layout.Dir(layout.OutDir)
	tempDir := p.Layout.Dir(layout.TempDir)
	dbsDir := p.Layout.Dir(layout.DBsDir)

	p.logger.Info("create output directory", "path", outDir)
	if err := recreate(outDir); err != nil {
		return err
	}

	if debug && exists(tempDir) {
		p.logger.Info("reusing existing temp data", "path", tempDir)
		return nil
	}
	p.logger.Info("create temp directory", "path", tempDir)
	if err := recreate(tempDir); err != nil {
		return err
	}
	p.logger.Info("create database directory", "path", dbsDir)
	return recreate(dbsDir)
}

// CreateSpeciesSubdir recreates <dir>/<species_id> for every species id,
// where dir is the layout path of kind. With debug set, existing
// subdirectories are left alone.
func (p *Pool) CreateSpeciesSubdir(speciesIDs []string, kind layout.Kind, debug bool) error {
	base := p.Layout.Dir(kind)
	for _, id := range speciesIDs {
		dir := filepath.Join(base, id)
		if debug && exists(dir) {
			continue
		}
		if err := recreate(dir); err != nil {
			return err
		}
	}
	return nil
}

func recreate(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return &model.PoolError{Code: model.ErrIO, Op: "remove dir", Path: dir, Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &model.PoolError{Code: model.ErrIO, Op: "create dir", Path: dir, Err: err}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
