// Package stream opens input files and creates crash-safe output files,
// transparently (de)compressing paths that end in ".gz".
package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/me/iggpool/pkg/model"
)

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

type input struct {
	io.Reader
	closers []io.Closer
}

func (in *input) Close() error {
	var first error
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for buffered reading.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &model.PoolError{Code: model.ErrIO, Op: "open", Path: path, Err: err}
	}
	in := &input{Reader: bufio.NewReader(f), closers: []io.Closer{f}}
	if isGzip(path) {
		zr, err := gzip.NewReader(in.Reader)
		if err != nil {
			f.Close()
			return nil, &model.PoolError{Code: model.ErrIO, Op: "open gzip", Path: path, Err: err}
		}
		in.Reader = zr
		in.closers = append(in.closers, zr)
	}
	return in, nil
}

// Output writes to a hidden temporary sibling of its target and renames it
// into place on Commit. Until then the target is untouched.
type Output struct {
	path string
	tmp  *os.File
	gz   *gzip.Writer
	bw   *bufio.Writer
	done bool
}

// Create starts a new Output for path. The parent directory must exist.
func Create(path string) (*Output, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, &model.PoolError{Code: model.ErrIO, Op: "create", Path: path, Err: err}
	}
	out := &Output{path: path, tmp: f}
	if isGzip(path) {
		out.gz = gzip.NewWriter(f)
		out.bw = bufio.NewWriter(out.gz)
	} else {
		out.bw = bufio.NewWriter(f)
	}
	return out, nil
}

func (o *Output) Write(p []byte) (int, error) {
	return o.bw.Write(p)
}

// WriteString writes s. io.WriteString, and so tsv.Writer, picks it up.
func (o *Output) WriteString(s string) (int, error) {
	return o.bw.WriteString(s)
}

// Commit flushes everything and atomically moves the file to its target.
func (o *Output) Commit() error {
	if o.done {
		return fmt.Errorf("stream: output %s already finished", o.path)
	}
	o.done = true

	err := o.bw.Flush()
	if err == nil && o.gz != nil {
		err = o.gz.Close()
	}
	if err == nil {
		err = o.tmp.Sync()
	}
	if cerr := o.tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(o.tmp.Name(), o.path)
	}
	if err != nil {
		os.Remove(o.tmp.Name())
		return &model.PoolError{Code: model.ErrIO, Op: "commit", Path: o.path, Err: err}
	}
	return nil
}

// Abort discards the output. It is a no-op after Commit, so it can be
// deferred unconditionally.
func (o *Output) Abort() {
	if o.done {
		return
	}
	o.done = true
	o.tmp.Close()
	os.Remove(o.tmp.Name())
}
