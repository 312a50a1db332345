// Package fileutil holds small file helpers shared by the output writers.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotRegular is returned when an output target exists but is not a regular file.
var ErrNotRegular = errors.New("fileutil: target is not a regular file")

// WriteFunc streams file contents to w.
type WriteFunc func(w io.Writer) error

// WriteAtomic writes path through a temporary file in the same directory and
// renames it into place once write and close succeed. On failure the target
// is left untouched and the temporary file is removed.
func WriteAtomic(path string, write WriteFunc) error {
	var b Batch
	if err := b.Add(path, write); err != nil {
		return err
	}
	return b.Commit()
}

type staged struct {
	tmp  string
	path string
}

// Batch stages several files and publishes them together. Nothing is visible
// at the target paths until Commit.
type Batch struct {
	files []staged
}

// Add writes one file to a temporary location next to path. On error every
// file staged so far is discarded.
func (b *Batch) Add(path string, write WriteFunc) (err error) {
	defer func() {
		if err != nil {
			b.Abort()
		}
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	b.files = append(b.files, staged{tmp: tmp.Name(), path: path})

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Commit publishes every staged file. Targets are checked before the first
// rename; if a rename still fails, files already published are removed and
// any targets they replaced are restored, so the batch lands whole or not at
// all.
func (b *Batch) Commit() error {
	defer b.Abort()

	for _, f := range b.files {
		if err := checkTarget(f.path); err != nil {
			return err
		}
	}

	done := make([]published, 0, len(b.files))
	for _, f := range b.files {
		p, err := publish(f)
		if err != nil {
			rollback(done)
			return fmt.Errorf("renaming into %s: %w", f.path, err)
		}
		done = append(done, p)
	}

	for _, p := range done {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
	}
	b.files = nil
	return nil
}

// rename is swapped out in tests to inject failures.
var rename = os.Rename

type published struct {
	path   string
	backup string
}

func checkTarget(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	return nil
}

// publish moves an existing target aside, then renames the staged file over it.
func publish(f staged) (published, error) {
	p := published{path: f.path}
	if _, err := os.Lstat(f.path); err == nil {
		p.backup = f.tmp + ".bak"
		if err := rename(f.path, p.backup); err != nil {
			return p, err
		}
	}
	if err := rename(f.tmp, f.path); err != nil {
		if p.backup != "" {
			_ = rename(p.backup, f.path)
		}
		return p, err
	}
	return p, nil
}

// rollback undoes published renames, newest first.
func rollback(done []published) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		if p.backup != "" {
			_ = rename(p.backup, p.path)
		} else {
			_ = os.Remove(p.path)
		}
	}
}

// Abort removes every staged file that has not been committed.
func (b *Batch) Abort() {
	for _, f := range b.files {
		_ = os.Remove(f.tmp)
	}
	b.files = nil
}

// Len returns the number of staged files.
func (b *Batch) Len() int {
	return len(b.files)
}
