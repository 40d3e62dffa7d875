// Package gitstat resolves when a page last changed, asking git first.
package gitstat

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/apiglot/apiglot"
)

// Source tells where a timestamp came from.
type Source string

const (
	SourceGit        Source = "git"
	SourceFilesystem Source = "filesystem"
)

// Stamp is the last modification time of a file.
type Stamp struct {
	Source    Source
	Timestamp string // ISO-8601, UTC, millisecond precision
}

// Repo runs git in a working directory.
type Repo struct {
	dir string
	git string // path to the git binary, empty when unavailable
}

// New returns a Repo for dir. When git is not installed every lookup falls
// back to the filesystem.
func New(dir string) *Repo {
	git, err := exec.LookPath("git")
	if err != nil {
		git = ""
	}
	return &Repo{dir: dir, git: git}
}

// Available reports whether git could be found.
func (r *Repo) Available() bool {
	return r.git != ""
}

// IsModified reports whether path has uncommitted changes or is untracked.
func (r *Repo) IsModified(ctx context.Context, path string) (bool, error) {
	out, err := r.run(ctx, "status", "--porcelain", "--", path)
	if err != nil {
		return false, err
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// LastModified returns the commit date of the last commit touching path,
// or its filesystem modification time when the file has local changes,
// is not tracked, or git cannot answer.
func (r *Repo) LastModified(ctx context.Context, path string) (Stamp, error) {
	if r.Available() {
		if stamp, ok := r.fromGit(ctx, path); ok {
			return stamp, nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{Source: SourceFilesystem, Timestamp: apiglot.Timestamp(info.ModTime())}, nil
}

func (r *Repo) fromGit(ctx context.Context, path string) (Stamp, bool) {
	modified, err := r.IsModified(ctx, path)
	if err != nil || modified {
		return Stamp{}, false
	}

	out, err := r.run(ctx, "log", "-1", "--format=%cd", "--date=iso-strict", "--", path)
	if err != nil {
		return Stamp{}, false
	}
	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return Stamp{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		raw = apiglot.Timestamp(t)
	}
	return Stamp{Source: SourceGit, Timestamp: raw}, true
}

// LastModifiedFunc adapts the Repo to a Localizer option.
func (r *Repo) LastModifiedFunc() apiglot.LastModifiedFunc {
	return func(ctx context.Context, path string, info fs.FileInfo) string {
		stamp, err := r.LastModified(ctx, path)
		if err != nil {
			return apiglot.FileModTime(ctx, path, info)
		}
		return stamp.Timestamp
	}
}

func (r *Repo) run(ctx context.Context, args ...string) ([]byte, error) {
	if r.git == "" {
		return nil, exec.ErrNotFound
	}
	for i, a := range args {
		// Paths after "--" are resolved against the repo directory by git,
		// so hand them over absolute.
		if i > 0 && args[i-1] == "--" && !filepath.IsAbs(a) {
			if abs, err := filepath.Abs(a); err == nil {
				args[i] = abs
			}
		}
	}

	cmd := exec.CommandContext(ctx, r.git, append([]string{"-C", r.dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
