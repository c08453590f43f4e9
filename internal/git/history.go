package git

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned by OpenHistory when no enclosing work tree exists.
var ErrNotRepository = errors.New("not inside a git work tree")

// History answers last-updated queries for files of one work tree.
// Results are cached per file; a History is safe for concurrent use.
type History struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]entry
}

type entry struct {
	when time.Time
	ok   bool
}

// OpenHistory opens the work tree enclosing path, walking up the
// directory hierarchy like the git command does.
func OpenHistory(path string) (*History, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories carry no files to date
		return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
	}
	root, err := realPath(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &History{repo: repo, root: root, cache: map[string]entry{}}, nil
}

// Root returns the absolute work tree root.
func (h *History) Root() string { return h.root }

// LastUpdated returns the author time of the most recent commit touching
// file. ok is false when the file has no history (untracked, or the
// repository has no commits yet).
func (h *History) LastUpdated(file string) (when time.Time, ok bool, err error) {
	abs, err := realPath(file)
	if err != nil {
		return time.Time{}, false, err
	}
	rel, err := filepath.Rel(h.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return time.Time{}, false, fmt.Errorf("%s is outside the work tree %s", file, h.root)
	}
	rel = filepath.ToSlash(rel)

	h.mu.Lock()
	defer h.mu.Unlock()
	if e, hit := h.cache[rel]; hit {
		return e.when, e.ok, nil
	}

	e, err := h.lookup(rel)
	if err != nil {
		return time.Time{}, false, err
	}
	h.cache[rel] = e
	return e.when, e.ok, nil
}

func (h *History) lookup(rel string) (entry, error) {
	iter, err := h.repo.Log(&git.LogOptions{FileName: &rel, Order: git.LogOrderCommitterTime})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return entry{}, nil
		}
		return entry{}, fmt.Errorf("log %s: %w", rel, err)
	}
	defer iter.Close()

	c, err := iter.Next()
	if errors.Is(err, io.EOF) {
		return entry{}, nil
	}
	if err != nil {
		return entry{}, fmt.Errorf("log %s: %w", rel, err)
	}
	return entry{when: c.Author.When, ok: true}, nil
}

func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	// untracked files may not exist yet; resolve the parent instead
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}
