// Package output resolves where the finished artifact lands: target
// filename derivation, collision handling, and the final placement step.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ExploreAritra/format-flex/internal/config"
)

// TargetPath derives the destination file for a conversion. The stem comes
// from OutputName when set, otherwise from the input filename; the
// extension always follows the target container. OutputDir empty means
// "next to the input".
func TargetPath(opts *config.Options, inputPath string) string {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	stem := opts.OutputName
	if stem == "" {
		base := filepath.Base(inputPath)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, stem+opts.Container.Ext())
}

// Resolver hands out collision-free destination paths. A path already taken
// on disk (or claimed earlier in this process) gets a " - dupN" suffix
// instead, so a run never silently clobbers an existing file. With force
// set, existing files are fair game and only in-process claims collide.
type Resolver struct {
	mu     sync.Mutex
	claims map[string]bool
	force  bool
}

// NewResolver creates a resolver. force allows overwriting files that
// already exist on disk.
func NewResolver(force bool) *Resolver {
	return &Resolver{claims: make(map[string]bool), force: force}
}

// Resolve returns requested when it is free, otherwise the first available
// " - dupN" variant.
func (r *Resolver) Resolve(requested string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.taken(requested) {
		r.claims[requested] = true
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, n, ext))
		if !r.taken(candidate) {
			r.claims[candidate] = true
			return candidate
		}
	}
}

func (r *Resolver) taken(path string) bool {
	if r.claims[path] {
		return true
	}
	if r.force {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Placer moves a finished staging file to its final destination. The
// default implementation renames within the filesystem; callers on
// platforms with mediated storage substitute their own.
type Placer interface {
	Place(stagingPath, finalPath string) error
}

// RenamePlacer places by rename, creating the destination directory first.
type RenamePlacer struct{}

// Place implements Placer.
func (RenamePlacer) Place(stagingPath, finalPath string) error {
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o755); err != nil {
		return err
	}
	return os.Rename(stagingPath, finalPath)
}

// StagingPath returns the hidden work-in-progress name used while encoding
// toward finalPath. Keeping it in the destination directory makes the
// final rename atomic on every sane filesystem.
func StagingPath(finalPath string) string {
	dir := filepath.Dir(finalPath)
	return filepath.Join(dir, "."+filepath.Base(finalPath)+".part")
}
