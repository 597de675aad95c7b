// Package textures knows which texture files the game can load and which
// textures a preset references.
package textures

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/presetcheck/pkg/bsa"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	// Dir is the data folder subdirectory holding loose textures, and the
	// prefix of texture paths inside archives.
	Dir = "textures"
	// Suffix identifies texture files.
	Suffix = ".dds"

	// LooseSource names loose files as the source of an index entry.
	LooseSource = "loose"
)

// Normalize lowercases path and uses backslash separators without a
// leading separator, the form presets and archives use.
func Normalize(path string) string {
	p := strings.ToLower(strings.ReplaceAll(path, "/", `\`))
	return strings.TrimLeft(p, `\`)
}

// IsTexture reports whether path has the texture suffix.
func IsTexture(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), Suffix)
}

// Index is the set of available textures, relative to the textures folder.
// Inserts are safe for concurrent use; the first source to add a path keeps it.
type Index struct {
	entries sync.Map
	size    atomic.Int64
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add inserts path if absent and reports whether this call inserted it.
func (x *Index) Add(path, source string) bool {
	if _, loaded := x.entries.LoadOrStore(Normalize(path), source); loaded {
		return false
	}
	x.size.Add(1)
	return true
}

// Contains reports whether the texture exists.
func (x *Index) Contains(path string) bool {
	_, ok := x.entries.Load(Normalize(path))
	return ok
}

// Source returns where an indexed texture was first found.
func (x *Index) Source(path string) (string, bool) {
	v, ok := x.entries.Load(Normalize(path))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Len is the number of distinct textures.
func (x *Index) Len() int {
	return int(x.size.Load())
}

// BuildOptions selects the sources of an index.
type BuildOptions struct {
	// DataRoot is the game Data folder.
	DataRoot string
	// Archives are archive paths to read, in priority order.
	Archives []string
	// Workers bounds concurrent archive reads; zero means unbounded.
	Workers int
}

// Build scans loose files and archives concurrently. Unreadable archives are
// logged and skipped.
func Build(ctx context.Context, fs afero.Fs, opts BuildOptions) (*Index, error) {
	logger := logging.GetLogger("textures.index")
	defer logging.LogOperationStart(logger, "build texture index")()

	x := NewIndex()
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	g.Go(func() error {
		n, err := x.addLoose(gctx, fs, filepath.Join(opts.DataRoot, Dir))
		if err != nil {
			return err
		}
		logger.Debug().Int("textures", n).Msg("Indexed loose textures")
		return nil
	})

	for _, archive := range opts.Archives {
		archive := archive
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := x.addArchive(fs, archive)
			if err != nil {
				logger.Warn().Err(err).Str("archive", archive).Msg("Skipping unreadable archive")
				return nil
			}
			logger.Debug().Str("archive", archive).Int("textures", n).Msg("Indexed archive")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info().Int("textures", x.Len()).Int("archives", len(opts.Archives)).Msg("Texture index built")
	return x, nil
}

func (x *Index) addLoose(ctx context.Context, fs afero.Fs, root string) (int, error) {
	if _, err := fs.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	added := 0
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !IsTexture(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if x.Add(rel, LooseSource) {
			added++
		}
		return nil
	})
	return added, err
}

func (x *Index) addArchive(fs afero.Fs, path string) (int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	names, err := bsa.ReadNames(f)
	if err != nil {
		return 0, err
	}

	prefix := Dir + `\`
	source := filepath.Base(path)
	added := 0
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || !IsTexture(name) {
			continue
		}
		if x.Add(strings.TrimPrefix(name, prefix), source) {
			added++
		}
	}
	return added, nil
}
