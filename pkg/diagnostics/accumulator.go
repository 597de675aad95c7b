// Package diagnostics collects the run-wide findings shared by every preset
// processed in one run: plugins that could not be resolved, textures that do
// not exist, and the cache of texture paths already looked up.
package diagnostics

import (
	"sort"
	"strings"
	"sync"
)

// Accumulator is safe for concurrent use. Every set is keyed
// case-insensitively and remembers the first spelling it saw.
type Accumulator struct {
	badPlugins      foldSet
	missingTextures foldSet
	checkedTextures foldSet
}

// New creates an empty accumulator for one run.
func New() *Accumulator {
	return &Accumulator{
		badPlugins:      newFoldSet(),
		missingTextures: newFoldSet(),
		checkedTextures: newFoldSet(),
	}
}

// AddBadPlugin records a plugin that is neither loaded nor merged.
// It reports whether the plugin was new to the set.
func (a *Accumulator) AddBadPlugin(plugin string) bool {
	return a.badPlugins.add(plugin)
}

// AddMissingTexture records a referenced texture absent from the index.
func (a *Accumulator) AddMissingTexture(path string) bool {
	return a.missingTextures.add(path)
}

// MarkChecked inserts path into the checked cache. Only the caller that gets
// true is responsible for looking the texture up.
func (a *Accumulator) MarkChecked(path string) bool {
	return a.checkedTextures.add(path)
}

// Checked reports whether path was already looked up.
func (a *Accumulator) Checked(path string) bool {
	return a.checkedTextures.has(path)
}

// BadPlugins returns the unresolved plugins sorted case-insensitively.
func (a *Accumulator) BadPlugins() []string {
	return a.badPlugins.sorted()
}

// MissingTextures returns the missing textures sorted case-insensitively.
func (a *Accumulator) MissingTextures() []string {
	return a.missingTextures.sorted()
}

// CheckedCount is the number of distinct texture paths looked up.
func (a *Accumulator) CheckedCount() int {
	return a.checkedTextures.len()
}

type foldSet struct {
	mu    *sync.Mutex
	items map[string]string
}

func newFoldSet() foldSet {
	return foldSet{mu: &sync.Mutex{}, items: make(map[string]string)}
}

func (s foldSet) add(v string) bool {
	key := strings.ToLower(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = v
	return true
}

func (s foldSet) has(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[strings.ToLower(v)]
	return ok
}

func (s foldSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s foldSet) sorted() []string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	out := make([]string, len(keys))
	sort.Strings(keys)
	for i, k := range keys {
		out[i] = s.items[k]
	}
	s.mu.Unlock()
	return out
}
