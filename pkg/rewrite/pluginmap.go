package rewrite

import "strings"

// PluginMap records, per preset, which plugin each referenced plugin ended
// up as. Keys compare case-insensitively and keep their first spelling;
// iteration follows insertion order.
type PluginMap struct {
	keys   []string
	values map[string]string
	names  map[string]string
}

// NewPluginMap creates an empty map.
func NewPluginMap() *PluginMap {
	return &PluginMap{
		values: make(map[string]string),
		names:  make(map[string]string),
	}
}

// Set records original -> effective. The first mapping for a plugin stays.
func (m *PluginMap) Set(original, effective string) {
	key := strings.ToLower(original)
	if _, ok := m.values[key]; ok {
		return
	}
	m.keys = append(m.keys, key)
	m.names[key] = original
	m.values[key] = effective
}

// Get returns the effective plugin for original.
func (m *PluginMap) Get(original string) (string, bool) {
	v, ok := m.values[strings.ToLower(original)]
	return v, ok
}

// Len is the number of original plugins recorded.
func (m *PluginMap) Len() int {
	return len(m.keys)
}

// Originals lists the recorded plugins in insertion order.
func (m *PluginMap) Originals() []string {
	out := make([]string, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.names[k]
	}
	return out
}

// Effective lists the distinct effective plugins, case-insensitively, in
// the order they were first produced.
func (m *PluginMap) Effective() []string {
	var out []string
	seen := make(map[string]bool)
	for _, k := range m.keys {
		v := m.values[k]
		if seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
	}
	return out
}
