// Package settings loads the flat KEY=value settings file that configures
// a block workflow (registry host, image tag, manifest and job-config
// paths, dockerfile locations).
//
// Values may reference other keys with ${KEY}. References are expanded
// when the file is loaded; keys that are referenced but never defined
// fall back to the process environment. Bindings are resolved once and
// immutable afterwards.
package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Bindings is an immutable set of resolved key/value pairs.
type Bindings struct {
	values map[string]string
	env    func(string) (string, bool)
}

// Load reads the settings file at path on top of the given defaults,
// with os.LookupEnv as the fallback for undefined keys.
func Load(path string, defaults map[string]string) (*Bindings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings file: %w", err)
	}
	defer f.Close()
	b, err := Parse(f, defaults, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse reads KEY=value lines from r. Blank lines and lines starting
// with '#' are ignored. A later definition of a key overrides an
// earlier one, and file definitions override defaults. env supplies
// values for keys that are referenced but not defined; it may be nil.
func Parse(r io.Reader, defaults map[string]string, env func(string) (string, bool)) (*Bindings, error) {
	raw := make(map[string]string, len(defaults))
	for k, v := range defaults {
		raw[k] = v
	}

	if r != nil {
		scanner := bufio.NewScanner(r)
		lineno := 0
		for scanner.Scan() {
			lineno++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: expected KEY=value, got %q", lineno, line)
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return nil, fmt.Errorf("line %d: empty key", lineno)
			}
			raw[key] = strings.TrimSpace(value)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	if env == nil {
		env = func(string) (string, bool) { return "", false }
	}

	res := &resolver{
		raw:      raw,
		env:      env,
		resolved: make(map[string]string, len(raw)),
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, _, err := res.resolve(key, nil); err != nil {
			return nil, err
		}
	}

	return &Bindings{values: res.resolved, env: env}, nil
}

// Lookup returns the value for key, falling back to the environment for
// keys not defined in the settings file or defaults.
func (b *Bindings) Lookup(key string) (string, bool) {
	if v, ok := b.values[key]; ok {
		return v, true
	}
	return b.env(key)
}

// Get returns the value for key, or "" when unbound.
func (b *Bindings) Get(key string) string {
	v, _ := b.Lookup(key)
	return v
}

// Keys returns the defined keys in sorted order. Environment fallbacks
// are not included.
func (b *Bindings) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of the bindings extended with extra values. The
// receiver is left untouched. Extra values shadow existing ones.
func (b *Bindings) With(extra map[string]string) *Bindings {
	values := make(map[string]string, len(b.values)+len(extra))
	for k, v := range b.values {
		values[k] = v
	}
	for k, v := range extra {
		values[k] = v
	}
	return &Bindings{values: values, env: b.env}
}

// Expand substitutes every ${KEY} reference in s. A reference to a key
// that is neither bound nor present in the environment is an error
// wrapping ErrUnboundVariable.
func (b *Bindings) Expand(s string) (string, error) {
	return expand(s, 0, func(name string) (string, bool, error) {
		v, ok := b.Lookup(name)
		return v, ok, nil
	}, true)
}
