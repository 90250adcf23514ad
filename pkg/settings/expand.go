package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSettingsCycle is returned when settings values reference each
	// other in a cycle, e.g. A=${B} with B=${A}.
	ErrSettingsCycle = errors.New("settings reference cycle")

	// ErrUnboundVariable is returned when a ${KEY} reference cannot be
	// satisfied by the settings file, defaults or environment.
	ErrUnboundVariable = errors.New("unbound variable")
)

// expandDepthLimit caps nested reference expansion. Cycles between
// defined keys are caught during resolution; this guards against cycles
// smuggled in through environment values.
const expandDepthLimit = 32

// expand substitutes ${NAME} references in s using lookup. Only the
// ${NAME} form is recognised; a bare '$' passes through untouched. When
// strict is false, references lookup cannot satisfy are left in place;
// when strict is true they are an ErrUnboundVariable.
func expand(s string, depth int, lookup func(string) (string, bool, error), strict bool) (string, error) {
	if depth > expandDepthLimit {
		return "", fmt.Errorf("%w: expansion too deep in %q", ErrSettingsCycle, s)
	}

	var out strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			out.WriteString(s)
			return out.String(), nil
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return "", fmt.Errorf("unterminated ${ reference in %q", s)
		}
		end += start

		out.WriteString(s[:start])
		name := s[start+2 : end]
		if name == "" {
			return "", fmt.Errorf("empty ${} reference in %q", s)
		}

		value, ok, err := lookup(name)
		switch {
		case err != nil:
			return "", err
		case !ok && strict:
			return "", fmt.Errorf("%w: %s", ErrUnboundVariable, name)
		case !ok:
			out.WriteString(s[start : end+1])
		default:
			expanded, err := expand(value, depth+1, lookup, strict)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
		}
		s = s[end+1:]
	}
}

// resolver expands every defined key once, detecting reference cycles.
type resolver struct {
	raw      map[string]string
	env      func(string) (string, bool)
	resolved map[string]string
}

// resolve returns the fully expanded value for key. The second return
// reports whether the key is bound at all. References to undefined keys
// are left literal; they surface as ErrUnboundVariable when the value is
// later substituted into a command.
func (r *resolver) resolve(key string, stack []string) (string, bool, error) {
	if v, ok := r.resolved[key]; ok {
		return v, true, nil
	}
	for _, name := range stack {
		if name == key {
			cycle := append(append([]string{}, stack...), key)
			return "", false, fmt.Errorf("%w: %s", ErrSettingsCycle, strings.Join(cycle, " -> "))
		}
	}

	raw, ok := r.raw[key]
	if !ok {
		// Referenced but never defined: the environment is the last resort.
		v, ok := r.env(key)
		return v, ok, nil
	}

	stack = append(stack, key)
	value, err := expand(raw, 0, func(name string) (string, bool, error) {
		return r.resolve(name, stack)
	}, false)
	if err != nil {
		return "", false, err
	}
	r.resolved[key] = value
	return value, true, nil
}
