package config

import (
	"errors"
	"strings"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// resolver expands ${NAME} and ${NAME:default} placeholders in scalar values.
// NAME is looked up in the environment first, then as a dotted configuration key.
type resolver struct {
	root      *yaml.Node
	lookupEnv func(string) (string, bool)
	active    map[string]bool
}

func newResolver(root *yaml.Node, lookupEnv func(string) (string, bool)) *resolver {
	return &resolver{
		root:      root,
		lookupEnv: lookupEnv,
		active:    make(map[string]bool),
	}
}

func (r *resolver) resolveAll() error {
	var errs []error
	for path := range leafPaths(r.root, nil) {
		if err := r.resolveKey(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *resolver) resolveKey(path []string) error {
	node := lookupPath(r.root, path)
	if node == nil || node.Kind != yaml.ScalarNode || !strings.Contains(node.Value, "${") {
		return nil
	}

	key := strings.Join(path, ".")
	if r.active[key] {
		return zerr.With(domain.ErrPlaceholderCycle, "key", key)
	}
	r.active[key] = true
	defer delete(r.active, key)

	value, err := r.expand(node.Value, key)
	if err != nil {
		return err
	}

	node.Value = value
	if node.Style == 0 {
		// Plain scalars get their type inferred again from the expanded value.
		node.Tag = ""
	}
	return nil
}

func (r *resolver) expand(s, key string) (string, error) {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		end := closingBrace(s, start+2)
		if end < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:start])

		name, def, hasDefault := strings.Cut(s[start+2:end], ":")
		name = strings.TrimSpace(name)

		value, found, err := r.lookup(name)
		if err != nil {
			return "", err
		}
		switch {
		case found:
			b.WriteString(value)
		case hasDefault:
			expanded, err := r.expand(def, key)
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
		default:
			return "", &domain.PlaceholderError{Placeholder: name, Key: key}
		}

		s = s[end+1:]
	}
}

func (r *resolver) lookup(name string) (string, bool, error) {
	if r.lookupEnv != nil {
		if v, ok := r.lookupEnv(name); ok {
			return v, true, nil
		}
	}

	path := strings.Split(name, ".")
	if err := r.resolveKey(path); err != nil {
		return "", false, err
	}
	node := lookupPath(r.root, path)
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false, nil
	}
	return node.Value, true, nil
}

// closingBrace returns the index of the brace closing the placeholder whose
// body starts at from, honouring nested placeholders. It returns -1 if unterminated.
func closingBrace(s string, from int) int {
	depth := 0
	for i := from; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "${"):
			depth++
			i++
		case s[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
