// Package config loads profile based application configuration.
package config

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// BaseName is the stem of every configuration file.
const BaseName = "application"

//go:embed resources/*.yaml
var resources embed.FS

// EmbeddedFS returns the configuration files compiled into the binary.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(resources, "resources")
	if err != nil {
		panic(err)
	}
	return sub
}

var validProfileRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader over YAML files.
//
// Sources are applied lowest precedence first: the base file, then one file
// per profile in order. For every file the embedded copy is applied before the
// copy in ConfigDir. Environment bindings and Overrides are applied last.
type Loader struct {
	Embedded  fs.FS
	Dir       fs.FS
	Overrides map[string]string
	LookupEnv func(string) (string, bool)
	Environ   func() []string
}

// NewLoader creates a Loader for the given bootstrap inputs.
func NewLoader(b domain.Bootstrap) *Loader {
	b = b.WithDefaults()
	l := &Loader{
		Embedded:  EmbeddedFS(),
		Overrides: b.Overrides,
		LookupEnv: b.LookupEnv,
		Environ:   b.Environ,
	}
	if b.ConfigDir != "" {
		l.Dir = os.DirFS(b.ConfigDir)
	}
	return l
}

// Load merges all configuration sources for profiles and binds the result.
func (l *Loader) Load(profiles []string) (*domain.Settings, error) {
	root, err := l.Merge(profiles)
	if err != nil {
		return nil, err
	}
	return Bind(root)
}

// Merge builds the resolved configuration tree without binding it.
func (l *Loader) Merge(profiles []string) (*yaml.Node, error) {
	for _, p := range profiles {
		if !validProfileRegex.MatchString(p) {
			return nil, zerr.With(domain.ErrInvalidProfile, "profile", p)
		}
	}

	root := newMapping()

	if _, err := l.mergeFile(root, BaseName+".yaml"); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		found, err := l.mergeFile(root, BaseName+"-"+p+".yaml")
		if err != nil {
			return nil, err
		}
		if !found && p != domain.DefaultProfile {
			return nil, zerr.With(domain.ErrProfileNotFound, "profile", p)
		}
	}

	l.applyEnvironment(root)

	if err := l.applyOverrides(root); err != nil {
		return nil, err
	}

	if err := newResolver(root, l.LookupEnv).resolveAll(); err != nil {
		return nil, err
	}

	return root, nil
}

// mergeFile merges name from every source into root and reports whether any source had it.
func (l *Loader) mergeFile(root *yaml.Node, name string) (bool, error) {
	found := false
	for _, fsys := range []fs.FS{l.Embedded, l.Dir} {
		if fsys == nil {
			continue
		}
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", name)
		}
		found = true

		doc, err := parse(data)
		if err != nil {
			return false, zerr.With(err, "file", name)
		}
		if doc != nil {
			mergeMapping(root, doc)
		}
	}
	return found, nil
}

// applyEnvironment binds MAZEREPAIR_* variables onto keys that already exist in root.
func (l *Loader) applyEnvironment(root *yaml.Node) {
	if l.Environ == nil {
		return
	}

	known := make(map[string][]string)
	for path := range leafPaths(root, nil) {
		known[EnvName(strings.Join(path, "."))] = path
	}

	for _, kv := range l.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == domain.ProfilesEnvVar {
			continue
		}
		if path, ok := known[name]; ok {
			setPath(root, path, newScalar(value))
		}
	}
}

func (l *Loader) applyOverrides(root *yaml.Node) error {
	for _, key := range slices.Sorted(maps.Keys(l.Overrides)) {
		path := strings.Split(key, ".")
		if slices.Contains(path, "") {
			return zerr.With(domain.ErrInvalidOverride, "key", key)
		}
		setPath(root, path, newScalar(l.Overrides[key]))
	}
	return nil
}

// EnvName returns the environment variable bound to a dotted configuration key.
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return domain.EnvPrefix + strings.ToUpper(r.Replace(key))
}

// ParseOverride splits a key=value pair.
func ParseOverride(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", zerr.With(domain.ErrInvalidOverride, "override", s)
	}
	return key, value, nil
}

// Bind decodes the configuration tree into Settings and validates it.
// Unknown keys are rejected.
func Bind(root *yaml.Node) (*domain.Settings, error) {
	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var settings domain.Settings
	if err := dec.Decode(&settings); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Render encodes settings as YAML with two space indentation.
func Render(settings *domain.Settings) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return nil, zerr.Wrap(err, "failed to render configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to render configuration")
	}
	return buf.Bytes(), nil
}
