// Package manifest reads, synthesizes and writes package.json.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/kxue43/nodestarter/fsutil"
	"github.com/kxue43/nodestarter/jsonstream"
)

type (
	// Manifest is an in-memory package.json. Member order and unknown members are preserved.
	Manifest struct {
		doc *jsonstream.Object
	}

	// Handle is the single manifest of one bootstrap run: read once, modified in memory, written back
	// atomically.
	Handle struct {
		fs       billy.Filesystem
		path     string
		manifest *Manifest
	}
)

const FileName = "package.json"

var (
	ErrMalformedManifest = errors.New("malformed package.json")

	dependencyFields = []string{"dependencies", "devDependencies", "peerDependencies", "optionalDependencies"}
)

func New() *Manifest {
	return &Manifest{doc: jsonstream.NewObject()}
}

// Initial returns the starting manifest of a new project, the members `npm init -y` would write
// except the license, which is left to the license question.
func Initial(name string) (*Manifest, error) {
	m := New()

	for _, member := range []struct {
		key   string
		value string
	}{
		{"name", name},
		{"version", "1.0.0"},
		{"main", "index.js"},
	} {
		if err := m.doc.Set(member.key, member.value); err != nil {
			return nil, fmt.Errorf("failed to set %q: %w", member.key, err)
		}
	}

	return m, nil
}

// Parse decodes package.json contents.
// Non-nil returned error wraps [ErrMalformedManifest].
func Parse(data []byte) (*Manifest, error) {
	doc, err := jsonstream.ParseObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
	}

	m := &Manifest{doc: doc}

	for _, key := range []string{"scripts", "config", "repository", "bugs"} {
		// npm accepts string shorthands such as "repository": "github:user/repo".
		if raw, ok := doc.Raw(key); ok && (key == "repository" || key == "bugs") && len(raw) > 0 && raw[0] == '"' {
			continue
		}

		if _, err = doc.Object(key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
		}
	}

	for _, key := range dependencyFields {
		if _, err = m.stringMap(key); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Bytes renders the manifest the way npm formats it.
func (m *Manifest) Bytes() ([]byte, error) {
	return m.doc.Indent()
}

func (m *Manifest) Clone() *Manifest {
	return &Manifest{doc: m.doc.Clone()}
}

func (m *Manifest) Name() string {
	return m.doc.String("name")
}

func (m *Manifest) Description() string {
	return m.doc.String("description")
}

func (m *Manifest) License() string {
	return m.doc.String("license")
}

// Scripts returns a copy of the scripts map.
func (m *Manifest) Scripts() map[string]string {
	scripts, _ := m.stringMap("scripts")

	return scripts
}

// Config returns the config block, or an empty object.
func (m *Manifest) Config() *jsonstream.Object {
	config, err := m.doc.Object("config")
	if err != nil {
		return jsonstream.NewObject()
	}

	return config
}

// Dependencies reports every package name declared in any dependency map.
func (m *Manifest) Dependencies() map[string]bool {
	declared := make(map[string]bool)

	for _, key := range dependencyFields {
		deps, _ := m.stringMap(key)

		for name := range deps {
			declared[name] = true
		}
	}

	return declared
}

func (m *Manifest) stringMap(key string) (map[string]string, error) {
	values := make(map[string]string)

	if _, err := m.doc.Get(key, &values); err != nil {
		return nil, fmt.Errorf("%w: %q must map names to strings: %w", ErrMalformedManifest, key, err)
	}

	return values, nil
}

// Open reads path from fs. An absent file yields an empty manifest.
// Non-nil returned error wraps [ErrMalformedManifest] when the file cannot be parsed.
func Open(fs billy.Filesystem, path string) (*Handle, error) {
	h := &Handle{fs: fs, path: path}

	if err := h.Refresh(); err != nil {
		return nil, err
	}

	return h, nil
}

// Refresh re-reads the file. It exists for the one case where another process (npm install) rewrites
// package.json behind the handle's back.
// Non-nil returned error wraps [ErrMalformedManifest] when the file cannot be parsed.
func (h *Handle) Refresh() error {
	data, err := util.ReadFile(h.fs, h.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		h.manifest = New()

		return nil
	case err != nil:
		return fmt.Errorf("failed to read %q: %w", h.path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%q: %w", h.path, err)
	}

	h.manifest = m

	return nil
}

func (h *Handle) Manifest() *Manifest {
	return h.manifest
}

// Replace swaps the in-memory manifest, typically for the output of [Synthesize].
func (h *Handle) Replace(m *Manifest) {
	h.manifest = m
}

// Save writes the in-memory manifest atomically.
func (h *Handle) Save() error {
	data, err := h.manifest.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", h.path, err)
	}

	if err = fsutil.WriteFileAtomic(h.fs, h.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", h.path, err)
	}

	return nil
}
