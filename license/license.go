// Package license generates license texts from an embedded catalog of SPDX identifiers.
package license

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

type (
	// Selection is the license chosen for a project. Owner and Year only matter for a real license.
	Selection struct {
		ID    string
		Owner string
		Year  int
	}

	// Generator renders the full text of a license.
	Generator interface {
		Generate(sel Selection) (string, error)
	}

	// Catalog is the [Generator] backed by the embedded license texts.
	Catalog struct {
		tmplt *template.Template
	}
)

const (
	// Unlicensed is the npm sentinel for proprietary or not-yet-licensed packages.
	Unlicensed = "UNLICENSED"

	// FileName is where generated licenses are written.
	FileName = "LICENSE.md"

	tmpltExt = ".tmplt"
)

var (
	//go:embed texts/*.tmplt
	textsFS embed.FS

	// IDs lists the supported SPDX identifiers, most common first.
	IDs = []string{"MIT", "ISC", "Apache-2.0", "BSD-2-Clause", "BSD-3-Clause", "0BSD", "Unlicense"}

	ErrUnknownLicense = errors.New("unknown license")
	ErrMissingOwner   = errors.New("license owner is required")
)

// Choices returns [IDs] followed by [Unlicensed], for select prompts.
func Choices() []string {
	return append(slices.Clone(IDs), Unlicensed)
}

// Canonical maps a case-insensitive identifier to its catalog spelling.
// Non-nil returned error wraps [ErrUnknownLicense].
func Canonical(id string) (string, error) {
	id = strings.TrimSpace(id)

	for _, known := range Choices() {
		if strings.EqualFold(known, id) {
			return known, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLicense, id)
}

func (s Selection) Unlicensed() bool {
	return s.ID == "" || strings.EqualFold(s.ID, Unlicensed)
}

// Validate checks the auxiliary fields, which are required only for a real license.
// Non-nil returned error wraps [ErrUnknownLicense] or [ErrMissingOwner].
func (s Selection) Validate() error {
	if s.Unlicensed() {
		return nil
	}

	if _, err := Canonical(s.ID); err != nil {
		return err
	}

	if strings.TrimSpace(s.Owner) == "" {
		return fmt.Errorf("%w for %s", ErrMissingOwner, s.ID)
	}

	return nil
}

func NewCatalog() (*Catalog, error) {
	tmplt, err := template.New("license").Delims("{%", "%}").ParseFS(textsFS, "texts/*"+tmpltExt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse license templates: %w", err)
	}

	return &Catalog{tmplt: tmplt}, nil
}

// Generate implements [Generator].
// Non-nil returned error wraps [ErrUnknownLicense] or [ErrMissingOwner].
func (c *Catalog) Generate(sel Selection) (string, error) {
	if sel.Unlicensed() {
		return "", fmt.Errorf("%w: %s has no license text", ErrUnknownLicense, Unlicensed)
	}

	if err := sel.Validate(); err != nil {
		return "", err
	}

	id, _ := Canonical(sel.ID)

	var b bytes.Buffer

	err := c.tmplt.ExecuteTemplate(&b, id+tmpltExt, struct {
		Owner string
		Year  string
	}{
		Owner: strings.TrimSpace(sel.Owner),
		Year:  strconv.Itoa(sel.Year),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render the %s license: %w", id, err)
	}

	return b.String(), nil
}
