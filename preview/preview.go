// Package preview shows a project's README as GitHub-flavored HTML in the default browser.
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type (
	ReadmeCmd struct {
		Path string `arg:"" optional:"" default:"." type:"path" help:"Project directory or Markdown file to preview."`
		Lang string `name:"lang" default:"en" help:"Value of the page's lang attribute."`

		open func(io.Reader) error
	}

	page struct {
		Lang  string
		Title string
		Body  template.HTML
	}
)

const (
	readmeFile = "README.md"
)

var (
	//go:embed page.tmplt
	pageTemplate string

	pageTmplt = template.Must(template.New("page").Parse(pageTemplate))
)

// Render converts GitHub-flavored Markdown into a standalone HTML page.
func Render(source []byte, title, lang string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	var body, out bytes.Buffer

	if err := md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("failed to convert Markdown to HTML: %w", err)
	}

	// Raw HTML in the source is dropped since html.WithUnsafe is not set.
	err := pageTmplt.Execute(&out, page{Lang: lang, Title: title, Body: template.HTML(body.String())}) // #nosec G203
	if err != nil {
		return nil, fmt.Errorf("failed to insert converted HTML into template: %w", err)
	}

	return out.Bytes(), nil
}

func (c *ReadmeCmd) AfterApply() error {
	stat, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", c.Path, err)
	}

	if stat.IsDir() {
		c.Path = filepath.Join(c.Path, readmeFile)
	}

	if c.open == nil {
		c.open = browser.OpenReader
	}

	return nil
}

func (c *ReadmeCmd) Run() error {
	source, err := os.ReadFile(filepath.Clean(c.Path))
	if err != nil {
		return fmt.Errorf("failed to read the Markdown file at %q: %w", c.Path, err)
	}

	html, err := Render(source, filepath.Base(filepath.Dir(c.Path)), c.Lang)
	if err != nil {
		return err
	}

	if err = c.open(bytes.NewReader(html)); err != nil {
		return fmt.Errorf("failed to open rendered HTML in default browser: %w", err)
	}

	return nil
}
