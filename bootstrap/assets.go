package bootstrap

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/go-git/go-billy/v5"
	"github.com/goccy/go-yaml"

	"github.com/kxue43/nodestarter/fsutil"
	"github.com/kxue43/nodestarter/manifest"
)

type (
	// nycConfig is the .nycrc.yml written for mocha projects.
	nycConfig struct {
		All           bool     `yaml:"all"`
		CheckCoverage bool     `yaml:"check-coverage"`
		Include       []string `yaml:"include"`
		Exclude       []string `yaml:"exclude"`
		Reporter      []string `yaml:"reporter"`
		Branches      int      `yaml:"branches"`
		Lines         int      `yaml:"lines"`
		Functions     int      `yaml:"functions"`
		Statements    int      `yaml:"statements"`
	}

	templateData struct {
		ProjectName string
		RequirePath string
		Mocha       bool
		Jest        bool
	}
)

const (
	tmpltExt = ".tmplt"
)

var (
	//go:embed "samples" "assets"
	assetsFS embed.FS
)

func newTemplateData(p Plan) templateData {
	return templateData{
		ProjectName: p.ProjectName,
		RequirePath: p.requirePath(),
		Mocha:       p.Manifest.TestFramework == manifest.FrameworkMocha,
		Jest:        p.Manifest.TestFramework == manifest.FrameworkJest,
	}
}

func parseTemplates(names ...string) (*template.Template, error) {
	tmplt, err := template.New("entry").Delims("{%", "%}").ParseFS(assetsFS, names...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	return tmplt, nil
}

func eslintConfig(p Plan) ([]byte, error) {
	const name = "assets/eslintrc.json" + tmpltExt

	tmplt, err := parseTemplates(name)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	if err = tmplt.ExecuteTemplate(&b, path.Base(name), newTemplateData(p)); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", ESLintFile, err)
	}

	return b.Bytes(), nil
}

func coverageConfig(p Plan) ([]byte, error) {
	include := "**/*.js"
	if p.Manifest.SrcDirectory != "" {
		include = p.Manifest.SrcDirectory + "/**/*.js"
	}

	data, err := yaml.Marshal(nycConfig{
		All:           true,
		CheckCoverage: true,
		Include:       []string{include},
		Exclude:       []string{"**/*" + manifest.NormalizeExtension(p.Manifest.TestExtension)},
		Reporter:      []string{"lcov", "text"},
		Branches:      100,
		Lines:         100,
		Functions:     100,
		Statements:    100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", CoverageFile, err)
	}

	return data, nil
}

// writeSamples renders the sample test tree of the plan's framework into dest. Every template file
// "name.tmplt" becomes "name" followed by the test file extension.
func writeSamples(dst billy.Filesystem, dest string, p Plan) error {
	srcPrefix := path.Join("samples", p.Manifest.TestFramework)

	if _, err := assetsFS.ReadDir(srcPrefix); err != nil {
		return fmt.Errorf("%q is not a directory of sample files: %w", srcPrefix, err)
	}

	var srcFiles []string

	err := fs.WalkDir(assetsFS, srcPrefix, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(name, tmpltExt) {
			srcFiles = append(srcFiles, name)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %q: %w", srcPrefix, err)
	}

	tmplt, err := parseTemplates(srcFiles...)
	if err != nil {
		return err
	}

	data := newTemplateData(p)
	ext := manifest.NormalizeExtension(p.Manifest.TestExtension)

	for _, srcFile := range srcFiles {
		rel := strings.TrimPrefix(strings.TrimPrefix(srcFile, srcPrefix), "/")
		destFile := path.Join(dest, strings.TrimSuffix(rel, tmpltExt)+ext)

		var b bytes.Buffer

		if err = tmplt.ExecuteTemplate(&b, path.Base(srcFile), data); err != nil {
			return fmt.Errorf("failed to create new file from template %q: %w", srcFile, err)
		}

		if err = fsutil.WriteFile(dst, destFile, b.Bytes(), filePerm); err != nil {
			return err
		}
	}

	return nil
}
