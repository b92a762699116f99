// Package fixture loads conformance fixture corpora: declarative
// pattern-match and template cases shared across evaluator
// implementations. A corpus is a directory of YAML files, either local
// or materialized from a git source.
package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoFixtures = errors.New("fixture: no fixtures found")

// Fixture is one conformance case, holding exactly one of Match or
// Template.
type Fixture struct {
	Path        string        `yaml:"-"`
	Description string        `yaml:"description"`
	Match       *MatchCase    `yaml:"match"`
	Template    *TemplateCase `yaml:"template"`
}

// Name returns a stable identifier for subtests.
func (f *Fixture) Name() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

// MatchCase pairs a declarative pattern document with an input value.
// Input stays a yaml.Node so mapping order survives decoding.
type MatchCase struct {
	Pattern map[string]any `yaml:"pattern"`
	Input   yaml.Node      `yaml:"input"`
	Expect  MatchExpect    `yaml:"expect"`
}

// MatchExpect is either the ordered binding list or an error code
// (construction codes from pkg/pattern, "nullish_source" for
// evaluation).
type MatchExpect struct {
	Bindings []ExpectedBinding `yaml:"bindings"`
	Error    string            `yaml:"error"`
}

type ExpectedBinding struct {
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
}

// TemplateCase drives template parsing and rendering.
type TemplateCase struct {
	Source   string               `yaml:"source"`
	Bindings map[string]yaml.Node `yaml:"bindings"`
	Expect   TemplateExpect       `yaml:"expect"`
}

type TemplateExpect struct {
	Output string   `yaml:"output"`
	Cooked []string `yaml:"cooked"`
	Raw    []string `yaml:"raw"`
	Error  string   `yaml:"error"`
}

// Load reads a single fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	f.Path = path
	if (f.Match == nil) == (f.Template == nil) {
		return nil, fmt.Errorf("fixture: %s must hold exactly one of match or template", path)
	}
	return &f, nil
}

// LoadDir walks a corpus directory collecting every YAML fixture, in
// path order.
func LoadDir(dir string) ([]*Fixture, error) {
	var fixtures []*Fixture
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		f, err := Load(path)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFixtures, dir)
	}
	return fixtures, nil
}
