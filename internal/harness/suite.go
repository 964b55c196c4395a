package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed suite.cue
var suiteSchema string

// DefaultTolerance is the allowed absolute score difference when a case sets none.
const DefaultTolerance = 1e-9

// Suite is a named list of scoring cases.
type Suite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`

	// path is the file the suite was loaded from, empty for in-memory suites.
	path string
}

// Path returns the file the suite was loaded from.
func (s *Suite) Path() string {
	return s.path
}

// Case pins the expected score of one submission against one target.
type Case struct {
	Name       string   `yaml:"name"`
	Submission string   `yaml:"submission"`
	Target     string   `yaml:"target"`
	Expect     float64  `yaml:"expect"`
	Tolerance  *float64 `yaml:"tolerance,omitempty"`
	Dedupe     bool     `yaml:"dedupe,omitempty"`
}

// Tol returns the case tolerance or DefaultTolerance.
func (c Case) Tol() float64 {
	if c.Tolerance == nil {
		return DefaultTolerance
	}
	return *c.Tolerance
}

// LoadSuite reads a suite file, checks it against the schema and resolves
// case paths relative to the file's directory.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	suite, err := ParseSuite(data)
	if err != nil {
		return nil, err
	}
	suite.path = path

	base := filepath.Dir(path)
	for i := range suite.Cases {
		c := &suite.Cases[i]
		if !filepath.IsAbs(c.Submission) {
			c.Submission = filepath.Join(base, c.Submission)
		}
		if !filepath.IsAbs(c.Target) {
			c.Target = filepath.Join(base, c.Target)
		}
	}

	return suite, nil
}

// ParseSuite decodes and validates suite YAML. Paths are left as written.
func ParseSuite(data []byte) (*Suite, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &suite, nil
}

// checkSchema unifies the decoded document with #Suite.
func checkSchema(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(suiteSchema, cue.Filename("suite.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile suite schema: %w", err)
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("encode suite: %s", cueerrors.Details(err, nil))
	}

	v := schema.LookupPath(cue.ParsePath("#Suite")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", firstLine(cueerrors.Details(err, nil)))
	}
	return nil
}

// validateSuite checks constraints the schema cannot express.
func validateSuite(s *Suite) error {
	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
