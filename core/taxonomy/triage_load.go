package taxonomy

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/taxonomy.yaml defaults/rules.yaml
var defaultsFS embed.FS

// Tables bundles the two configuration documents the pipeline needs.
type Tables struct {
	Taxonomy *Taxonomy
	Rules    *RuleTable
}

// LoadDefaults loads the embedded taxonomy and rule documents.
func LoadDefaults() (*Tables, error) {
	taxBytes, err := defaultsFS.ReadFile("defaults/taxonomy.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded taxonomy: %w", err)
	}
	ruleBytes, err := defaultsFS.ReadFile("defaults/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded rules: %w", err)
	}
	return LoadBytes(taxBytes, ruleBytes)
}

// LoadFiles loads taxonomy and rules from external files. Either path may
// be empty, in which case the embedded default for that document is used.
func LoadFiles(taxonomyPath, rulesPath string) (*Tables, error) {
	taxBytes, err := readOrDefault(taxonomyPath, "defaults/taxonomy.yaml")
	if err != nil {
		return nil, err
	}
	ruleBytes, err := readOrDefault(rulesPath, "defaults/rules.yaml")
	if err != nil {
		return nil, err
	}
	return LoadBytes(taxBytes, ruleBytes)
}

// LoadBytes parses and validates raw YAML documents.
func LoadBytes(taxonomyYAML, rulesYAML []byte) (*Tables, error) {
	var taxDoc taxonomyDoc
	if err := yaml.Unmarshal(taxonomyYAML, &taxDoc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	tax, err := newTaxonomy(&taxDoc)
	if err != nil {
		return nil, err
	}

	var rDoc ruleDoc
	if err := yaml.Unmarshal(rulesYAML, &rDoc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	rules, err := newRuleTable(&rDoc, tax)
	if err != nil {
		return nil, err
	}

	return &Tables{Taxonomy: tax, Rules: rules}, nil
}

func readOrDefault(path, embedded string) ([]byte, error) {
	if path == "" {
		return defaultsFS.ReadFile(embedded)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
