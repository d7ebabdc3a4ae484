package codebook

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Policy configures how strictly documents are judged. The zero value is not
// useful on its own; start from DefaultPolicy.
type Policy struct {
	// Severities overrides the default severity of consistency rules by name
	// (for example {"LookupCoverage": Error}). Ignore disables a rule.
	Severities map[string]Severity `yaml:"severities"`
	// AcceptLegacy accepts the earlier codebook layout: "missing" instead of
	// "indicates_missing", statistics without missing_count/total_responses,
	// and label->code value_lookup tables. Each migration yields a
	// deprecated_field warning.
	AcceptLegacy bool `yaml:"accept_legacy"`
	// DuplicateKeys selects how repeated object keys in source documents are
	// reported. Error rejects the document.
	DuplicateKeys Severity `yaml:"duplicate_keys"`
	// MaxDepth limits document nesting (0 disables the check).
	MaxDepth int `yaml:"max_depth"`
	// MaxBytes limits consumed document bytes (0 disables the check).
	MaxBytes int64 `yaml:"max_bytes"`
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{DuplicateKeys: Warn}
}

// SeverityFor resolves the severity of rule, falling back to def.
func (p Policy) SeverityFor(rule string, def Severity) Severity {
	if s, ok := p.Severities[rule]; ok {
		return s
	}
	return def
}

// ParsePolicy decodes a YAML policy document on top of DefaultPolicy.
// Unknown keys are rejected.
//
//	accept_legacy: true
//	duplicate_keys: error
//	severities:
//	  LookupCoverage: error
//	  ResponseBudget: ignore
func ParsePolicy(data []byte) (Policy, error) {
	return LoadPolicy(bytes.NewReader(data))
}

// LoadPolicy reads a YAML policy from r. An empty input yields DefaultPolicy.
func LoadPolicy(r io.Reader) (Policy, error) {
	p := DefaultPolicy()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		return Policy{}, fmt.Errorf("codebook: decode policy: %w", err)
	}
	return p, nil
}

// UnmarshalYAML decodes "ignore" | "warn" | "error".
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	v, err := ParseSeverity(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = v
	return nil
}

// MarshalYAML renders the severity name.
func (s Severity) MarshalYAML() (any, error) { return s.String(), nil }
