package codebook

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch         = "type_mismatch"
	CodeMissingRequiredField = "missing_required_field"
	CodeUnresolvableUnion    = "unresolvable_union"
	CodeConsistencyViolation = "consistency_violation"
	// Decode and load passes
	CodeParseError        = "parse_error"
	CodeDuplicateKey      = "duplicate_key"
	CodeTruncated         = "truncated"
	CodeDeprecatedField   = "deprecated_field"
	CodeDuplicateDocument = "duplicate_document"
	CodeCanceled          = "canceled"
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity maps "ignore", "warn"/"warning" and "error"/"fatal" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "off":
		return Ignore, nil
	case "warn", "warning":
		return Warn, nil
	case "error", "fatal":
		return Error, nil
	}
	return Ignore, fmt.Errorf("codebook: unknown severity %q", s)
}

// Issue represents a single validation entry. Field errors and consistency
// violations are both Issues; the latter carry Rule.
type Issue struct {
	Path     string // JSON Pointer relative to the record (for example: /value_ranges/2/count).
	Code     string // One of the codes listed above.
	Message  string
	Hint     string // Optional: remediation hints, variant names, etc.
	Severity Severity
	// Rule records the consistency rule that produced this issue.
	Rule string
	// Params carries structured parameters (e.g., {"expected":"number", "actual":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Fatal reports whether the issue excludes its record from a collection.
func (it Issue) Fatal() bool { return it.Severity >= Error }

func (it Issue) String() string {
	var b strings.Builder
	b.WriteString(it.Code)
	if it.Rule != "" {
		b.WriteString("[" + it.Rule + "]")
	}
	b.WriteString(" at ")
	b.WriteString(it.Path)
	if it.Message != "" {
		b.WriteString(": ")
		b.WriteString(it.Message)
	}
	return b.String()
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasFatal reports whether any issue is fatal.
func (iss Issues) HasFatal() bool {
	for _, it := range iss {
		if it.Fatal() {
			return true
		}
	}
	return false
}

// Fatal returns the fatal subset, or nil.
func (iss Issues) Fatal() Issues { return iss.filter(func(it Issue) bool { return it.Fatal() }) }

// Warnings returns the non-fatal subset, or nil.
func (iss Issues) Warnings() Issues { return iss.filter(func(it Issue) bool { return !it.Fatal() }) }

// ByRule returns the issues produced by the named consistency rule.
func (iss Issues) ByRule(rule string) Issues {
	return iss.filter(func(it Issue) bool { return it.Rule == rule })
}

// ByCode returns the issues carrying the given code.
func (iss Issues) ByCode(code string) Issues {
	return iss.filter(func(it Issue) bool { return it.Code == code })
}

// Err returns iss as an error when it holds a fatal issue, nil otherwise.
func (iss Issues) Err() error {
	if iss.HasFatal() {
		return iss
	}
	return nil
}

func (iss Issues) filter(keep func(Issue) bool) Issues {
	var out Issues
	for _, it := range iss {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues converts any error into Issues. Errors that are not Issues become a
// single fatal parse_error at the root.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Severity: Error}}
}
