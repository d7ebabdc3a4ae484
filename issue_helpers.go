package codebook

import (
	"strconv"
	"strings"

	"github.com/reoring/codebook/i18n"
)

// IssueAt creates an Issue at the given path with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params, Severity: defaultSeverity(code)}
}

// TypeMismatch reports a value whose shape differs from the expected one.
func TypeMismatch(p PathRef, expected, actual string) Issue {
	msg := i18n.T(CodeTypeMismatch, map[string]string{"expected": expected, "actual": actual})
	return IssueAt(p, CodeTypeMismatch, msg, map[string]any{"expected": expected, "actual": actual})
}

// MissingField reports an absent required field.
func MissingField(p PathRef) Issue {
	return IssueAt(p, CodeMissingRequiredField, i18n.T(CodeMissingRequiredField, nil), nil)
}

// UnresolvableUnion reports a record that matches none of the attempted variants.
func UnresolvableUnion(p PathRef, union string, variants []string) Issue {
	list := strings.Join(variants, ", ")
	it := IssueAt(p, CodeUnresolvableUnion,
		i18n.T(CodeUnresolvableUnion, map[string]string{"union": union, "variants": list}),
		map[string]any{"union": union, "variants": append([]string(nil), variants...)})
	it.Hint = "attempted: " + list
	return it
}

// Violation builds a consistency violation. The rule runner stamps Rule and
// Severity; callers only describe where and what.
func Violation(p PathRef, detail string, kv ...any) Issue {
	return p.Issue(CodeConsistencyViolation, detail, kv...)
}

// Deprecated reports a legacy field that was accepted and migrated.
func Deprecated(p PathRef, replacement string) Issue {
	return IssueAt(p, CodeDeprecatedField,
		i18n.T(CodeDeprecatedField, map[string]string{"replacement": replacement}),
		map[string]any{"replacement": replacement})
}

// DuplicateDocument reports a second instance of a singleton document.
func DuplicateDocument(p PathRef, first string) Issue {
	return IssueAt(p, CodeDuplicateDocument,
		i18n.T(CodeDuplicateDocument, map[string]string{"first": first}),
		map[string]any{"first": first})
}

// DuplicateCode reports a lookup key that denotes the same code as an earlier
// key once both are normalized. Unlike a repeated literal key it is fatal: the
// two labels cannot both survive re-serialization.
func DuplicateCode(p PathRef, first, code string) Issue {
	it := IssueAt(p, CodeDuplicateKey, i18n.T(CodeDuplicateKey, nil),
		map[string]any{"first": first, "code": code})
	it.Severity = Error
	it.Hint = "same code as " + strconv.Quote(first)
	return it
}

// Canceled reports a document that was never validated because the load was
// canceled.
func Canceled(cause error) Issue {
	it := IssueAt(Root(), CodeCanceled, i18n.T(CodeCanceled, nil), nil)
	if cause != nil {
		it.Hint = cause.Error()
	}
	return it
}
