package loader

import (
	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

// Validated is a record that passed validation, with the warnings it
// carries.
type Validated[T any] struct {
	ID       string
	Value    T
	Warnings codebook.Issues
}

// Report lists the issues of one document or record.
type Report struct {
	DocumentID string
	Kind       Kind
	Issues     codebook.Issues
}

// Collection is the ordered outcome for one kind of record. Records and
// Failures both follow input order.
type Collection[T any] struct {
	Records  []Validated[T]
	Failures []Report
	// Notices hold document warnings that belong to no single record, such
	// as a duplicate key at the top of a columns document.
	Notices []Report
}

// Values returns the validated records without their warnings.
func (c Collection[T]) Values() []T {
	out := make([]T, len(c.Records))
	for i, r := range c.Records {
		out[i] = r.Value
	}
	return out
}

// Get returns the record with the given id.
func (c Collection[T]) Get(id string) (Validated[T], bool) {
	for _, r := range c.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Validated[T]{}, false
}

// OK reports whether nothing in the collection failed.
func (c Collection[T]) OK() bool { return len(c.Failures) == 0 }

// Result is the outcome of one load pass.
type Result struct {
	// RunID identifies the pass in logs.
	RunID    string
	Columns  Collection[record.Column]
	Analyses Collection[record.DemographicAnalysis]
	// Summary holds at most one record.
	Summary Collection[record.FeatureImportanceSummary]
	// Unrouted lists documents whose kind is unknown.
	Unrouted []Report
}

// FeatureImportanceSummary returns the validated summary, if any.
func (r *Result) FeatureImportanceSummary() (record.FeatureImportanceSummary, bool) {
	if len(r.Summary.Records) == 0 {
		return record.FeatureImportanceSummary{}, false
	}
	return r.Summary.Records[0].Value, true
}

// Failures returns every failure of the pass in kind order.
func (r *Result) Failures() []Report {
	var out []Report
	out = append(out, r.Columns.Failures...)
	out = append(out, r.Analyses.Failures...)
	out = append(out, r.Summary.Failures...)
	out = append(out, r.Unrouted...)
	return out
}

// OK reports whether every document loaded without a fatal issue.
func (r *Result) OK() bool { return len(r.Failures()) == 0 }
