package record

import (
	"context"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
)

// ValueEntry is one coded-value interpretation of a column: either a discrete
// label (ValueDef) or a contiguous numeric range (ValueRange).
type ValueEntry interface {
	Def() ValueDef
	valueEntry()
}

// ValueDef labels a value that has no numeric code (blank, free text).
type ValueDef struct {
	Description      string `json:"description"`
	IndicatesMissing bool   `json:"indicates_missing"`
}

// ValueRange labels the codes start..end inclusive.
type ValueRange struct {
	ValueDef
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count float64 `json:"count"`
}

func (d ValueDef) Def() ValueDef   { return d }
func (r ValueRange) Def() ValueDef { return r.ValueDef }
func (ValueDef) valueEntry()       {}
func (ValueRange) valueEntry()     {}

// Covers reports whether code lies within the range.
func (r ValueRange) Covers(code float64) bool { return r.Start <= code && code <= r.End }

// Width is the number of codes the range spans.
func (r ValueRange) Width() float64 { return r.End - r.Start + 1 }

// Variant names used by the value entry union.
const (
	VariantValueRange = "ValueRange"
	VariantValueDef   = "ValueDef"
)

// valueEntryUnion tries ValueRange first: a record that satisfies it also
// satisfies ValueDef's required subset.
func valueEntryUnion(ctx context.Context) dsl.Union[ValueEntry] {
	legacy := codebook.PolicyFrom(ctx).AcceptLegacy
	return dsl.Union[ValueEntry]{
		Name: "ValueEntry",
		Variants: []dsl.Variant[ValueEntry]{
			{
				Name: VariantValueRange,
				Requires: []dsl.Requirement{
					{Key: "description", Shape: dsl.ShapeString},
					{Key: "start", Shape: dsl.ShapeNumber},
					{Key: "end", Shape: dsl.ShapeNumber},
					{Key: "count", Shape: dsl.ShapeNumber},
				},
				Signature: []string{"start", "end", "count"},
				Decode: func(o *dsl.Obj) ValueEntry {
					return ValueRange{
						ValueDef: decodeValueDef(o, legacy),
						Start:    dsl.Req(o, "start", dsl.Number),
						End:      dsl.Req(o, "end", dsl.Number),
						Count:    dsl.Req(o, "count", dsl.Number),
					}
				},
			},
			{
				Name:     VariantValueDef,
				Requires: []dsl.Requirement{{Key: "description", Shape: dsl.ShapeString}},
				Decode: func(o *dsl.Obj) ValueEntry {
					return decodeValueDef(o, legacy)
				},
			},
		},
	}
}

func decodeValueDef(o *dsl.Obj, legacy bool) ValueDef {
	d := ValueDef{Description: dsl.Req(o, "description", dsl.String)}
	switch {
	case o.Has("indicates_missing"):
		d.IndicatesMissing = dsl.Default(o, "indicates_missing", dsl.Bool, false)
	case legacy && o.Has("missing"):
		d.IndicatesMissing = dsl.Default(o, "missing", dsl.Bool, false)
		o.Add(codebook.Deprecated(o.At("missing"), "indicates_missing"))
	}
	return d
}

// SelectValueEntry reports which variant a raw value entry resolves to
// ("" when unresolvable). It performs no field validation.
func SelectValueEntry(v any) string { return valueEntryUnion(context.Background()).Select(v) }

// LookupEntry maps one code (nil for the missing/NA slot) to its label.
type LookupEntry struct {
	Code  *float64
	Label string
}

// ValueLookup is the ordered code->label table of a column.
type ValueLookup []LookupEntry

// Label returns the label for code; a nil code addresses the null slot.
func (l ValueLookup) Label(code *float64) (string, bool) {
	for _, e := range l {
		if (e.Code == nil) == (code == nil) && (code == nil || *e.Code == *code) {
			return e.Label, true
		}
	}
	return "", false
}

// FormatCode renders a lookup code the way it appears as a JSON key.
func FormatCode(code *float64) string {
	if code == nil {
		return "null"
	}
	return strconv.FormatFloat(*code, 'f', -1, 64)
}

// MarshalJSON emits the table as an object keyed by code, in order.
func (l ValueLookup) MarshalJSON() ([]byte, error) {
	o := codebook.NewObject(len(l))
	for _, e := range l {
		o.Set(FormatCode(e.Code), e.Label)
	}
	return json.Marshal(o)
}

// parseCode reads a lookup key: "null" is the missing slot, anything else must
// be a finite number.
func parseCode(key string) (*float64, bool) {
	k := strings.TrimSpace(key)
	if k == "null" {
		return nil, true
	}
	f, err := strconv.ParseFloat(k, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// decodeValueLookup validates a code->label table. With legacy acceptance an
// entry written label->code is re-oriented and flagged as deprecated.
func decodeValueLookup(legacy bool) dsl.Prim[ValueLookup] {
	return func(p codebook.PathRef, v any) (ValueLookup, error) {
		entries, err := dsl.MapOf(dsl.String)(p, v)
		iss := codebook.ToIssues(err)
		if entries == nil && err != nil {
			return nil, err
		}
		out := make(ValueLookup, 0, len(entries))
		seen := make(map[string]string, len(entries))
		add := func(key string, code *float64, label string) {
			norm := FormatCode(code)
			if first, dup := seen[norm]; dup {
				iss = append(iss, codebook.DuplicateCode(p.Field(key), first, norm))
				return
			}
			seen[norm] = key
			out = append(out, LookupEntry{Code: code, Label: label})
		}
		for _, e := range entries {
			if code, ok := parseCode(e.Key); ok {
				add(e.Key, code, e.Value)
				continue
			}
			if legacy {
				if code, ok := parseCode(e.Value); ok {
					iss = append(iss, codebook.Deprecated(p.Field(e.Key), "code->label orientation"))
					add(e.Key, code, e.Key)
					continue
				}
			}
			iss = append(iss, codebook.TypeMismatch(p.Field(e.Key), "number or null key", "string key"))
		}
		if len(iss) > 0 {
			return out, iss
		}
		return out, nil
	}
}
