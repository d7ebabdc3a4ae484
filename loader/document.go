package loader

import (
	"path/filepath"
	"strings"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/source"
)

// Kind is the logical source type of a document.
type Kind string

const (
	// KindColumns is a codebook: {"columns": {name: Column}} or a bare
	// name->Column mapping.
	KindColumns Kind = "columns"
	// KindDemographicAnalysis is one *_demographic_analysis result.
	KindDemographicAnalysis Kind = "demographic_analysis"
	// KindFeatureImportanceSummary is the singleton summary document.
	KindFeatureImportanceSummary Kind = "feature_importance_summary"
)

// Document is one raw source document handed to the loader.
type Document struct {
	ID    string
	Kind  Kind
	Value any
	// Issues were recorded while decoding the document. A fatal one fails
	// the whole document; warnings travel with its records.
	Issues codebook.Issues
}

// FromBytes decodes data into a Document. Decode problems are kept on the
// Document and reported when it is loaded.
func FromBytes(id string, kind Kind, format source.Format, data []byte, pol codebook.Policy) Document {
	v, iss := source.Decode(data, format, pol)
	return Document{ID: id, Kind: kind, Value: v, Issues: iss}
}

// KindOf infers a document kind from a file name, following the layout the
// codebook generator writes: model.json or columns.json for the codebook,
// <COLUMN>_demographic_analysis.json per analysis and
// feature_importance_summary.json.
func KindOf(name string) (Kind, bool) {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	switch {
	case base == "model" || base == "columns":
		return KindColumns, true
	case base == "feature_importance_summary":
		return KindFeatureImportanceSummary, true
	case strings.HasSuffix(base, "_demographic_analysis"):
		return KindDemographicAnalysis, true
	}
	return "", false
}
