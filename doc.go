// Package codebook validates survey codebook metadata and the analytical
// artifacts derived from it (column statistics, demographic-analysis runs and
// feature-importance summaries).
//
// The root package holds only the shared vocabulary:
//
//   - Issue/Issues, a stable error model (JSON Pointer path, code, severity)
//   - PathRef for building JSON Pointer paths while walking a document
//   - Object, an insertion-ordered JSON object used for opaque payloads
//   - Policy, the severity/compatibility configuration carried through context
//
// Validation lives in subpackages: dsl (primitive validators and structural
// unions), record (record schemas), rules (cross-field consistency checks) and
// loader (collection assembly). Document decoding lives under source/.
//
// Typical usage:
//
//	docs := []loader.Document{
//		loader.FromBytes("model.json", loader.KindColumns, source.FormatJSON, data, pol),
//	}
//	res := loader.New(loader.Options{Policy: &pol}).Load(ctx, docs)
//	for _, c := range res.Columns.Values() { ... }
package codebook
