// Package dsl provides the building blocks record schemas are assembled
// from.
//
// Overview
//   - Prims: String, Number, Integer, NonNegInt, Bool, UnitInterval and Opaque
//     check one raw value and return it typed, or codebook.Issues naming the
//     expected and actual shape at a JSON Pointer path.
//   - Combinators: Nullable, ListOf and MapOf lift prims over null, arrays and
//     ordered objects, accumulating every element failure.
//   - Obj: a cursor over one object. Req, Opt and Default validate fields and
//     record failures on the cursor instead of returning early, so a record
//     with N defects reports N issues.
//   - Union: structural (tag-less) unions. Variants are ordered matchers over
//     required keys and shapes; the first match wins and its fields are then
//     validated. See Union.Resolve for the exact rule.
//
// Numbers arrive as json.Number from the source decoders but every Go
// numeric kind is accepted. NaN and infinities are always rejected.
package dsl
