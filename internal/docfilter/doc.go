// Package docfilter renders sqlparse predicate trees into MongoDB filter
// documents, and decodes such filters back into trees.
//
// # Mapping
//
// The six SQL comparison operators map bijectively onto Mongo's operator
// keys; equality uses the document-store idiom of a bare value:
//
//	field = v    {field: v}
//	field != v   {field: {$ne: v}}
//	field < v    {field: {$lt: v}}
//	field <= v   {field: {$lte: v}}
//	field > v    {field: {$gt: v}}
//	field >= v   {field: {$gte: v}}
//	AND          {$and: [...]}
//	OR           {$or: [...]}
//	NOT p        {$nor: [p]}
//
// IS NULL and IS NOT NULL arrive from the parser as equality comparisons
// against the null literal, so they render as {field: nil} and
// {field: {$ne: nil}}.
//
// Nested logical trees render recursively and are never flattened: an AND
// over an OR produces two nested wrapper levels, mirroring the tree.
//
// Render and Decode are pure functions. Decode is the exact inverse of
// Render for every filter Render can produce, which is what makes the
// operator mapping testable as a bijection.
package docfilter
