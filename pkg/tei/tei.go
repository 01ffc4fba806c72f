// Package tei implements building and incremental serialization of TEI
// drama markup.
//
// This package provides:
//
// - A small element tree (Element) the transducers assemble subtrees with
// - StreamWriter, an append-only serializer that keeps the document well
//   formed across an arbitrary number of appended subtrees
// - The fixed document envelope: XML prolog, stylesheet and schema
//   processing instructions, and a teiHeader with placeholder values
//
// The writer is strictly forward-only. Envelope elements (TEI, text, front,
// body) are opened and closed explicitly; completed subtrees are serialized
// in one call and never revisited. Any error on the underlying writer is
// sticky: once a write fails, every later call reports the same failure.
//
// Main Types:
//
// - Element: one node of the markup tree
// - StreamWriter: the incremental document serializer
// - DocumentMeta: envelope parameters (xml:id, language, stylesheet, schema)
package tei
