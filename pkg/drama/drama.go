// Package drama folds a linear stream of classified layout regions, spanning
// any number of page documents, into one nested TEI drama document.
//
// The conversion is a two-phase, stateful transduction. While the document is
// in its front phase, regions build front matter (title page, preface, cast
// list). The first region classified as a body marker (header, heading,
// floating, credit, drop-capital) switches the document to its body phase,
// which builds nested act/scene/speech structure. The phase never reverts.
//
// Open elements (the current act, scene, speech, ...) survive region and page
// boundaries inside the converter's state and are moved into the output
// stream exactly once, when they are flushed: an act when the next act begins
// or the input ends, the front subtree when the body phase starts.
//
// Whenever a region cannot be placed confidently, the converter emits a
// literal warning string as element text instead of failing. This is the
// designed degradation path; a curator finds the warnings by full-text
// search. Regions whose geometry is unusable are logged and skipped, and
// processing continues.
package drama
