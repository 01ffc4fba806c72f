// Package pagexml implements parsing of PAGE layout-analysis XML documents,
// the region/line/polygon format produced by OCR layout tools such as
// Transkribus, and recovers the authoritative reading order of a page.
//
// This package provides:
//
// - An object model for one page: regions, lines, and transcription alternatives
// - Lenient parsing that tolerates namespace prefixes and schema-version drift
// - Reading-order resolution from the page's ordered region group
// - Spatial line ordering from line or glyph polygon geometry
//
// The parser is deliberately forgiving, in the same way the upstream producer
// reads its own files with wildcard namespaces: element names are matched by
// local name, case-insensitively, and unknown content is ignored.
//
// Key Types:
//
// - Page: one parsed page in resolved reading order
// - Region: a classified text region with its spatially ordered lines
// - Line: a text line with its reference point and transcription alternatives
// - GeometryError: a region whose geometry could not be resolved
//
// Main Functions:
//
// - Parse: parses raw PAGE XML data into a Page
// - ParseFile: reads and parses a PAGE XML file
package pagexml
