package pagexml

import "sort"

// Point is a polygon vertex in page pixel coordinates.
type Point struct {
	X int
	Y int
}

// Alternative is one transcription candidate of a line, keyed by the
// index attribute of its TextEquiv element. Indices are kept as strings
// and compared lexicographically, matching the upstream producer.
type Alternative struct {
	Index string
	Text  string
}

// Line is a text line with its reference point and transcription alternatives.
// The reference point is the lexicographically smallest (y, x) vertex of the
// line's own polygon, or of its first glyph's polygon when the region carries
// glyph-level geometry.
type Line struct {
	ID           string
	X            int
	Y            int
	Alternatives []Alternative
}

// Text returns the canonical text of the line: the alternative with the
// lexicographically smallest index, or the empty string if the line has no
// indexed alternatives.
func (l Line) Text() string {
	if len(l.Alternatives) == 0 {
		return ""
	}
	alts := make([]Alternative, len(l.Alternatives))
	copy(alts, l.Alternatives)
	sort.SliceStable(alts, func(i, j int) bool { return alts[i].Index < alts[j].Index })
	return alts[0].Text
}

// Region is a classified zone of the page with its lines in spatial order.
// Its reference point is the reference point of its topmost line.
type Region struct {
	ID    string
	Type  string
	X     int
	Y     int
	Lines []Line
}

// Text joins the non-empty line texts of the region with newlines.
func (r Region) Text() string {
	var out string
	first := true
	for _, ln := range r.Lines {
		t := ln.Text()
		if t == "" {
			continue
		}
		if !first {
			out += "\n"
		}
		out += t
		first = false
	}
	return out
}

// Page is one parsed page document. Regions appear in resolved reading order:
// only regions referenced by the page's ordered group survive, in group order.
type Page struct {
	ID           string
	ReadingOrder []string
	Regions      []Region

	// Dropped lists ids of qualifying regions excluded by the reading order.
	Dropped []string

	// Problems collects per-region geometry failures. The affected regions
	// are skipped; the rest of the page is usable.
	Problems []*GeometryError
}
