package pagexml

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts one PAGE XML document into a Page. pageID identifies the
// source document in errors and diagnostics (usually the file name).
//
// Regions that fail geometry resolution are recorded in Page.Problems and
// skipped; the rest of the page is returned normally. Only a document that
// cannot be read or decoded at all produces a non-nil error.
func Parse(pageID string, data []byte) (Page, error) {
	page := Page{ID: pageID}

	decoded, err := decodeCharset(data)
	if err != nil {
		return page, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return page, err
	}

	page.ReadingOrder = parseReadingOrder(doc)

	// Collect all TextRegion elements that contain at least one TextLine.
	var regionNodes []*html.Node
	walk(doc, func(n *html.Node) bool {
		if isElement(n, "textregion") && hasDescendant(n, "textline") {
			regionNodes = append(regionNodes, n)
			return false
		}
		return true
	})

	byID := make(map[string]Region, len(regionNodes))
	for _, rn := range regionNodes {
		region, err := processRegion(rn)
		if err != nil {
			page.Problems = append(page.Problems, &GeometryError{
				Page:   pageID,
				Region: getAttrVal(rn, "id"),
				Err:    err,
			})
			continue
		}
		byID[region.ID] = region
	}
	if len(byID) == 0 {
		return page, nil
	}

	// Only regions referenced by the ordered group survive, in group order.
	// Unreferenced regions are dropped, never appended. The filter applies
	// even when the page declares no reading order at all, so such a page
	// contributes nothing; Dropped records what was lost.
	emitted := make(map[string]bool)
	for _, id := range page.ReadingOrder {
		if r, ok := byID[id]; ok {
			page.Regions = append(page.Regions, r)
			emitted[id] = true
		}
	}
	for _, rn := range regionNodes {
		id := getAttrVal(rn, "id")
		if _, ok := byID[id]; ok && !emitted[id] {
			page.Dropped = append(page.Dropped, id)
		}
	}

	return page, nil
}

// ParseFile reads and parses a PAGE XML file. The page id is the file's
// base name.
func ParseFile(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	return Parse(filepath.Base(path), data)
}

// parseReadingOrder extracts the regionRef attributes of all RegionRefIndexed
// elements below an OrderedGroup, in document order.
func parseReadingOrder(doc *html.Node) []string {
	var order []string
	walk(doc, func(n *html.Node) bool {
		if isElement(n, "regionrefindexed") && hasAncestor(n, "orderedgroup") {
			if ref := getAttrVal(n, "regionref"); ref != "" {
				order = append(order, ref)
			}
		}
		return true
	})
	return order
}

// processRegion resolves one TextRegion: line geometry, spatial line order,
// and the region's own reference point.
func processRegion(n *html.Node) (Region, error) {
	region := Region{
		ID:   getAttrVal(n, "id"),
		Type: getAttrVal(n, "type"),
	}

	var lineNodes []*html.Node
	walk(n, func(c *html.Node) bool {
		if c != n && isElement(c, "textline") {
			lineNodes = append(lineNodes, c)
			return false
		}
		return true
	})

	// When any glyph-level geometry exists in the region, every line's
	// reference point comes from its first glyph polygon and lines without
	// one are silently skipped. Otherwise the line's own polygon is used
	// and missing geometry is a region failure.
	glyphGeometry := hasDescendant(n, "glyph")

	var lines []Line
	for _, ln := range lineNodes {
		line, ok, err := processLine(ln, glyphGeometry)
		if err != nil {
			return region, err
		}
		if ok {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return region, errors.New("no usable lines")
	}

	// Ascending y only; document order breaks ties.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y < lines[j].Y })

	region.Lines = lines
	region.X = lines[0].X
	region.Y = lines[0].Y
	return region, nil
}

// processLine resolves one TextLine. The second return value is false when
// the line is silently skipped (glyph geometry expected but absent).
func processLine(n *html.Node, glyphGeometry bool) (Line, bool, error) {
	line := Line{ID: getAttrVal(n, "id")}

	var points string
	if glyphGeometry {
		coords := findGlyphCoords(n)
		if coords == nil {
			return line, false, nil
		}
		var ok bool
		points, ok = lookupAttr(coords, "points")
		if !ok {
			return line, false, nil
		}
	} else {
		coords := findLineCoords(n)
		if coords == nil {
			return line, false, fmt.Errorf("line %s has no coordinates", line.ID)
		}
		points = getAttrVal(coords, "points")
	}

	pts, err := parsePoints(points)
	if err != nil {
		return line, false, fmt.Errorf("line %s: %w", line.ID, err)
	}
	ref := referencePoint(pts)
	line.X = ref.X
	line.Y = ref.Y

	line.Alternatives = parseAlternatives(n)
	return line, true, nil
}

// parseAlternatives collects the line's own indexed TextEquiv elements,
// excluding word- and glyph-level alternatives.
func parseAlternatives(line *html.Node) []Alternative {
	var alts []Alternative
	walk(line, func(n *html.Node) bool {
		if n != line && (isElement(n, "word") || isElement(n, "glyph")) {
			return false
		}
		if isElement(n, "textequiv") {
			if idx, ok := lookupAttr(n, "index"); ok {
				alts = append(alts, Alternative{Index: idx, Text: unicodeText(n)})
			}
			return false
		}
		return true
	})
	return alts
}

// unicodeText returns the text content of the first Unicode element below n.
func unicodeText(n *html.Node) string {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(c, "unicode") {
			found = c
			return false
		}
		return true
	})
	if found == nil {
		return ""
	}
	return extractTextContent(found)
}

// findGlyphCoords returns the first Coords element below the line whose
// parent is a Glyph.
func findGlyphCoords(line *html.Node) *html.Node {
	var found *html.Node
	walk(line, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(n, "coords") && n.Parent != nil && isElement(n.Parent, "glyph") {
			found = n
			return false
		}
		return true
	})
	return found
}

// findLineCoords returns the line's own Coords element, excluding word- and
// glyph-level geometry.
func findLineCoords(line *html.Node) *html.Node {
	var found *html.Node
	walk(line, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != line && (isElement(n, "word") || isElement(n, "glyph")) {
			return false
		}
		if isElement(n, "coords") {
			found = n
			return false
		}
		return true
	})
	return found
}

// parsePoints parses a PAGE points attribute: space-separated "x,y" pairs.
func parsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, tok := range strings.Split(s, " ") {
		xy := strings.Split(tok, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("malformed coordinate token %q", tok)
		}
		x, err := strconv.Atoi(xy[0])
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate token %q", tok)
		}
		y, err := strconv.Atoi(xy[1])
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate token %q", tok)
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts, nil
}

// referencePoint picks the lexicographically smallest (y, x) vertex.
// parsePoints never returns an empty, error-free polygon, so pts is non-empty.
func referencePoint(pts []Point) Point {
	ref := pts[0]
	for _, p := range pts[1:] {
		if p.Y < ref.Y || (p.Y == ref.Y && p.X < ref.X) {
			ref = p
		}
	}
	return ref
}

// decodeCharset converts documents declaring a non-UTF-8 encoding to UTF-8.
func decodeCharset(data []byte) ([]byte, error) {
	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	lower := strings.ToLower(string(head))
	idx := strings.Index(lower, "encoding=")
	if idx < 0 {
		return data, nil
	}
	rest := lower[idx+len("encoding="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == '?' || r == '>' || r == ' '
	})
	if len(fields) == 0 {
		return data, nil
	}
	enc := fields[0]
	if enc == "" || enc == "utf-8" || enc == "utf8" {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
	}
	return decoded, nil
}

// walk visits n and its descendants in document order. The visit callback
// returns false to skip a node's subtree.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// isElement matches an element by local name so namespace prefixes
// (<pc:TextRegion>) resolve the same as unprefixed ones.
func isElement(n *html.Node, name string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	local := n.Data
	if i := strings.LastIndex(local, ":"); i >= 0 {
		local = local[i+1:]
	}
	return local == name
}

func hasDescendant(n *html.Node, name string) bool {
	found := false
	walk(n, func(c *html.Node) bool {
		if found {
			return false
		}
		if c != n && isElement(c, name) {
			found = true
			return false
		}
		return true
	})
	return found
}

func hasAncestor(n *html.Node, name string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, name) {
			return true
		}
	}
	return false
}

// extractTextContent gets all text from a node and its children.
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += extractTextContent(c)
	}
	return strings.TrimSpace(text)
}

// getAttrVal returns the value of an attribute, or "" if absent.
func getAttrVal(n *html.Node, attrName string) string {
	v, _ := lookupAttr(n, attrName)
	return v
}

// lookupAttr returns an attribute value and whether it is present.
func lookupAttr(n *html.Node, attrName string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val, true
		}
	}
	return "", false
}
