package drama

// Category classifies a layout region into the vocabulary assigned by the
// upstream layout tool. Values outside the vocabulary map to Unknown and
// take the generic diagnostic branch.
type Category int

const (
	Unknown Category = iota
	Header
	Heading
	TOCEntry
	SignatureMark
	Floating
	Credit
	DropCapital
	Paragraph
	Caption
	Footnote
	CatchWord
	Other
)

var categoryNames = map[string]Category{
	"header":         Header,
	"heading":        Heading,
	"TOC-entry":      TOCEntry,
	"signature-mark": SignatureMark,
	"floating":       Floating,
	"credit":         Credit,
	"drop-capital":   DropCapital,
	"paragraph":      Paragraph,
	"caption":        Caption,
	"footnote":       Footnote,
	"catch-word":     CatchWord,
	"other":          Other,
}

// ParseCategory maps a region type string to its Category.
func ParseCategory(s string) Category {
	if c, ok := categoryNames[s]; ok {
		return c
	}
	return Unknown
}

// String returns the upstream type string of the category.
func (c Category) String() string {
	for name, cat := range categoryNames {
		if cat == c {
			return name
		}
	}
	return "unknown"
}

// BodyMarker reports whether a region of this category ends the front phase.
func (c Category) BodyMarker() bool {
	switch c {
	case Header, Heading, Floating, Credit, DropCapital:
		return true
	}
	return false
}
