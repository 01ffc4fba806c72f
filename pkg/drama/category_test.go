package drama

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"header", Header},
		{"heading", Heading},
		{"TOC-entry", TOCEntry},
		{"signature-mark", SignatureMark},
		{"floating", Floating},
		{"credit", Credit},
		{"drop-capital", DropCapital},
		{"paragraph", Paragraph},
		{"caption", Caption},
		{"footnote", Footnote},
		{"catch-word", CatchWord},
		{"other", Other},
		{"toc-entry", Unknown}, // vocabulary is case sensitive
		{"", Unknown},
		{"marginalia", Unknown},
	}
	for _, tc := range cases {
		if got := ParseCategory(tc.in); got != tc.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBodyMarker(t *testing.T) {
	markers := map[Category]bool{
		Header:        true,
		Heading:       true,
		Floating:      true,
		Credit:        true,
		DropCapital:   true,
		TOCEntry:      false,
		SignatureMark: false,
		Paragraph:     false,
		Caption:       false,
		Footnote:      false,
		CatchWord:     false,
		Other:         false,
		Unknown:       false,
	}
	for cat, want := range markers {
		if got := cat.BodyMarker(); got != want {
			t.Errorf("%v.BodyMarker() = %v, want %v", cat, got, want)
		}
	}
}
