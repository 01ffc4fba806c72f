package tei

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/teiheader.tmpl
var templateFS embed.FS

// DocumentMeta parameterizes the fixed document envelope.
type DocumentMeta struct {
	ID         string // xml:id of the TEI root
	Language   string // xml:lang of the TEI root
	Stylesheet string // href of the xml-stylesheet processing instruction
	Schema     string // href of the xml-model processing instruction
}

// DefaultMeta returns the envelope defaults.
func DefaultMeta() DocumentMeta {
	return DocumentMeta{
		ID:         "ger000",
		Language:   "de",
		Stylesheet: "../css/tei.css",
		Schema:     "https://dracor.org/schema.rng",
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// StreamWriter serializes a TEI document incrementally. Subtrees are appended
// in call order; the document stays well formed because every opened envelope
// element is closed by End. Underlying write errors are sticky.
type StreamWriter struct {
	w     *bufio.Writer
	open  []string
	begun bool
	err   error
}

// NewStreamWriter creates a writer over w. Output is buffered; End flushes.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: bufio.NewWriter(w)}
}

// Begin writes the XML prolog, the stylesheet and schema processing
// instructions, the TEI open tag, and the placeholder teiHeader. The TEI
// element stays open until End.
func (sw *StreamWriter) Begin(meta DocumentMeta) error {
	if sw.err != nil {
		return sw.err
	}
	if sw.begun {
		return sw.fail(errors.New("document already begun"))
	}
	tmpl, err := template.New("teiheader.tmpl").ParseFS(templateFS, "templates/teiheader.tmpl")
	if err != nil {
		return sw.fail(fmt.Errorf("error parsing TEI header template: %w", err))
	}
	if err := tmpl.Execute(sw.w, meta); err != nil {
		return sw.fail(fmt.Errorf("error rendering TEI header: %w", err))
	}
	sw.begun = true
	sw.open = append(sw.open, "TEI")
	return nil
}

// OpenElement opens an envelope element that later appended content nests in.
func (sw *StreamWriter) OpenElement(name string, attrs ...Attr) error {
	if err := sw.ready(); err != nil {
		return err
	}
	sw.writeString("<" + name)
	for _, a := range attrs {
		sw.writeString(" " + a.Name + `="`)
		sw.writeString(attrEscaper.Replace(a.Value))
		sw.writeString(`"`)
	}
	sw.writeString(">")
	if sw.err == nil {
		sw.open = append(sw.open, name)
	}
	return sw.err
}

// CloseElement closes the innermost open envelope element.
func (sw *StreamWriter) CloseElement() error {
	if err := sw.ready(); err != nil {
		return err
	}
	if len(sw.open) == 0 {
		return sw.fail(errors.New("no open element to close"))
	}
	name := sw.open[len(sw.open)-1]
	sw.open = sw.open[:len(sw.open)-1]
	sw.writeString("</" + name + ">")
	return sw.err
}

// WriteElement serializes a completed subtree inside the innermost open
// envelope element.
func (sw *StreamWriter) WriteElement(el *Element) error {
	if err := sw.ready(); err != nil {
		return err
	}
	if el == nil {
		return sw.fail(errors.New("nil element"))
	}
	sw.writeElement(el)
	return sw.err
}

// End closes every still-open envelope element and flushes the output.
func (sw *StreamWriter) End() error {
	if err := sw.ready(); err != nil {
		return err
	}
	for len(sw.open) > 0 {
		if err := sw.CloseElement(); err != nil {
			return err
		}
	}
	if err := sw.w.Flush(); err != nil {
		return sw.fail(err)
	}
	return nil
}

// Err reports the sticky error, if any.
func (sw *StreamWriter) Err() error { return sw.err }

func (sw *StreamWriter) ready() error {
	if sw.err != nil {
		return sw.err
	}
	if !sw.begun {
		return sw.fail(errors.New("document not begun"))
	}
	return nil
}

func (sw *StreamWriter) fail(err error) error {
	if sw.err == nil {
		sw.err = err
	}
	return sw.err
}

func (sw *StreamWriter) writeString(s string) {
	if sw.err != nil {
		return
	}
	if _, err := sw.w.WriteString(s); err != nil {
		sw.err = err
	}
}

func (sw *StreamWriter) writeElement(el *Element) {
	sw.writeString("<" + el.Name)
	for _, a := range el.Attrs {
		sw.writeString(" " + a.Name + `="`)
		sw.writeString(attrEscaper.Replace(a.Value))
		sw.writeString(`"`)
	}
	if el.Text == "" && len(el.Children) == 0 {
		sw.writeString("/>")
		return
	}
	sw.writeString(">")
	if el.Text != "" {
		sw.writeString(textEscaper.Replace(el.Text))
	}
	for _, c := range el.Children {
		sw.writeElement(c)
	}
	sw.writeString("</" + el.Name + ">")
}
