package tei

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBeginWritesEnvelope(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if err := sw.End(); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Fatalf("output missing XML prolog: %q", out[:60])
	}
	for _, want := range []string{
		`<?xml-stylesheet type="text/css" href="../css/tei.css"?>`,
		`href="https://dracor.org/schema.rng"`,
		`xml:id="ger000"`,
		`xml:lang="de"`,
		`<teiHeader>`,
		`</teiHeader>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "</TEI>") {
		t.Fatalf("output does not end with </TEI>: %q", out[len(out)-30:])
	}
}

func TestStreamedElementsNest(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if err := sw.OpenElement("text"); err != nil {
		t.Fatalf("OpenElement(text) error: %v", err)
	}
	if err := sw.OpenElement("body"); err != nil {
		t.Fatalf("OpenElement(body) error: %v", err)
	}
	act := NewElement("div", Attr{Name: "type", Value: "act"})
	act.Child("head").Text = "Erster Akt"
	if err := sw.WriteElement(act); err != nil {
		t.Fatalf("WriteElement() error: %v", err)
	}
	if err := sw.End(); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	out := buf.String()
	want := `<text><body><div type="act"><head>Erster Akt</head></div></body></text></TEI>`
	if !strings.HasSuffix(out, want) {
		t.Fatalf("output suffix = %q, want %q", out[len(out)-len(want):], want)
	}
}

func TestTextAndAttributeEscaping(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	el := NewElement("p", Attr{Name: "n", Value: `a"b<c`})
	el.Text = "Kabale & Liebe <frei>"
	if err := sw.WriteElement(el); err != nil {
		t.Fatalf("WriteElement() error: %v", err)
	}
	if err := sw.End(); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `<p n="a&quot;b&lt;c">Kabale &amp; Liebe &lt;frei&gt;</p>`) {
		t.Fatalf("escaping wrong: %q", out)
	}
}

func TestNewlinesPreservedInText(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	el := NewElement("p")
	el.Text = "erste Zeile\nzweite Zeile"
	if err := sw.WriteElement(el); err != nil {
		t.Fatalf("WriteElement() error: %v", err)
	}
	if err := sw.End(); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	if !strings.Contains(buf.String(), "<p>erste Zeile\nzweite Zeile</p>") {
		t.Fatalf("newline not preserved literally: %q", buf.String())
	}
}

func TestEmptyElementSelfCloses(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	stage := NewElement("stage")
	stage.Child("castList")
	if err := sw.WriteElement(stage); err != nil {
		t.Fatalf("WriteElement() error: %v", err)
	}
	if err := sw.End(); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	if !strings.Contains(buf.String(), "<stage><castList/></stage>") {
		t.Fatalf("empty element not self-closed: %q", buf.String())
	}
}

func TestWriteBeforeBeginFails(t *testing.T) {
	sw := NewStreamWriter(&bytes.Buffer{})
	if err := sw.WriteElement(NewElement("p")); err == nil {
		t.Fatal("WriteElement() before Begin() succeeded, want error")
	}
	if sw.Err() == nil {
		t.Fatal("Err() = nil after failed write")
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write refused")
}

func TestWriteErrorIsSticky(t *testing.T) {
	sw := NewStreamWriter(failWriter{})
	if err := sw.Begin(DefaultMeta()); err != nil {
		t.Fatalf("Begin() error before flush: %v", err)
	}
	if err := sw.End(); err == nil {
		t.Fatal("End() over failing writer succeeded, want error")
	}
	first := sw.Err()
	if first == nil {
		t.Fatal("Err() = nil after failed flush")
	}
	if err := sw.WriteElement(NewElement("p")); err != first {
		t.Fatalf("subsequent call error = %v, want sticky %v", err, first)
	}
}

func TestChildTextBuildsLeaf(t *testing.T) {
	sp := NewElement("sp")
	sp.ChildText("speaker", "FERDINAND.")
	if got, want := len(sp.Children), 1; got != want {
		t.Fatalf("len(Children) = %d, want %d", got, want)
	}
	if sp.Children[0].Name != "speaker" || sp.Children[0].Text != "FERDINAND." {
		t.Fatalf("child = %+v, want speaker/FERDINAND.", sp.Children[0])
	}
}
