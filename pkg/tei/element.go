package tei

// Attr is one attribute of an element. Attributes serialize in the order
// they were given, keeping output deterministic.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the markup tree. Subtrees are built bottom-up by
// the transducers and handed to the StreamWriter exactly once.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement creates a detached element.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Child appends a new child element and returns it.
func (e *Element) Child(name string, attrs ...Attr) *Element {
	c := NewElement(name, attrs...)
	e.Children = append(e.Children, c)
	return c
}

// ChildText appends a new child element carrying text and returns it.
func (e *Element) ChildText(name, text string, attrs ...Attr) *Element {
	c := e.Child(name, attrs...)
	c.Text = text
	return c
}
