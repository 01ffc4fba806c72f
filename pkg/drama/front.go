package drama

import (
	"github.com/kmajora/pagetei/pkg/pagexml"
	"github.com/kmajora/pagetei/pkg/tei"
)

// frontState is the front-phase memory: the previous region category and the
// currently open front-matter containers. It is owned by the converter and
// is the only thing surviving between front-phase regions.
type frontState struct {
	prev          Category
	front         *tei.Element
	titlePage     *tei.Element
	titlePageDone bool
	preface       *tei.Element
	castList      *tei.Element
	castItem      *tei.Element
}

// applyFront folds one region into the front-matter subtree.
func (c *Converter) applyFront(region *pagexml.Region) {
	s := &c.front
	cat := ParseCategory(region.Type)

	// A title page is considered final once a catch-word run has ended.
	if s.prev == CatchWord && cat != CatchWord {
		s.titlePageDone = true
	}

	switch cat {
	case CatchWord:
		if s.titlePageDone {
			s.preface = s.front.Child("div", tei.Attr{Name: "type", Value: "preface"})
			s.preface.ChildText("p", warnHeadMisplaced)
			s.preface.ChildText("head", region.Text())
		} else {
			if s.prev != CatchWord || s.titlePage == nil {
				s.titlePage = s.front.Child("titlePage")
				s.titlePage.ChildText("titlePart", warnTitlePageAssumed)
			}
			s.titlePage.ChildText("titlePart", region.Text())
		}

	case Other:
		if (s.prev != Other && s.prev != CatchWord) || s.preface == nil {
			s.preface = s.front.Child("div", tei.Attr{Name: "type", Value: "preface"})
		}
		s.preface.ChildText("p", region.Text())

	case TOCEntry:
		if (s.prev != TOCEntry && s.prev != SignatureMark) || s.castList == nil {
			s.castList = s.front.Child("castList")
		}
		s.castItem = s.castList.Child("castItem")
		s.castItem.ChildText("role", region.Text())

	case SignatureMark:
		if s.castItem == nil {
			castList := s.front.Child("castList")
			castItem := castList.Child("castItem")
			castItem.ChildText("role", warnRoleMissing)
			castItem.ChildText("roleDesc", region.Text())
		} else {
			s.castItem.ChildText("roleDesc", region.Text())
		}

	case Footnote:
		note := s.front.Child("div", tei.Attr{Name: "type", Value: "notes"})
		note.ChildText("p", warnFootnote)
		note.ChildText("note", region.Text(), tei.Attr{Name: "place", Value: "foot"})

	default:
		unknown := s.front.Child("div", tei.Attr{Name: "type", Value: "notes"})
		for _, text := range []string{warnUnhandled, "type = " + region.Type, region.Text()} {
			unknown.ChildText("p", text)
		}
	}

	s.prev = cat
}

// finishFront flushes the front subtree, if one was started, with the
// trailing diagnostic setting placeholder, and switches to the body phase.
func (c *Converter) finishFront() {
	if c.front.front != nil {
		set := c.front.front.Child("set")
		set.ChildText("p", warnSetting)
		c.w.WriteElement(c.front.front)
		c.front.front = nil
	}
	c.phase = phaseBody
}
