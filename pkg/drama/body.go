package drama

import (
	"fmt"

	"github.com/kmajora/pagetei/pkg/pagexml"
	"github.com/kmajora/pagetei/pkg/tei"
)

// scenario disambiguates consecutive caption regions: captions after a
// header collect into a set block, captions after a paragraph into a stage
// block, anything else is a plain stage direction.
type scenario int

const (
	scenarioNone scenario = iota
	scenarioSet
	scenarioParagraph
	scenarioNormal
)

// bodyState is the body-phase memory: the previous region category, the
// caption scenario, the act counter, and every currently open element. It is
// owned by the converter and survives region and page boundaries.
type bodyState struct {
	prev        Category
	scenario    scenario
	acts        int
	act         *tei.Element
	scene       *tei.Element
	prologue    *tei.Element
	stage       *tei.Element
	castList    *tei.Element
	speechGroup *tei.Element
	speech      *tei.Element
	set         *tei.Element
}

// applyBody folds one region into the act/scene/speech structure. A returned
// error means the region could not be placed (a container it needs is not
// open); the caller logs it and continues with the next region.
func (c *Converter) applyBody(region *pagexml.Region, pageID string) error {
	s := &c.body
	cat := ParseCategory(region.Type)
	text := region.Text()

	switch cat {
	case Header:
		if s.prologue != nil {
			if err := c.w.WriteElement(s.prologue); err != nil {
				return err
			}
			s.prologue = nil
		}
		s.acts++
		if s.acts > 1 {
			if err := c.w.WriteElement(s.act); err != nil {
				return err
			}
		}
		s.act = tei.NewElement("div", tei.Attr{Name: "type", Value: "act"})
		s.act.ChildText("head", text)

	case Heading:
		if s.act == nil {
			if s.prologue != nil {
				if err := c.w.WriteElement(s.prologue); err != nil {
					return err
				}
			}
			s.prologue = tei.NewElement("div", tei.Attr{Name: "type", Value: "prologue"})
			s.prologue.ChildText("head", text)
		} else {
			s.scene = s.act.Child("div", tei.Attr{Name: "type", Value: "scene"})
			s.scene.ChildText("head", text)
			stage := s.scene.Child("stage")
			s.castList = stage.Child("castList")
			c.log.Debug("opened scene", "page", pageID, "region", region.ID)
		}

	case TOCEntry:
		if s.castList == nil {
			return fmt.Errorf("cast item without open cast list")
		}
		s.castList.ChildText("castItem", text)

	case SignatureMark:
		parent := s.prologue
		if parent == nil {
			parent = s.scene
		}
		if parent == nil {
			return fmt.Errorf("stage direction without open prologue or scene")
		}
		parent.ChildText("stage", text)

	case Floating:
		parent := s.prologue
		if parent == nil {
			parent = s.scene
		}
		if parent == nil {
			return fmt.Errorf("speech group without open prologue or scene")
		}
		s.speechGroup = parent.Child("spGrp")
		s.speechGroup.ChildText("head", text)
		sp := s.speechGroup.Child("sp")
		sp.ChildText("speaker", warnSpeaker)
		sp.ChildText("p", warnSpeechGroupEnd)

	case Credit, DropCapital:
		if s.prologue != nil {
			s.speech = s.prologue.Child("sp")
		} else {
			if s.scene == nil {
				if s.act == nil {
					return fmt.Errorf("speaker region without open act or scene")
				}
				c.log.Warn("no open scene for speaker, forcing one", "page", pageID, "region", region.ID)
				s.scene = s.act.Child("div", tei.Attr{Name: "type", Value: "scene"})
			}
			s.speech = s.scene.Child("sp")
		}
		s.speech.ChildText("speaker", text)

	case Paragraph:
		if s.speech == nil {
			if s.scene == nil {
				return fmt.Errorf("paragraph without open speech or scene")
			}
			s.speech = s.scene.Child("sp")
			s.speech.ChildText("speaker", warnSpeakerMissing)
		}
		s.speech.ChildText("p", text)

	case Caption:
		if err := c.applyCaption(region, text); err != nil {
			return err
		}

	case Footnote:
		parent := s.prologue
		if parent == nil {
			parent = s.scene
		}
		if parent == nil {
			return fmt.Errorf("footnote without open prologue or scene")
		}
		note := parent.Child("div", tei.Attr{Name: "type", Value: "notes"})
		note.ChildText("p", warnFootnote+" Source file: "+pageID)
		note.ChildText("note", text, tei.Attr{Name: "place", Value: "foot"})

	case CatchWord:
		if s.scene == nil {
			// Nothing to attach to: emit a standalone diagnostic pair
			// directly to the stream.
			p := tei.NewElement("p")
			p.Text = warnCatchWordHead
			head := tei.NewElement("head")
			head.Text = text
			if err := c.w.WriteElement(p); err != nil {
				return err
			}
			if err := c.w.WriteElement(head); err != nil {
				return err
			}
		} else {
			note := s.scene.Child("div", tei.Attr{Name: "type", Value: "notes"})
			for _, t := range []string{warnNotPlaced, "type = " + region.Type, text} {
				note.ChildText("p", t)
			}
		}

	default:
		if s.scene == nil {
			return fmt.Errorf("unclassified region without open scene")
		}
		unknown := s.scene.Child("div", tei.Attr{Name: "type", Value: "notes"})
		for _, t := range []string{warnUnhandled, "type = " + region.Type, text} {
			unknown.ChildText("p", t)
		}
	}

	s.prev = cat
	return nil
}

// applyCaption dispatches a caption region on the previous category and the
// active scenario.
func (c *Converter) applyCaption(region *pagexml.Region, text string) error {
	s := &c.body
	switch {
	case s.prev == Header:
		if s.set == nil {
			if s.act == nil {
				return fmt.Errorf("setting block without open act")
			}
			s.set = s.act.Child("div", tei.Attr{Name: "type", Value: "set"})
		}
		s.set.ChildText("p", text)
		s.scenario = scenarioSet

	case s.prev == Caption && s.scenario == scenarioSet:
		if s.set == nil {
			return fmt.Errorf("setting block continuation without open setting block")
		}
		s.set.ChildText("p", text)

	case s.prev == Paragraph:
		if s.scene == nil {
			return fmt.Errorf("stage direction without open scene")
		}
		s.stage = s.scene.Child("stage")
		s.stage.ChildText("p", text)
		s.scenario = scenarioParagraph

	case s.prev == Caption && s.scenario == scenarioParagraph:
		if s.stage == nil {
			return fmt.Errorf("stage direction continuation without open stage block")
		}
		s.stage.ChildText("p", text)

	case s.prev == Credit || s.prev == Heading:
		var stage *tei.Element
		if s.speech != nil {
			stage = s.speech.Child("stage")
		} else {
			if s.scene == nil {
				return fmt.Errorf("stage direction without open scene")
			}
			stage = s.scene.Child("stage")
		}
		stage.Text = text
		s.scenario = scenarioNormal

	default:
		var stage *tei.Element
		if s.prologue != nil {
			stage = s.prologue.Child("stage")
		} else {
			if s.scene == nil {
				return fmt.Errorf("stage direction without open prologue or scene")
			}
			stage = s.scene.Child("stage")
		}
		stage.Text = text
		s.scenario = scenarioNormal
	}
	return nil
}
