package drama

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/kmajora/pagetei/pkg/pagexml"
	"github.com/kmajora/pagetei/pkg/tei"
)

// PageSource supplies resolved page documents in conversion order.
// Next returns io.EOF when the stream is exhausted; any other error aborts
// the whole run.
type PageSource interface {
	Next() (*pagexml.Page, error)
}

// FilePageSource reads PAGE XML files from a list of paths, in lexicographic
// order.
type FilePageSource struct {
	paths []string
	next  int
}

// NewFilePageSource creates a source over the given file paths. The paths
// are sorted lexicographically; the caller's slice is not modified.
func NewFilePageSource(paths []string) *FilePageSource {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	return &FilePageSource{paths: sorted}
}

// Next parses and returns the next page document.
func (s *FilePageSource) Next() (*pagexml.Page, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++
	page, err := pagexml.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}
	return &page, nil
}

type phase int

const (
	phaseFront phase = iota
	phaseBody
)

// Converter drives the whole conversion: it feeds each page's region stream
// through the front and body transducers and owns the single incremental
// output writer. Exactly one well-formed document is produced regardless of
// how many pages were consumed or how processing of an individual region
// failed.
type Converter struct {
	w    *tei.StreamWriter
	meta tei.DocumentMeta
	log  *slog.Logger

	phase    phase
	bodyOpen bool
	front    frontState
	body     bodyState
}

// New creates a converter writing one TEI document to out.
func New(out io.Writer, meta tei.DocumentMeta, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		w:    tei.NewStreamWriter(out),
		meta: meta,
		log:  logger,
	}
}

// Run consumes every page of src and writes the document. Per-region
// failures are logged and skipped; page iteration and output errors abort
// the run. The context is consulted between pages.
func (c *Converter) Run(ctx context.Context, src PageSource) error {
	if err := c.w.Begin(c.meta); err != nil {
		return err
	}
	if err := c.w.OpenElement("text"); err != nil {
		return err
	}

	cur, err := nextPage(src)
	if err != nil {
		return err
	}
	var nxt *pagexml.Page
	if cur != nil {
		if nxt, err = nextPage(src); err != nil {
			return err
		}
	}

	for cur != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.reportPage(cur)

		regions := cur.Regions
		if c.phase == phaseFront {
			regions = c.runFront(cur)
		}
		if c.phase == phaseBody && len(regions) > 0 {
			if !c.bodyOpen {
				if err := c.w.OpenElement("body"); err != nil {
					return err
				}
				c.bodyOpen = true
			}
			for i := range regions {
				if err := c.applyBody(&regions[i], cur.ID); err != nil {
					if werr := c.w.Err(); werr != nil {
						return werr
					}
					c.log.Error("region skipped",
						"page", cur.ID, "region", regions[i].ID, "error", err)
				}
			}
		}
		if werr := c.w.Err(); werr != nil {
			return werr
		}

		cur = nxt
		nxt = nil
		if cur != nil {
			if nxt, err = nextPage(src); err != nil {
				return err
			}
		}
	}

	// The final open act is flushed only when the whole input is exhausted.
	if c.body.act != nil {
		if err := c.w.WriteElement(c.body.act); err != nil {
			return err
		}
		c.body.act = nil
	}
	return c.w.End()
}

// runFront feeds the page's regions to the front transducer until a body
// marker switches the phase. It returns the regions the body transducer must
// still consume, starting at the marker region.
func (c *Converter) runFront(page *pagexml.Page) []pagexml.Region {
	regions := page.Regions
	if len(regions) == 0 {
		return nil
	}
	if ParseCategory(regions[0].Type).BodyMarker() {
		c.finishFront()
		return regions
	}
	if c.front.front == nil {
		c.front.front = tei.NewElement("front")
	}
	for i := range regions {
		if ParseCategory(regions[i].Type).BodyMarker() {
			c.finishFront()
			return regions[i:]
		}
		c.applyFront(&regions[i])
	}
	return nil
}

// reportPage logs the page's per-region geometry failures and any regions
// the reading order dropped.
func (c *Converter) reportPage(page *pagexml.Page) {
	for _, p := range page.Problems {
		c.log.Error("region skipped", "page", p.Page, "region", p.Region, "error", p.Err)
	}
	if len(page.Dropped) > 0 {
		c.log.Warn("regions not referenced by reading order were dropped",
			"page", page.ID, "regions", page.Dropped)
	}
}

func nextPage(src PageSource) (*pagexml.Page, error) {
	page, err := src.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}
