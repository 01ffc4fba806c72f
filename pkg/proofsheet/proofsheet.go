// Package proofsheet renders a reading-order proof PDF from resolved page
// documents: one PDF page per input page, with each region's resolved order
// number and its line texts drawn at their reference points. Curators use the
// sheet to spot-check the recovered reading order against the scan before
// trusting the converted document.
package proofsheet

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/kmajora/pagetei/pkg/pagexml"
)

// Config holds user options for proof sheet rendering.
type Config struct {
	PageWidth   float64 // page width in points
	PageHeight  float64 // page height in points
	Font        string  // font name (e.g. "Helvetica")
	FontSize    float64 // text size in points
	MarkRegions bool    // draw region order numbers, ids, and types
}

// DefaultConfig returns a config with sensible defaults (A4 portrait).
func DefaultConfig() Config {
	return Config{
		PageWidth:   595.28,
		PageHeight:  841.89,
		Font:        "Helvetica",
		FontSize:    8,
		MarkRegions: true,
	}
}

// Render builds the proof PDF. Pages appear in slice order; regions and
// lines in their resolved order.
func Render(pages []pagexml.Page, cfg Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to render")
	}

	const marginX, marginTop, marginBottom = 20.0, 40.0, 20.0

	pdf := fpdf.New("P", "pt", "A4", "")
	for _, page := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight})

		pdf.SetFont(cfg.Font, "B", cfg.FontSize+2)
		pdf.Text(marginX, marginTop/2, page.ID)

		scale := pageScale(page, cfg.PageWidth-2*marginX, cfg.PageHeight-marginTop-marginBottom)
		transform := func(x, y int) (float64, float64) {
			return marginX + float64(x)*scale, marginTop + float64(y)*scale
		}

		for i, region := range page.Regions {
			if cfg.MarkRegions {
				x, y := transform(region.X, region.Y)
				pdf.SetFont(cfg.Font, "B", cfg.FontSize)
				pdf.SetTextColor(180, 0, 0)
				pdf.Text(x, y, fmt.Sprintf("%d. %s (%s)", i+1, region.ID, region.Type))
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.SetFont(cfg.Font, "", cfg.FontSize)
			for _, line := range region.Lines {
				text := line.Text()
				if text == "" {
					continue
				}
				x, y := transform(line.X, line.Y)
				pdf.Text(x, y+cfg.FontSize, text)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pageScale fits the page's pixel coordinate space into the drawable area.
func pageScale(page pagexml.Page, width, height float64) float64 {
	maxX, maxY := 1, 1
	for _, region := range page.Regions {
		for _, line := range region.Lines {
			if line.X > maxX {
				maxX = line.X
			}
			if line.Y > maxY {
				maxY = line.Y
			}
		}
	}
	sx := width / float64(maxX)
	sy := height / float64(maxY)
	if sx < sy {
		return sx
	}
	return sy
}
