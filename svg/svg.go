// Package svg renders an atlaspack.Allocator's current layout as an SVG
// document. It is a pure formatter: it reads the allocator only through
// Allocator.Enumerate and never mutates allocator state.
package svg

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlaspack"
)

// Options configures the rendered document.
type Options struct {
	// Waste renders the per-block waste region (the strip between the
	// block's top and its shelf's top) as a distinct overlay.
	Waste bool

	// Names draws each in-use block's name centered on the block.
	Names bool

	// Coords draws per-block coordinate labels at the top-left.
	Coords bool

	// Stroke outlines each rectangle.
	Stroke bool

	// Unused also renders free blocks.
	Unused bool
}

// DefaultOptions mirrors the defaults named in the package spec: waste
// and name overlays on, coordinate labels and free-block rendering off,
// no stroke.
func DefaultOptions() Options {
	return Options{
		Waste: true,
		Names: true,
	}
}

// measureFace is used to center debug names on their block. basicfont
// needs no parsing step (unlike the real glyph outlines this library's
// rectangles typically represent), which keeps this adaptor a narrow,
// dependency-light consumer of the allocator.
var measureFace = basicfont.Face7x13

const (
	waveColor    = "#f59e0b" // waste overlay
	usedColor    = "#2563eb" // in-use block fill
	freeColor    = "#e5e7eb" // free block fill (Unused option)
	strokeColor  = "#111827"
	textColor    = "#ffffff"
	coordColor   = "#111827"
	fontHalfHigh = 5 // visually-centered offset for Face7x13's 13px line height
)

// Render emits a complete SVG document for a's current layout.
func Render(a *atlaspack.Allocator, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		a.Width(), a.Height(), a.Width(), a.Height())
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#ffffff"/>`+"\n", a.Width(), a.Height())

	for _, blk := range a.Enumerate() {
		if !blk.InUse && !opts.Unused {
			continue
		}
		renderBlock(&b, blk, opts)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func renderBlock(b *strings.Builder, blk atlaspack.BlockView, opts Options) {
	x, y := blk.BlockOffset, blk.ShelfY
	w, h := blk.BlockSize.Width, blk.BlockSize.Height

	fill := freeColor
	if blk.InUse {
		fill = usedColor
	}

	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"`, x, y, w, h, fill)
	if opts.Stroke {
		fmt.Fprintf(b, ` stroke="%s" stroke-width="1"`, strokeColor)
	}
	b.WriteString("/>\n")

	if opts.Waste && blk.InUse && blk.ShelfHeight > h {
		wasteH := blk.ShelfHeight - h
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" fill-opacity="0.5"/>`+"\n",
			x, y+h, w, wasteH, waveColor)
	}

	if opts.Names && blk.InUse && blk.Name != "" {
		renderName(b, blk.Name, x, y, w, h)
	}

	if opts.Coords {
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="10" fill="%s">(%d,%d)</text>`+"\n",
			x+2, y+10, coordColor, x, y)
	}
}

// renderName centers name horizontally within the block using real
// text-width measurement rather than a character-count guess.
func renderName(b *strings.Builder, name string, x, y, w, h int) {
	advance := font.MeasureString(measureFace, name)
	textWidth := advance.Round()

	tx := x + (w-textWidth)/2
	if tx < x {
		tx = x
	}
	ty := y + h/2 + fontHalfHigh

	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="monospace" font-size="11" fill="%s">%s</text>`+"\n",
		tx, ty, textColor, escapeText(name))
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}

// textWidthPixels returns the same measurement Render uses internally,
// so code in this package (such as its tests) can predict centering
// without rendering a whole document.
func textWidthPixels(s string) fixed.Int26_6 {
	return font.MeasureString(measureFace, s)
}
