package svg

import (
	"strings"
	"testing"

	"github.com/gogpu/atlaspack"
)

func TestRender_EmptyAllocator(t *testing.T) {
	a := atlaspack.New(100, 100)
	doc := Render(a, DefaultOptions())

	if !strings.Contains(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100"`) {
		t.Errorf("missing svg root element: %s", doc)
	}
	if !strings.Contains(doc, "</svg>") {
		t.Errorf("missing closing svg tag: %s", doc)
	}
}

func TestRender_InUseBlockRendered(t *testing.T) {
	a := atlaspack.New(100, 100)
	if _, err := a.AllocateNamed(atlaspack.Size{Width: 20, Height: 20}, "glyph-A"); err != nil {
		t.Fatalf("AllocateNamed() = %v", err)
	}

	doc := Render(a, DefaultOptions())
	if !strings.Contains(doc, `fill="#2563eb"`) {
		t.Errorf("expected in-use block fill color in output: %s", doc)
	}
	if !strings.Contains(doc, "glyph-A") {
		t.Errorf("expected name label in output: %s", doc)
	}
}

func TestRender_UnusedOptionControlsFreeBlocks(t *testing.T) {
	a := atlaspack.New(100, 100)
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 20}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}

	withoutFree := Render(a, Options{})
	if strings.Contains(withoutFree, `fill="#e5e7eb"`) {
		t.Errorf("expected no free-block fill when Unused is false: %s", withoutFree)
	}

	withFree := Render(a, Options{Unused: true})
	if !strings.Contains(withFree, `fill="#e5e7eb"`) {
		t.Errorf("expected free-block fill when Unused is true: %s", withFree)
	}
}

func TestRender_WasteOverlay(t *testing.T) {
	// A zero usage threshold lets the short block share the first shelf.
	a := atlaspack.New(100, 100, atlaspack.WithUsageThreshold(0))
	// First allocation fixes the shelf height at 40.
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 40}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}
	// Second allocation is shorter than the shelf: wastes height.
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 10}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}

	doc := Render(a, Options{Waste: true})
	if !strings.Contains(doc, `fill="#f59e0b"`) {
		t.Errorf("expected waste overlay for short block: %s", doc)
	}
}

func TestRender_StrokeOption(t *testing.T) {
	a := atlaspack.New(100, 100)
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 20}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}

	doc := Render(a, Options{Stroke: true})
	if !strings.Contains(doc, "stroke=") {
		t.Errorf("expected stroke attribute: %s", doc)
	}
}

func TestRender_CoordsOption(t *testing.T) {
	a := atlaspack.New(100, 100)
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 20}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}

	doc := Render(a, Options{Coords: true})
	if !strings.Contains(doc, "(0,0)") {
		t.Errorf("expected coordinate label for first block: %s", doc)
	}
}

func TestRender_NeverMutatesAllocator(t *testing.T) {
	a := atlaspack.New(100, 100)
	if _, err := a.Allocate(atlaspack.Size{Width: 20, Height: 20}); err != nil {
		t.Fatalf("Allocate() = %v", err)
	}

	before := a.Hash(0)
	_ = Render(a, DefaultOptions())
	after := a.Hash(0)

	if before != after {
		t.Errorf("Render mutated allocator state: hash before=%d after=%d", before, after)
	}
}

func TestTextWidthPixels(t *testing.T) {
	narrow := textWidthPixels("a")
	wide := textWidthPixels("glyph-identifier")
	if narrow >= wide {
		t.Errorf("expected longer string to measure wider: narrow=%v wide=%v", narrow, wide)
	}
	if textWidthPixels("") != 0 {
		t.Errorf("expected zero width for empty string, got %v", textWidthPixels(""))
	}
}

func TestEscapeText(t *testing.T) {
	got := escapeText(`a<b>&c`)
	want := "a&lt;b&gt;&amp;c"
	if got != want {
		t.Errorf("escapeText() = %q, want %q", got, want)
	}
}
