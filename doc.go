// Package atlaspack implements a shelf-packing rectangle allocator for
// texture atlases and similar fixed-size bins.
//
// # Overview
//
// atlaspack packs many small axis-aligned rectangles — glyph bitmaps,
// sprite tiles, texture regions — into one larger rectangle of fixed
// width and height. It uses a dynamic variant of the shelf-packing
// heuristic: the bin is partitioned into horizontal rows ("shelves")
// whose heights are fixed by the first rectangle placed in them, and
// each shelf is subdivided left-to-right into variable-width blocks.
//
// Allocations may be freed. Adjacent free blocks on a shelf coalesce
// automatically, and an empty topmost shelf is reclaimed so its height
// budget can be reused by later allocations.
//
// # Quick Start
//
//	import "github.com/gogpu/atlaspack"
//
//	a := atlaspack.New(1024, 1024)
//
//	alloc, err := a.Allocate(atlaspack.Size{Width: 32, Height: 32})
//	if err != nil {
//		// handle atlaspack.ErrOutOfSpace
//	}
//
//	a.Free(alloc)
//
// # Architecture
//
//   - Public API: Allocator, Size, Position, Rectangle, Allocation
//   - svg: pure SVG formatter over Allocator.Enumerate, no core dependency
//   - cmd/atlasdemo: randomized allocate/free driver producing an SVG
//
// # Coordinate System
//
//   - Origin (0,0) at the bin's top-left (shelf index 0 is the
//     bottommost shelf in packing order, but y still increases downward
//     as shelves stack)
//   - All geometry is non-negative integers; no sub-pixel coordinates
//
// # Concurrency
//
// An Allocator is not safe for concurrent mutation — see the package's
// single-threaded contract in the Allocator doc comment. Read-only
// operations (Get, Waste, Coverage, Hash, Enumerate) are safe to call
// concurrently with each other against a paused (non-mutating) Allocator.
package atlaspack
