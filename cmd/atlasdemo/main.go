// Command atlasdemo drives an atlaspack.Allocator through a randomized
// sequence of allocate and free calls and writes the resulting layout
// as an SVG file. It is a thin external driver, not part of the core
// allocator: see the package doc of atlaspack for the packing model.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/gogpu/atlaspack"
	"github.com/gogpu/atlaspack/svg"
)

func main() {
	var (
		width     = flag.Int("width", 1024, "bin width")
		height    = flag.Int("height", 1024, "bin height")
		output    = flag.String("output", "atlas.svg", "output SVG path")
		count     = flag.Int("count", 64, "number of steps (each one allocate attempt or one free)")
		freeEvery = flag.Int("free-every", 5, "free a prior allocation every N attempts (0 disables)")
		seed      = flag.Int64("seed", 1, "random seed for the allocation sequence")
		threshold = flag.Float64("usage-threshold", 0.8, "shelf reuse usage threshold")
	)
	flag.Parse()

	a := atlaspack.New(*width, *height, atlaspack.WithUsageThreshold(*threshold))
	rng := rand.New(rand.NewSource(*seed))

	var live []atlaspack.Allocation
	placed, rejected := 0, 0

	for i := 0; i < *count; i++ {
		if *freeEvery > 0 && len(live) > 0 && i%*freeEvery == 0 {
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live = append(live[:idx], live[idx+1:]...)
			continue
		}

		w := 8 + rng.Intn(56)
		h := 8 + rng.Intn(56)
		name := ""
		if rng.Intn(4) == 0 {
			name = "r" + strconv.Itoa(i)
		}

		alloc, err := a.AllocateNamed(atlaspack.Size{Width: w, Height: h}, name)
		if err != nil {
			rejected++
			continue
		}
		placed++
		live = append(live, alloc)
	}

	doc := svg.Render(a, svg.DefaultOptions())
	if err := os.WriteFile(*output, []byte(doc), 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *output, err)
	}

	log.Printf(
		"atlasdemo: placed=%d rejected=%d shelves=%d coverage=%d waste=%d coverage%%=%.4f hash=%#016x -> %s",
		placed, rejected, a.ShelfCount(), a.Coverage(), a.Waste(), a.CoveragePercentage(), a.Hash(0), *output,
	)
}

