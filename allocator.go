package atlaspack

// Allocator packs axis-aligned rectangles into a bin of fixed Width x
// Height using dynamic shelf packing: shelves are horizontal rows whose
// height is fixed by the first rectangle placed in them, subdivided
// left-to-right into blocks. See the package doc for the overall model.
//
// An Allocator is not safe for concurrent mutation: all of Allocate,
// AllocateNamed, and Free must be serialized by the caller. Get, Waste,
// Coverage, WastePercentage, CoveragePercentage, Hash, and Enumerate do
// not mutate state and are safe to call concurrently with each other
// against a paused (non-mutating) Allocator.
type Allocator struct {
	width, height int

	shelves []shelf
	blocks  []block

	// freeSlots recycles arena indices released by coalescing or
	// top-shelf reclamation, so the arena doesn't grow unboundedly
	// across long allocate/free sequences.
	freeSlots []int

	// index resolves a BlockID to its arena slot in O(1), the
	// "side hash map" speed-up the design notes explicitly permit.
	index map[BlockID]int

	nextID         uint64
	usageThreshold float64
}

// New constructs an empty Allocator for a bin of the given dimensions.
// The usage threshold defaults to 0.8; override it with WithUsageThreshold.
func New(width, height int, opts ...Option) *Allocator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Allocator{
		width:          width,
		height:         height,
		index:          make(map[BlockID]int),
		usageThreshold: o.usageThreshold,
	}
}

// Width returns the bin width fixed at construction.
func (a *Allocator) Width() int { return a.width }

// Height returns the bin height fixed at construction.
func (a *Allocator) Height() int { return a.height }

// UsageThreshold returns the configured usage threshold.
func (a *Allocator) UsageThreshold() float64 { return a.usageThreshold }

// ShelfCount returns the number of shelves currently in the bin.
func (a *Allocator) ShelfCount() int { return len(a.shelves) }

func (a *Allocator) allocID() BlockID {
	id := BlockID(a.nextID)
	a.nextID++
	return id
}

// newBlock allocates an arena slot for b, reusing a recycled slot when
// one is available, and returns the slot index.
func (a *Allocator) newBlock(b block) int {
	var slot int
	if n := len(a.freeSlots); n > 0 {
		slot = a.freeSlots[n-1]
		a.freeSlots = a.freeSlots[:n-1]
		a.blocks[slot] = b
	} else {
		slot = len(a.blocks)
		a.blocks = append(a.blocks, b)
	}
	a.index[b.id] = slot
	return slot
}

// destroyBlock recycles slot's arena storage and removes its id from
// the index. It does not touch sibling links; the caller is responsible
// for splicing slot out of its shelf's chain first.
func (a *Allocator) destroyBlock(slot int) {
	delete(a.index, a.blocks[slot].id)
	a.freeSlots = append(a.freeSlots, slot)
}

// findFreeBlock returns the arena slot of the first (left-to-right)
// free block on shelf shelfIdx whose width is at least w, using
// first-fit.
func (a *Allocator) findFreeBlock(shelfIdx int, w int) (int, bool) {
	sh := &a.shelves[shelfIdx]
	for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
		b := &a.blocks[slot]
		if !b.inUse && b.size.Width >= w {
			return slot, true
		}
	}
	return 0, false
}

// Allocate places a rectangle of the given size with no debug name.
// It is equivalent to AllocateNamed(size, "").
func (a *Allocator) Allocate(size Size) (Allocation, error) {
	return a.AllocateNamed(size, "")
}

// AllocateNamed places a rectangle of size into the bin, attaching name
// as a debug label on the resulting block. size.Width and size.Height
// must both be at least 1, or ErrInvalidSize is returned. If the shelf
// policy cannot place the rectangle, ErrOutOfSpace is returned and the
// Allocator's state is unchanged.
func (a *Allocator) AllocateNamed(size Size, name string) (Allocation, error) {
	w, h := size.Width, size.Height
	if w < 1 || h < 1 {
		return Allocation{}, ErrInvalidSize
	}

	shelfIdx, err := a.chooseShelf(w, h)
	if err != nil {
		Logger().Warn("atlaspack: allocation rejected", "w", w, "h", h, "err", err)
		return Allocation{}, err
	}

	slot := a.placeInShelf(shelfIdx, w, h, name)
	b := &a.blocks[slot]
	sh := &a.shelves[shelfIdx]

	Logger().Debug("atlaspack: allocated",
		"id", uint64(b.id), "shelf", shelfIdx, "x", b.offset, "y", sh.y, "w", w, "h", h)

	return Allocation{
		Id: b.id,
		Rectangle: Rectangle{
			Position: Position{X: b.offset, Y: sh.y},
			Size:     size,
		},
	}, nil
}

// chooseShelf implements the allocation policy's shelf-selection step
// (spec §4.2 steps 1-2): score existing shelves, decide whether a new
// shelf fits, and fall back to last-shelf growth when it doesn't.
func (a *Allocator) chooseShelf(w, h int) (int, error) {
	if w > a.width || h > a.height {
		return 0, ErrOutOfSpace
	}

	pick := -1
	pickScore := 0
	summedHeight := 0

	for i := range a.shelves {
		sh := &a.shelves[i]
		summedHeight += sh.height

		if sh.height < h {
			continue
		}
		if _, ok := a.findFreeBlock(i, w); !ok {
			continue
		}
		score := sh.height - h
		if pick == -1 || score < pickScore {
			pick = i
			pickScore = score
		}
	}

	leftoverHeight := a.height - summedHeight
	newShelfFits := leftoverHeight >= h

	if !newShelfFits {
		if pick != -1 {
			return pick, nil
		}
		return a.growLastShelf(leftoverHeight, w, h)
	}

	if pick != -1 && float64(h)/float64(a.shelves[pick].height) >= a.usageThreshold {
		return pick, nil
	}

	return a.openShelf(summedHeight, h), nil
}

// growLastShelf implements the last-shelf-growth fallback (spec §4.2
// step 2, Case A). It returns ErrOutOfSpace if growth isn't possible.
func (a *Allocator) growLastShelf(leftoverHeight, w, h int) (int, error) {
	if len(a.shelves) == 0 {
		return 0, ErrOutOfSpace
	}
	top := len(a.shelves) - 1
	sh := &a.shelves[top]
	if sh.height+leftoverHeight < h {
		return 0, ErrOutOfSpace
	}
	if _, ok := a.findFreeBlock(top, w); !ok {
		return 0, ErrOutOfSpace
	}

	sh.height = h
	for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
		b := &a.blocks[slot]
		if !b.inUse {
			b.size.Height = h
		}
	}

	Logger().Debug("atlaspack: grew last shelf", "shelf", top, "height", h)
	return top, nil
}

// openShelf appends a new shelf at y = summedHeight with the given
// height, seeded with a single free block spanning the bin width.
func (a *Allocator) openShelf(summedHeight, height int) int {
	shelfIdx := len(a.shelves)
	headSlot := a.newBlock(block{
		id:         a.allocID(),
		offset:     0,
		size:       Size{Width: a.width, Height: height},
		prev:       noLink,
		next:       noLink,
		shelfIndex: shelfIdx,
	})
	a.shelves = append(a.shelves, shelf{
		y:      summedHeight,
		height: height,
		head:   headSlot,
	})

	Logger().Debug("atlaspack: opened shelf", "shelf", shelfIdx, "y", summedHeight, "height", height)
	return shelfIdx
}

// placeInShelf implements spec §4.2 step 3: first-fit within the chosen
// shelf, splitting the free block if it's wider than requested.
func (a *Allocator) placeInShelf(shelfIdx, w, h int, name string) int {
	slot, ok := a.findFreeBlock(shelfIdx, w)
	if !ok {
		// Unreachable when chooseShelf has validated the shelf, kept
		// as a defensive panic boundary rather than a silent wrong
		// placement.
		panic("atlaspack: internal invariant violated: no free block wide enough in chosen shelf")
	}

	f := &a.blocks[slot]
	sh := &a.shelves[shelfIdx]

	if f.size.Width > w {
		newSlot := a.newBlock(block{
			id:         a.allocID(),
			offset:     f.offset + w,
			size:       Size{Width: f.size.Width - w, Height: sh.height},
			prev:       slot,
			next:       f.next,
			shelfIndex: shelfIdx,
		})
		if f.next != noLink {
			a.blocks[f.next].prev = newSlot
		}
		f = &a.blocks[slot] // newBlock may have reallocated a.blocks
		f.next = newSlot

		Logger().Debug("atlaspack: split block", "shelf", shelfIdx, "offset", a.blocks[newSlot].offset, "id", uint64(a.blocks[newSlot].id))
	}

	// The placed block gets a fresh id, so an id released by an earlier
	// Free on this block is never served again.
	delete(a.index, f.id)
	f.id = a.allocID()
	a.index[f.id] = slot

	f.size = Size{Width: w, Height: h}
	f.inUse = true
	f.name = name

	return slot
}

// Free releases the allocation identified by alloc.Id. A Free for an
// unknown or already-freed id is a no-op.
func (a *Allocator) Free(alloc Allocation) {
	slot, ok := a.index[alloc.Id]
	if !ok {
		return
	}
	if !a.blocks[slot].inUse {
		return
	}

	a.blocks[slot].inUse = false
	a.blocks[slot].name = ""

	// Leftward walk: make cur the leftmost member of the free run.
	cur := slot
	for a.blocks[cur].prev != noLink && !a.blocks[a.blocks[cur].prev].inUse {
		cur = a.blocks[cur].prev
	}

	shelfIdx := a.blocks[cur].shelfIndex
	sh := &a.shelves[shelfIdx]

	// Rightward merge: absorb every contiguous free successor.
	for a.blocks[cur].next != noLink && !a.blocks[a.blocks[cur].next].inUse {
		succSlot := a.blocks[cur].next
		succ := a.blocks[succSlot]

		a.blocks[cur].size.Width += succ.size.Width
		a.blocks[cur].next = succ.next
		if succ.next != noLink {
			a.blocks[succ.next].prev = cur
		}
		a.destroyBlock(succSlot)

		Logger().Debug("atlaspack: coalesced block", "shelf", shelfIdx, "into", uint64(a.blocks[cur].id))
	}

	a.blocks[cur].size.Height = sh.height

	Logger().Debug("atlaspack: freed", "id", uint64(alloc.Id), "shelf", shelfIdx)

	// Top-shelf reclamation: reclaim the top shelf whenever it collapses
	// to a single free block, then keep reclaiming upward — the shelf
	// exposed underneath may already have been a fully-free interior
	// shelf retained by an earlier Free, and must not be left as a top
	// shelf that is empty (I7).
	for len(a.shelves) > 0 {
		top := len(a.shelves) - 1
		topSh := &a.shelves[top]
		head := topSh.head
		if a.blocks[head].inUse || a.blocks[head].prev != noLink || a.blocks[head].next != noLink {
			break
		}
		a.destroyBlock(head)
		a.shelves = a.shelves[:top]
		Logger().Debug("atlaspack: reclaimed top shelf", "shelf", top)
	}
}

// Get returns the currently active (in-use) allocation with the given
// id, or false if no such allocation exists.
func (a *Allocator) Get(id BlockID) (Allocation, bool) {
	slot, ok := a.index[id]
	if !ok || !a.blocks[slot].inUse {
		return Allocation{}, false
	}
	b := &a.blocks[slot]
	sh := &a.shelves[b.shelfIndex]
	return Allocation{
		Id: b.id,
		Rectangle: Rectangle{
			Position: Position{X: b.offset, Y: sh.y},
			Size:     b.size,
		},
	}, true
}

// Waste returns the sum, over in-use blocks, of width * (shelf.height -
// block.size.height) — the area lost because a block is shorter than
// its shelf.
func (a *Allocator) Waste() int {
	total := 0
	for i := range a.shelves {
		sh := &a.shelves[i]
		for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
			b := &a.blocks[slot]
			if b.inUse {
				total += b.size.Width * (sh.height - b.size.Height)
			}
		}
	}
	return total
}

// Coverage returns the sum, over in-use blocks, of block.size.Area().
func (a *Allocator) Coverage() int {
	total := 0
	for i := range a.shelves {
		sh := &a.shelves[i]
		for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
			b := &a.blocks[slot]
			if b.inUse {
				total += b.size.Area()
			}
		}
	}
	return total
}

// WastePercentage returns Waste() / Coverage(). When Coverage() is 0,
// WastePercentage returns 0 rather than dividing by zero (spec leaves
// this implementation-defined).
func (a *Allocator) WastePercentage() float64 {
	coverage := a.Coverage()
	if coverage == 0 {
		return 0
	}
	return float64(a.Waste()) / float64(coverage)
}

// CoveragePercentage returns Coverage() / (Width() * Height()).
func (a *Allocator) CoveragePercentage() float64 {
	area := a.width * a.height
	if area == 0 {
		return 0
	}
	return float64(a.Coverage()) / float64(area)
}

// BlockView is a read-only snapshot of one block, yielded by Enumerate
// in layout order (shelf bottom to top, block left to right).
type BlockView struct {
	ShelfIndex  int
	ShelfY      int
	ShelfHeight int
	BlockID     BlockID
	BlockOffset int
	BlockSize   Size
	InUse       bool
	Name        string // empty when the block is free or unnamed
}

// Enumerate returns a deterministic, read-only traversal of every block
// in the bin, in layout order. It is the interface external consumers
// (the svg package, accounting tools, regression tests) use instead of
// reaching into Allocator internals.
func (a *Allocator) Enumerate() []BlockView {
	views := make([]BlockView, 0, len(a.blocks))
	for i := range a.shelves {
		sh := &a.shelves[i]
		for slot := sh.head; slot != noLink; slot = a.blocks[slot].next {
			b := &a.blocks[slot]
			views = append(views, BlockView{
				ShelfIndex:  i,
				ShelfY:      sh.y,
				ShelfHeight: sh.height,
				BlockID:     b.id,
				BlockOffset: b.offset,
				BlockSize:   b.size,
				InUse:       b.inUse,
				Name:        b.name,
			})
		}
	}
	return views
}
