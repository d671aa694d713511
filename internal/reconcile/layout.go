package reconcile

// Extent is the size of a handle in renderer units (terminal cells for the ticker).
type Extent struct {
	Width  int
	Height int
}

// Position places a handle along the layout axis.
type Position struct {
	Offset int
	Extent Extent
}

// End returns the offset just past the handle.
func (p Position) End() int {
	return p.Offset + p.Extent.Width
}

// Frame is the result of a layout pass.
type Frame struct {
	Positions map[HandleID]Position
	Size      Extent // Sum of widths, max of heights.
}

// Position returns the position of id and whether id was part of the pass.
func (f Frame) Position(id HandleID) (Position, bool) {
	p, ok := f.Positions[id]
	return p, ok
}

// Layout packs ids left to right starting at offset 0, asking extent for each handle's size. Results are not cached; run it again whenever the collection or any extent changes.
func Layout(ids []HandleID, extent func(HandleID) Extent) Frame {
	f := Frame{Positions: make(map[HandleID]Position, len(ids))}
	x := 0
	for _, id := range ids {
		e := extent(id)
		f.Positions[id] = Position{Offset: x, Extent: e}
		x += e.Width
		f.Size.Height = max(f.Size.Height, e.Height)
	}
	f.Size.Width = x
	return f
}

// Layout lays out the live collection. extent receives each handle's token.
func (r *Reconciler[T]) Layout(extent func(token T) Extent) Frame {
	return Layout(r.order, func(id HandleID) Extent {
		return extent(r.records[id].token)
	})
}
