package views

// pager tracks a selection in a paged list. Only the absolute cursor
// position and the list length are stored; the visible window is derived
// from them, so the cursor can never point outside it.
type pager struct {
	size int
	pos  int
	n    int
}

func newPager(size int) *pager {
	if size <= 0 {
		size = 10
	}
	return &pager{size: size}
}

// Resize sets the list length and clamps the cursor into range
func (p *pager) Resize(n int) {
	p.n = n
	if p.pos >= n {
		p.pos = n - 1
	}
	if p.pos < 0 {
		p.pos = 0
	}
}

// Pos returns the absolute cursor position
func (p *pager) Pos() int {
	return p.pos
}

// Up moves the cursor one item back, reporting whether it moved
func (p *pager) Up() bool {
	if p.pos == 0 {
		return false
	}
	p.pos--
	return true
}

// Down moves the cursor one item forward, reporting whether it moved
func (p *pager) Down() bool {
	if p.pos+1 >= p.n {
		return false
	}
	p.pos++
	return true
}

// Offset returns the index of the first visible item
func (p *pager) Offset() int {
	return p.pos - p.pos%p.size
}

// Window returns the half-open index range of the visible page
func (p *pager) Window() (start, end int) {
	start = p.Offset()
	end = start + p.size
	if end > p.n {
		end = p.n
	}
	return start, end
}

// Line returns the cursor position relative to the visible page
func (p *pager) Line() int {
	return p.pos % p.size
}

// Pages returns the page count; an empty list still shows one page
func (p *pager) Pages() int {
	if p.n == 0 {
		return 1
	}
	return (p.n + p.size - 1) / p.size
}

// Page returns the 1-based number of the visible page
func (p *pager) Page() int {
	return p.pos/p.size + 1
}

// PageDown jumps to the first item of the next page
func (p *pager) PageDown() bool {
	next := p.Offset() + p.size
	if next >= p.n {
		return false
	}
	p.pos = next
	return true
}

// PageUp jumps to the first item of the previous page
func (p *pager) PageUp() bool {
	if p.pos < p.size {
		return false
	}
	p.pos = p.Offset() - p.size
	return true
}

// Reset returns to an empty list with the cursor at the top
func (p *pager) Reset() {
	p.pos = 0
	p.n = 0
}
