package views

import "testing"

func TestPagerWindowFollowsCursor(t *testing.T) {
	p := newPager(10)
	p.Resize(25)

	if got := p.Pages(); got != 3 {
		t.Fatalf("Pages() = %d, want 3", got)
	}

	// Ten Down presses cross the first page boundary
	for i := 0; i < 10; i++ {
		p.Down()
	}
	if p.Pos() != 10 || p.Page() != 2 || p.Line() != 0 {
		t.Fatalf("after crossing boundary: pos=%d page=%d line=%d", p.Pos(), p.Page(), p.Line())
	}

	// One Up press lands back on the last line of page one
	p.Up()
	if p.Pos() != 9 || p.Page() != 1 || p.Line() != 9 {
		t.Fatalf("after stepping back: pos=%d page=%d line=%d", p.Pos(), p.Page(), p.Line())
	}
}

func TestPagerPageJumps(t *testing.T) {
	p := newPager(10)
	p.Resize(25)

	if !p.PageDown() {
		t.Fatal("PageDown from page 1 of 3 must advance")
	}
	if p.Pos() != 10 || p.Offset() != 10 {
		t.Fatalf("pos=%d offset=%d, want 10 and 10", p.Pos(), p.Offset())
	}

	p.PageDown()
	if start, end := p.Window(); start != 20 || end != 25 {
		t.Fatalf("Window() = [%d, %d), want [20, 25)", start, end)
	}
	if p.PageDown() {
		t.Fatal("PageDown must stop at the last page")
	}

	if !p.PageUp() {
		t.Fatal("PageUp from the last page must move")
	}
	if p.Pos() != 10 {
		t.Fatalf("pos=%d after PageUp, want 10", p.Pos())
	}
	p.PageUp()
	if p.PageUp() {
		t.Fatal("PageUp must stop at the first page")
	}
}

func TestPagerBoundsAndResize(t *testing.T) {
	p := newPager(10)
	p.Resize(25)

	if p.Up() {
		t.Fatal("Up at the top must not move")
	}
	for p.Down() {
	}
	if p.Pos() != 24 {
		t.Fatalf("pos=%d at the bottom, want 24", p.Pos())
	}

	// Shrinking the list pulls the cursor back onto the last item
	p.Resize(5)
	if p.Pos() != 4 || p.Page() != 1 {
		t.Fatalf("after shrink: pos=%d page=%d, want 4 on page 1", p.Pos(), p.Page())
	}

	p.Reset()
	if p.Pos() != 0 || p.Offset() != 0 {
		t.Fatal("Reset must return to the top")
	}
	if p.Pages() != 1 {
		t.Fatalf("empty pager still renders one page, got %d", p.Pages())
	}
}
