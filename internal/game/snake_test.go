package game

import "testing"

func TestSnakeResetLayout(t *testing.T) {
	s := NewSnake(3)
	want := []Position{{20, 15}, {19, 15}, {18, 15}}
	if len(s.Body) != len(want) {
		t.Fatalf("length = %d, want %d", len(s.Body), len(want))
	}
	for i, p := range want {
		if s.Body[i] != p {
			t.Errorf("Body[%d] = %v, want %v", i, s.Body[i], p)
		}
	}
	if s.Dir != DirRight || s.Pending != DirRight {
		t.Errorf("direction = %v/%v, want right", s.Dir, s.Pending)
	}
}

func TestAdvanceMovesHeadAndVacatesTail(t *testing.T) {
	s := NewSnake(3)
	tail, vacated := s.Advance()
	if !vacated {
		t.Fatal("tail should vacate without pending growth")
	}
	if tail != (Position{18, 15}) {
		t.Errorf("vacated = %v, want {18 15}", tail)
	}
	if s.Head() != (Position{21, 15}) {
		t.Errorf("head = %v, want {21 15}", s.Head())
	}
	if s.Length() != 3 {
		t.Errorf("length = %d, want 3", s.Length())
	}
}

func TestReverseRequestDropped(t *testing.T) {
	s := NewSnake(3)
	s.SetPendingDirection(DirLeft)
	if s.Pending != DirRight {
		t.Fatal("exact reverse must be dropped at request time")
	}
	s.SetPendingDirection(DirUp)
	s.Advance()
	if s.Dir != DirUp {
		t.Fatalf("dir = %v, want up", s.Dir)
	}
	// Left is fine now that we move vertically.
	s.SetPendingDirection(DirLeft)
	if s.Pending != DirLeft {
		t.Fatal("perpendicular turn must be accepted")
	}
}

func TestReverseGuardAtCommit(t *testing.T) {
	s := NewSnake(3)
	// Force the state SetPendingDirection would never produce.
	s.Pending = DirLeft
	s.Advance()
	if s.Dir != DirRight {
		t.Fatalf("dir = %v, commit must re-check the inverse guard", s.Dir)
	}
	if s.Head() != (Position{21, 15}) {
		t.Errorf("head = %v, want {21 15}", s.Head())
	}
}

func TestGrowthIsSingleShot(t *testing.T) {
	s := NewSnake(3)
	s.MarkGrowth()
	s.MarkGrowth()
	if _, vacated := s.Advance(); vacated {
		t.Fatal("growth tick must keep the tail")
	}
	if s.Length() != 4 {
		t.Fatalf("length = %d, want 4", s.Length())
	}
	if _, vacated := s.Advance(); !vacated {
		t.Fatal("second advance must vacate again")
	}
	if s.Length() != 4 {
		t.Fatalf("length = %d, want 4", s.Length())
	}
}

func TestGrowUnfoldsFromTail(t *testing.T) {
	s := NewSnake(3)
	tail := s.Body[len(s.Body)-1]
	s.Grow(3)
	if s.Length() != 6 {
		t.Fatalf("length = %d, want 6", s.Length())
	}
	for i := 3; i < 6; i++ {
		if s.Body[i] != tail {
			t.Errorf("Body[%d] = %v, want duplicated tail %v", i, s.Body[i], tail)
		}
	}
	s.Grow(0)
	if s.Length() != 6 {
		t.Error("Grow(0) must be a no-op")
	}
}

func TestShrinkRespectsFloor(t *testing.T) {
	s := NewSnake(3)
	if removed := s.Shrink(5, 3); len(removed) != 0 {
		t.Fatalf("removed %d cells from a floor-length snake", len(removed))
	}
	s.Grow(7) // length 10
	removed := s.Shrink(4, 3)
	if len(removed) != 4 || s.Length() != 6 {
		t.Fatalf("removed %d, length %d; want 4 and 6", len(removed), s.Length())
	}
	removed = s.Shrink(100, 3)
	if s.Length() != 3 {
		t.Fatalf("length = %d, floor is 3", s.Length())
	}
	if len(removed) != 3 {
		t.Fatalf("removed %d, want 3", len(removed))
	}
}

func TestWrapTeleportsPerAxis(t *testing.T) {
	s := NewSnake(3)
	s.Body[0] = Position{-1, 15}
	if !s.Wrap() || s.Head() != (Position{GridWidth - 1, 15}) {
		t.Errorf("head = %v after left wrap", s.Head())
	}
	s.Body[0] = Position{GridWidth, 7}
	if !s.Wrap() || s.Head() != (Position{0, 7}) {
		t.Errorf("head = %v after right wrap", s.Head())
	}
	s.Body[0] = Position{5, -1}
	if !s.Wrap() || s.Head() != (Position{5, GridHeight - 1}) {
		t.Errorf("head = %v after top wrap", s.Head())
	}
	s.Body[0] = Position{5, GridHeight}
	if !s.Wrap() || s.Head() != (Position{5, 0}) {
		t.Errorf("head = %v after bottom wrap", s.Head())
	}
	s.Body[0] = Position{5, 5}
	if s.Wrap() {
		t.Error("in-bounds head must not wrap")
	}
}

func TestCollisionWallAndSelf(t *testing.T) {
	s := NewSnake(3)
	s.Body[0] = Position{GridWidth, 15}
	if !s.CheckCollision(WallsBounded) {
		t.Error("off-grid head must collide under bounded walls")
	}
	if s.CheckCollision(WallsToroidal) {
		t.Error("off-grid head is not a collision under toroidal walls")
	}

	s.Reset()
	s.Body = []Position{{10, 10}, {11, 10}, {11, 11}, {10, 11}, {10, 10}}
	if !s.CheckCollision(WallsBounded) {
		t.Error("head overlapping the body must collide")
	}
}
