package game

// SnakeBody is the ordered cell sequence of the snake. Body[0] is the head;
// insertion order is body order. All mutation happens through the methods
// below, driven once per tick by the session.
type SnakeBody struct {
	Body    []Position
	Dir     Direction
	Pending Direction

	// growthPending is a single-shot flag: any number of MarkGrowth calls
	// between two Advances still grows by exactly one cell.
	growthPending bool

	initialLength int
}

// NewSnake returns a snake reset to initialLength cells.
func NewSnake(initialLength int) *SnakeBody {
	s := &SnakeBody{initialLength: initialLength}
	s.Reset()
	return s
}

// Reset rebuilds the body as initialLength cells extending left from the
// grid center, moving right, with no growth pending.
func (s *SnakeBody) Reset() {
	cx := GridWidth / 2
	cy := GridHeight / 2
	s.Body = s.Body[:0]
	for i := 0; i < s.initialLength; i++ {
		s.Body = append(s.Body, Position{X: cx - i, Y: cy})
	}
	s.Dir = DirRight
	s.Pending = DirRight
	s.growthPending = false
}

// Head returns the current head cell.
func (s *SnakeBody) Head() Position {
	return s.Body[0]
}

// Length returns the body length in cells.
func (s *SnakeBody) Length() int {
	return len(s.Body)
}

// Contains reports whether any body cell equals p.
func (s *SnakeBody) Contains(p Position) bool {
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

// SetPendingDirection records a requested turn. A request for the exact
// inverse of the current direction is dropped, however many times it is
// made within one tick.
func (s *SnakeBody) SetPendingDirection(d Direction) {
	if d == s.Dir.Opposite() {
		return
	}
	s.Pending = d
}

// Advance commits the pending direction and moves the head one cell.
// The inverse guard is re-checked at commit time since Dir may have changed
// after the request was recorded. Returns the vacated tail cell when the
// tail moved, so the caller can release its render state.
func (s *SnakeBody) Advance() (tail Position, vacated bool) {
	if s.Pending != s.Dir.Opposite() {
		s.Dir = s.Pending
	}
	head := s.Head().Add(s.Dir)
	s.Body = append(s.Body, Position{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = head

	if s.growthPending {
		s.growthPending = false
		return Position{}, false
	}
	tail = s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	return tail, true
}

// MarkGrowth arms the single pending growth consumed by the next Advance.
func (s *SnakeBody) MarkGrowth() {
	s.growthPending = true
}

// Grow appends n copies of the tail cell immediately. This is the
// multi-segment path; the duplicates unfold as the snake moves.
func (s *SnakeBody) Grow(n int) {
	if n <= 0 || len(s.Body) == 0 {
		return
	}
	tail := s.Body[len(s.Body)-1]
	for i := 0; i < n; i++ {
		s.Body = append(s.Body, tail)
	}
}

// Shrink removes up to n tail cells but never below minLen.
// Returns the removed cells, newest first, for dirty-cell marking.
func (s *SnakeBody) Shrink(n, minLen int) []Position {
	var removed []Position
	for i := 0; i < n && len(s.Body) > minLen; i++ {
		last := s.Body[len(s.Body)-1]
		s.Body = s.Body[:len(s.Body)-1]
		removed = append(removed, last)
	}
	return removed
}

// CheckCollision reports whether the head hit a wall (bounded policy only)
// or any other body cell.
func (s *SnakeBody) CheckCollision(policy WallPolicy) bool {
	head := s.Head()
	if policy == WallsBounded && !head.InBounds() {
		return true
	}
	for _, c := range s.Body[1:] {
		if c == head {
			return true
		}
	}
	return false
}

// Wrap teleports an off-grid head to the opposite edge, per axis.
// Only meaningful under toroidal walls. Reports whether a wrap happened.
func (s *SnakeBody) Wrap() bool {
	head := s.Head()
	wrapped := false
	if head.X < 0 {
		head.X = GridWidth - 1
		wrapped = true
	} else if head.X >= GridWidth {
		head.X = 0
		wrapped = true
	}
	if head.Y < 0 {
		head.Y = GridHeight - 1
		wrapped = true
	} else if head.Y >= GridHeight {
		head.Y = 0
		wrapped = true
	}
	if wrapped {
		s.Body[0] = head
	}
	return wrapped
}
