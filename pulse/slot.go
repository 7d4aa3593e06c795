package pulse

// Flusher blocks until all previously submitted gpu work has completed.
type Flusher interface {
	Flush()
}

// Slot holds the one value that is currently bound for rendering. It has a single
// writer and is read once per frame by the render loop.
type Slot[T Releaser] struct {
	flusher Flusher

	current T
	bound   bool
}

func NewSlot[T Releaser](flusher Flusher) *Slot[T] {
	return &Slot[T]{flusher: flusher}
}

// Replace binds next and releases the value bound before. The previous value is released
// only after next is bound and the flusher returned, so no in-flight draw can still
// reference it.
func (s *Slot[T]) Replace(next T) {
	previous, hadPrevious := s.current, s.bound

	s.current = next
	s.bound = true

	s.flusher.Flush()

	if hadPrevious && any(previous) != any(next) {
		previous.Release()
	}
}

// Current returns the bound value. The second return value is false if
// nothing was bound yet.
func (s *Slot[T]) Current() (T, bool) {
	return s.current, s.bound
}

// Release unbinds and releases the current value.
func (s *Slot[T]) Release() {
	if !s.bound {
		return
	}

	s.flusher.Flush()
	s.current.Release()

	var zero T
	s.current = zero
	s.bound = false
}
