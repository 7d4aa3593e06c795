package slideshow

import "testing"

func TestPlaylistRoundTrip(t *testing.T) {
	for length := 1; length <= 5; length++ {
		paths := make([]string, length)
		for idx := range paths {
			paths[idx] = string(rune('a' + idx))
		}

		for start := range length {
			p := NewPlaylist(paths)
			p.Seek(start)

			p.Next()
			if got := p.Previous(); got != start {
				t.Errorf("len=%d: Next+Previous from %d = %d", length, start, got)
			}

			p.Previous()
			if got := p.Next(); got != start {
				t.Errorf("len=%d: Previous+Next from %d = %d", length, start, got)
			}
		}
	}
}

func TestPlaylistCycle(t *testing.T) {
	p := NewPlaylist([]string{"a", "b", "c"})
	p.Seek(1)

	for range p.Len() {
		p.Next()
	}

	if current, _ := p.Current(); current != "b" {
		t.Errorf("after a full cycle forward Current() = %q, want b", current)
	}

	for range p.Len() {
		p.Previous()
	}

	if current, _ := p.Current(); current != "b" {
		t.Errorf("after a full cycle backward Current() = %q, want b", current)
	}
}

func TestPlaylistWraps(t *testing.T) {
	p := NewPlaylist([]string{"a", "b", "c"})

	if got := p.Previous(); got != 2 {
		t.Errorf("Previous() from 0 = %d, want 2", got)
	}

	if got := p.Next(); got != 0 {
		t.Errorf("Next() from 2 = %d, want 0", got)
	}

	if got := p.Seek(-4); got != 2 {
		t.Errorf("Seek(-4) = %d, want 2", got)
	}

	if got := p.At(7); got != "b" {
		t.Errorf("At(7) = %q, want b", got)
	}
}

func TestPlaylistEmpty(t *testing.T) {
	p := NewPlaylist(nil)

	if got := p.Next(); got != 0 {
		t.Errorf("Next() on empty playlist = %d, want 0", got)
	}

	if got := p.Previous(); got != 0 {
		t.Errorf("Previous() on empty playlist = %d, want 0", got)
	}

	if got := p.Seek(3); got != 0 {
		t.Errorf("Seek() on empty playlist = %d, want 0", got)
	}

	if _, ok := p.Current(); ok {
		t.Errorf("Current() on empty playlist reports a path")
	}
}

func TestPlaylistCopiesPaths(t *testing.T) {
	paths := []string{"a", "b"}
	p := NewPlaylist(paths)
	paths[0] = "changed"

	if current, _ := p.Current(); current != "a" {
		t.Errorf("playlist shares its backing array with the caller")
	}
}
