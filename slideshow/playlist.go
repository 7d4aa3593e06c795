package slideshow

// Playlist is an ordered list of image paths with a cursor. Moving the
// cursor wraps around in both directions.
type Playlist struct {
	paths []string
	index int
}

func NewPlaylist(paths []string) *Playlist {
	return &Playlist{paths: append([]string(nil), paths...)}
}

func (p *Playlist) Len() int {
	return len(p.paths)
}

func (p *Playlist) Index() int {
	return p.index
}

// Current returns the path at the cursor, or false if the playlist is empty.
func (p *Playlist) Current() (string, bool) {
	if len(p.paths) == 0 {
		return "", false
	}

	return p.paths[p.index], true
}

// Next moves the cursor one entry forward and returns the new index.
// It does nothing on an empty playlist.
func (p *Playlist) Next() int {
	return p.Step(1)
}

// Previous moves the cursor one entry backward and returns the new index.
// It does nothing on an empty playlist.
func (p *Playlist) Previous() int {
	return p.Step(-1)
}

// Step moves the cursor by delta entries, wrapping around.
func (p *Playlist) Step(delta int) int {
	if len(p.paths) == 0 {
		return p.index
	}

	p.index = wrap(p.index+delta, len(p.paths))
	return p.index
}

// Seek moves the cursor to index, wrapping around.
func (p *Playlist) Seek(index int) int {
	if len(p.paths) == 0 {
		return p.index
	}

	p.index = wrap(index, len(p.paths))
	return p.index
}

// At returns the path at index, wrapping around.
func (p *Playlist) At(index int) string {
	return p.paths[wrap(index, len(p.paths))]
}

func wrap(index, length int) int {
	index %= length
	if index < 0 {
		index += length
	}

	return index
}
