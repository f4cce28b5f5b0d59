package ports

// MediaSource is a single playable unit understood by the playback engine.
type MediaSource interface {
	URI() string
}

// MediaSourceFactory builds media sources for a media URI, applying whatever
// transport settings the engine needs.
type MediaSourceFactory interface {
	CreateMediaSource(uri string) MediaSource
}

// ConcatenatingMediaSource plays its sources back to back in insertion order.
type ConcatenatingMediaSource struct {
	sources []MediaSource
}

func NewConcatenatingMediaSource() *ConcatenatingMediaSource {
	return &ConcatenatingMediaSource{}
}

func (c *ConcatenatingMediaSource) Add(src MediaSource) {
	c.sources = append(c.sources, src)
}

func (c *ConcatenatingMediaSource) Len() int { return len(c.sources) }

// Sources returns the sources in playback order.
func (c *ConcatenatingMediaSource) Sources() []MediaSource {
	out := make([]MediaSource, len(c.sources))
	copy(out, c.sources)
	return out
}
