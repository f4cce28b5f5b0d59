// Package source holds the song catalog in memory for the player and tells
// interested callers when it is ready.
package source

import (
	"context"
	"sync"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/metrics"
	"github.com/gabrielcapilla/musify/internal/ports"
)

// Fetcher returns the whole song catalog. It never fails; an unavailable
// catalog is an empty one.
type Fetcher interface {
	FetchAll(ctx context.Context) []domain.Song
}

// MusicSource owns the loaded songs and their load state. Callers that need
// the songs before loading has finished register with WhenReady.
type MusicSource struct {
	fetcher Fetcher
	metrics *metrics.Metrics

	mu        sync.Mutex
	state     State
	listeners []func(bool)
	songs     []Metadata
}

// New returns a MusicSource in StateCreated. m may be nil.
func New(fetcher Fetcher, m *metrics.Metrics) *MusicSource {
	return &MusicSource{fetcher: fetcher, metrics: m, state: StateCreated}
}

func (s *MusicSource) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// setState moves to state. Entering a terminal state drains the pending
// listeners in the same critical section and then calls each of them, in
// registration order, with whether the load succeeded.
func (s *MusicSource) setState(state State) {
	s.mu.Lock()
	s.state = state
	if !state.Terminal() {
		s.mu.Unlock()
		return
	}
	listeners := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	ok := state == StateInitialized
	for _, fn := range listeners {
		fn(ok)
	}
}

// Load fetches the catalog and replaces the songs held by the source. It
// blocks until the fetch returns and always ends in StateInitialized.
func (s *MusicSource) Load(ctx context.Context) {
	s.setState(StateInitializing)

	songs := s.fetcher.FetchAll(ctx)
	loaded := make([]Metadata, 0, len(songs))
	for _, song := range songs {
		loaded = append(loaded, metadataFromSong(song))
	}

	s.mu.Lock()
	s.songs = loaded
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SongsLoaded.Set(float64(len(loaded)))
	}
	logger.Log.Info().Int("songs", len(loaded)).Msg("Music source loaded")

	s.setState(StateInitialized)
}

// WhenReady calls fn with whether the catalog loaded successfully. Before the
// source is settled fn is queued and WhenReady returns false; afterwards fn is
// called right away and WhenReady returns true.
func (s *MusicSource) WhenReady(fn func(ok bool)) bool {
	s.mu.Lock()
	if !s.state.Terminal() {
		s.listeners = append(s.listeners, fn)
		s.mu.Unlock()
		return false
	}
	ok := s.state == StateInitialized
	s.mu.Unlock()

	fn(ok)
	return true
}

// Songs returns the loaded songs in catalog order.
func (s *MusicSource) Songs() []Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Metadata, len(s.songs))
	copy(out, s.songs)
	return out
}

// ConcatenatingSource builds one media source per song, in catalog order,
// and joins them into a single playable sequence.
func (s *MusicSource) ConcatenatingSource(factory ports.MediaSourceFactory) *ports.ConcatenatingMediaSource {
	concat := ports.NewConcatenatingMediaSource()
	for _, song := range s.Songs() {
		concat.Add(factory.CreateMediaSource(song.MediaURI))
	}
	return concat
}

// MediaItems returns the songs as browsable items in catalog order.
func (s *MusicSource) MediaItems() []domain.MediaItem {
	songs := s.Songs()
	items := make([]domain.MediaItem, 0, len(songs))
	for _, song := range songs {
		items = append(items, song.mediaItem())
	}
	return items
}
