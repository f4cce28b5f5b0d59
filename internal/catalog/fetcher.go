// Package catalog reads the song catalog out of the document store.
package catalog

import (
	"context"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/metrics"
	"github.com/gabrielcapilla/musify/internal/ports"
)

// Fetcher loads every song of one collection.
type Fetcher struct {
	store      ports.CatalogStore
	collection string
	metrics    *metrics.Metrics
}

// NewFetcher returns a Fetcher over collection. An empty collection selects
// domain.SongCollection. m may be nil.
func NewFetcher(store ports.CatalogStore, collection string, m *metrics.Metrics) *Fetcher {
	if collection == "" {
		collection = domain.SongCollection
	}
	return &Fetcher{store: store, collection: collection, metrics: m}
}

// FetchAll returns all songs in the collection. A failed retrieval is logged
// and reported as an empty catalog, so callers cannot tell it apart from a
// collection that holds no songs.
func (f *Fetcher) FetchAll(ctx context.Context) []domain.Song {
	songs, err := f.store.AllSongs(ctx, f.collection)
	if err != nil {
		logger.Log.Error().Err(err).Str("collection", f.collection).Msg("Could not fetch song catalog")
		if f.metrics != nil {
			f.metrics.FetchFailures.Inc()
		}
		return []domain.Song{}
	}

	if f.metrics != nil {
		f.metrics.Fetches.Inc()
	}
	logger.Log.Debug().Str("collection", f.collection).Int("songs", len(songs)).Msg("Fetched song catalog")
	if songs == nil {
		songs = []domain.Song{}
	}
	return songs
}
