package ports

import (
	"context"

	"github.com/gabrielcapilla/musify/internal/domain"
)

// CatalogStore is the document store the catalog is read from.
type CatalogStore interface {
	AllSongs(ctx context.Context, collection string) ([]domain.Song, error)
}

// CatalogWriter seeds a collection with song documents and prunes them.
type CatalogWriter interface {
	PutSongs(ctx context.Context, collection string, songs []domain.Song) error
	DeleteSong(ctx context.Context, collection, mediaID string) error
}

type HistoryStore interface {
	AddToHistory(entry domain.HistoryEntry) error
	GetHistory(limit int) ([]domain.HistoryEntry, error)
}

type StorageService interface {
	CatalogStore
	CatalogWriter
	HistoryStore
	Close() error
}
