package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ImportYAML reads a YAML list of songs from r and upserts them into
// collection. Songs without a mediaId get a random one. It returns the number
// of songs written.
func ImportYAML(ctx context.Context, r io.Reader, w ports.CatalogWriter, collection string) (int, error) {
	var songs []domain.Song
	if err := yaml.NewDecoder(r).Decode(&songs); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("could not parse catalog: %w", err)
	}

	for i := range songs {
		if songs[i].SongURL == "" {
			return 0, fmt.Errorf("song %d (%q) has no songUrl", i, songs[i].Title)
		}
		if songs[i].MediaID == "" {
			songs[i].MediaID = uuid.NewString()
		}
	}

	if collection == "" {
		collection = domain.SongCollection
	}
	if err := w.PutSongs(ctx, collection, songs); err != nil {
		return 0, fmt.Errorf("could not store catalog: %w", err)
	}

	logger.Log.Info().Str("collection", collection).Int("songs", len(songs)).Msg("Catalog imported")
	return len(songs), nil
}
