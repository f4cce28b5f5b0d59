package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gabrielcapilla/musify/internal/domain"

	"github.com/buger/jsonparser"
	"go.etcd.io/bbolt"
)

var historyBucket = []byte("history")

// historyKeyLayout has a fixed width so keys sort chronologically.
const historyKeyLayout = "2006-01-02T15:04:05.000000000Z"

// ErrCollectionNotFound is returned when a collection has never been written.
var ErrCollectionNotFound = errors.New("collection not found")

var songFields = [][]string{
	{"mediaId"},
	{"title"},
	{"subtitle"},
	{"imageUrl"},
	{"songUrl"},
}

// BboltStore keeps song documents in one bucket per collection and the play
// history in its own bucket.
type BboltStore struct {
	db *bbolt.DB
}

func NewBboltStore(dbPath string) (*BboltStore, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create history bucket: %w", err)
	}

	return &BboltStore{db: db}, nil
}

// Document keys are "<sequence>:<mediaId>" so cursor order is insertion order.
func documentKey(seq uint64, mediaID string) []byte {
	return []byte(fmt.Sprintf("%020d:%s", seq, mediaID))
}

// idIndexBucket is nested in each collection bucket and maps a mediaId to
// its document key. Its name sorts before every document key.
var idIndexBucket = []byte("\x00ids")

func findDocument(b *bbolt.Bucket, mediaID string) []byte {
	idx := b.Bucket(idIndexBucket)
	if idx == nil {
		return nil
	}
	if key := idx.Get([]byte(mediaID)); key != nil {
		return append([]byte(nil), key...)
	}
	return nil
}

// PutSongs upserts songs into collection. A song that already exists keeps
// its position in the collection.
func (s *BboltStore) PutSongs(ctx context.Context, collection string, songs []domain.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return fmt.Errorf("could not create collection %q: %w", collection, err)
		}
		idx, err := b.CreateBucketIfNotExists(idIndexBucket)
		if err != nil {
			return fmt.Errorf("could not create id index for %q: %w", collection, err)
		}

		for _, song := range songs {
			if song.MediaID == "" {
				return fmt.Errorf("song %q has no mediaId", song.Title)
			}
			value, err := json.Marshal(song)
			if err != nil {
				return fmt.Errorf("error serializing song %s: %w", song.MediaID, err)
			}

			key := findDocument(b, song.MediaID)
			if key == nil {
				seq, err := b.NextSequence()
				if err != nil {
					return err
				}
				key = documentKey(seq, song.MediaID)
				if err := idx.Put([]byte(song.MediaID), key); err != nil {
					return err
				}
			}
			if err := b.Put(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// AllSongs returns every document of collection in insertion order.
func (s *BboltStore) AllSongs(ctx context.Context, collection string) ([]domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var songs []domain.Song
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
		}
		return b.ForEach(func(k, v []byte) error {
			if v == nil {
				return nil
			}
			song, err := decodeSong(v)
			if err != nil {
				return fmt.Errorf("error deserializing document %s: %w", k, err)
			}
			songs = append(songs, song)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// DeleteSong removes the document for mediaID. Deleting a missing song is not
// an error.
func (s *BboltStore) DeleteSong(ctx context.Context, collection, mediaID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		key := findDocument(b, mediaID)
		if key == nil {
			return nil
		}
		if err := b.Bucket(idIndexBucket).Delete([]byte(mediaID)); err != nil {
			return err
		}
		return b.Delete(key)
	})
}

// decodeSong reads the known fields of a song document. Unknown fields are
// ignored and missing or null fields are left empty.
func decodeSong(data []byte) (domain.Song, error) {
	var song domain.Song

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return song, err
	}
	if dataType != jsonparser.Object {
		return song, fmt.Errorf("document is a %s, not an object", dataType)
	}

	targets := []*string{&song.MediaID, &song.Title, &song.Subtitle, &song.ImageURL, &song.SongURL}
	var parseErr error
	jsonparser.EachKey(data, func(idx int, value []byte, vt jsonparser.ValueType, err error) {
		if parseErr != nil {
			return
		}
		if err != nil {
			parseErr = err
			return
		}
		switch vt {
		case jsonparser.Null:
		case jsonparser.String:
			str, err := jsonparser.ParseString(value)
			if err != nil {
				parseErr = err
				return
			}
			*targets[idx] = str
		default:
			parseErr = fmt.Errorf("field %s is a %s, not a string", songFields[idx][0], vt)
		}
	}, songFields...)

	return song, parseErr
}

func (s *BboltStore) createHistoryKey(t time.Time, mediaID string) []byte {
	return []byte(fmt.Sprintf("%s|%s", t.UTC().Format(historyKeyLayout), mediaID))
}

func (s *BboltStore) findAndDeleteOldEntry(b *bbolt.Bucket, mediaID string) error {
	c := b.Cursor()
	sep := []byte("|")
	idBytes := []byte(mediaID)

	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		parts := bytes.SplitN(k, sep, 2)
		if len(parts) == 2 && bytes.Equal(parts[1], idBytes) {
			return c.Delete()
		}
	}
	return nil
}

// AddToHistory records a play of entry.Song. A song played before moves to
// the front of the history.
func (s *BboltStore) AddToHistory(entry domain.HistoryEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(historyBucket)

		if err := s.findAndDeleteOldEntry(b, entry.Song.MediaID); err != nil {
			return err
		}

		if entry.PlayedAt.IsZero() {
			entry.PlayedAt = time.Now()
		}
		key := s.createHistoryKey(entry.PlayedAt, entry.Song.MediaID)

		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("error serializing history entry: %w", err)
		}

		return b.Put(key, value)
	})
}

// GetHistory returns at most limit entries, newest first.
func (s *BboltStore) GetHistory(limit int) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()

		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry domain.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("error deserializing history entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *BboltStore) Close() error {
	return s.db.Close()
}
