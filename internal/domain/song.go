package domain

import "time"

// SongCollection is the name of the document collection holding the catalog.
const SongCollection = "songs"

// Song is a catalog document as stored in the song collection.
type Song struct {
	MediaID  string `json:"mediaId" yaml:"mediaId"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	ImageURL string `json:"imageUrl" yaml:"imageUrl"`
	SongURL  string `json:"songUrl" yaml:"songUrl"`
}

// MediaItem is a playable entry handed to browsing clients.
type MediaItem struct {
	MediaURI string
	Title    string
	Subtitle string
	MediaID  string
	IconURI  string
}

type HistoryEntry struct {
	Song     Song
	PlayedAt time.Time
}
