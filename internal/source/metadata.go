package source

import "github.com/gabrielcapilla/musify/internal/domain"

// Metadata describes a song the way the playback engine consumes it.
type Metadata struct {
	Artist             string
	MediaID            string
	Title              string
	DisplayTitle       string
	DisplayIconURI     string
	MediaURI           string
	AlbumArtURI        string
	DisplaySubtitle    string
	DisplayDescription string
}

func metadataFromSong(song domain.Song) Metadata {
	return Metadata{
		Artist:             song.Subtitle,
		MediaID:            song.MediaID,
		Title:              song.Title,
		DisplayTitle:       song.Title,
		DisplayIconURI:     song.ImageURL,
		MediaURI:           song.SongURL,
		AlbumArtURI:        song.ImageURL,
		DisplaySubtitle:    song.Subtitle,
		DisplayDescription: song.Subtitle,
	}
}

func (m Metadata) mediaItem() domain.MediaItem {
	return domain.MediaItem{
		MediaURI: m.MediaURI,
		Title:    m.DisplayTitle,
		Subtitle: m.DisplaySubtitle,
		MediaID:  m.MediaID,
		IconURI:  m.DisplayIconURI,
	}
}
