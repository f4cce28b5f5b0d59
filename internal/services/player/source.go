package player

import (
	"github.com/gabrielcapilla/musify/internal/ports"
)

// ProgressiveSource is a media URI streamed over HTTP with the given settings.
type ProgressiveSource struct {
	uri       string
	UserAgent string
	Headers   map[string]string
}

func (s ProgressiveSource) URI() string { return s.uri }

// HTTPDataSourceFactory creates ProgressiveSource values sharing one set of
// HTTP settings.
type HTTPDataSourceFactory struct {
	UserAgent string
	Headers   map[string]string
}

func (f HTTPDataSourceFactory) CreateMediaSource(uri string) ports.MediaSource {
	return ProgressiveSource{uri: uri, UserAgent: f.UserAgent, Headers: f.Headers}
}
