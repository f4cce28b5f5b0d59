package ports

import (
	"time"

	"github.com/gabrielcapilla/musify/internal/domain"
)

// CatalogReadyMsg is delivered once the music source reaches a terminal state.
type CatalogReadyMsg struct{ OK bool }

type HistoryLoadedMsg struct{ Entries []domain.HistoryEntry }
type HistoryErrorMsg struct{ Err error }

type TickMsg time.Time
type PlayItemMsg struct{ Index int }
type PlayHistoryMsg struct{ Entry domain.HistoryEntry }
type SongNowPlayingMsg struct{ Item domain.MediaItem }
type PlayErrorMsg struct{ Err error }
type PlayerStateUpdateMsg struct{ State PlayerState }
