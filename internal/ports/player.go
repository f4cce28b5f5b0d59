package ports

type PlayerState struct {
	IsPlaying bool
	Position  float64
	Duration  float64
	// Index is the playlist position, -1 when mpv cannot report it.
	Index int
}

type PlayerService interface {
	Play(url string) error
	PlayQueue(queue *ConcatenatingMediaSource, start int) error
	Pause() error
	Next() error
	Stop() error
	GetState() (PlayerState, error)
	Close() error
}
