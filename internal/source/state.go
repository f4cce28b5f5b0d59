package source

// State is the load lifecycle of a MusicSource.
type State int

const (
	StateCreated State = iota
	StateInitializing
	StateInitialized
	StateError
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the catalog is settled in this state.
func (s State) Terminal() bool {
	return s == StateInitialized || s == StateError
}
