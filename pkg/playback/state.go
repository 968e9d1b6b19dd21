package playback

// Status of the race clock
type Status int

const (
	Running Status = iota
	Stopped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// State is the mutable part of a replay. It is passed by value,
// each tick produces a new State.
type State struct {
	Step   int     // index into the sample times
	Clock  float64 // race time in seconds
	Paused bool
	Status Status
}

// TogglePause flips the paused flag. Clock and step are kept.
func TogglePause(s State) State {
	s.Paused = !s.Paused
	return s
}
