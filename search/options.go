package search

// Options holds the tunables a UCI front end can change at runtime via
// "setoption", plus the move-overhead safety margin that is only ever
// set from the config file.
type Options struct {
	HashMB       int
	Threads      int
	OwnBook      bool
	MultiPV      int
	MoveOverheadMs int
}

// DefaultOptions returns the engine's built-in defaults, used when
// neither a config file nor a "setoption" command has overridden them.
func DefaultOptions() Options {
	return Options{
		HashMB:         64,
		Threads:        1,
		OwnBook:        true,
		MultiPV:        1,
		MoveOverheadMs: 30,
	}
}
