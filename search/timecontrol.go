package search

import (
	"sync"
	"time"
)

// TimeControl turns a UCI "go" command's time parameters into a soft
// and a hard deadline: the soft deadline is when iterative deepening
// should stop starting new depths, the hard deadline is when an
// in-progress search must abort regardless of depth.
type TimeControl struct {
	WTime, BTime         time.Duration
	WInc, BInc           time.Duration
	MovesToGo            int
	Depth                int // 0 means unbounded
	Nodes                uint64
	MoveTime             time.Duration // exact time for this move, 0 means compute from clocks
	Infinite             bool
	MoveOverhead         time.Duration

	start    time.Time
	soft     time.Duration
	hard     time.Duration

	mu      sync.Mutex
	stopped bool
}

// Start computes the soft/hard budgets for the side to move and
// records the wall-clock start time.
func (tc *TimeControl) Start(sideToMove int) {
	tc.start = time.Now()

	if tc.MoveTime > 0 {
		budget := tc.MoveTime - tc.MoveOverhead
		if budget < time.Millisecond {
			budget = time.Millisecond
		}
		tc.soft, tc.hard = budget, budget
		return
	}
	if tc.Infinite || tc.Depth > 0 {
		tc.soft, tc.hard = time.Duration(1<<62), time.Duration(1<<62)
		return
	}

	myTime, myInc := tc.WTime, tc.WInc
	if sideToMove == 1 {
		myTime, myInc = tc.BTime, tc.BInc
	}

	movesToGo := tc.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	alloc := myTime/time.Duration(movesToGo) + myInc
	alloc -= tc.MoveOverhead
	if alloc < time.Millisecond {
		alloc = time.Millisecond
	}

	tc.soft = alloc
	tc.hard = alloc * 3
	if tc.hard > myTime-tc.MoveOverhead {
		tc.hard = myTime - tc.MoveOverhead
	}
	if tc.hard < tc.soft {
		tc.hard = tc.soft
	}
}

// Elapsed returns the time since Start was called.
func (tc *TimeControl) Elapsed() time.Duration { return time.Since(tc.start) }

// ShouldStartDepth reports whether there is enough of the soft budget
// left to be worth starting another iterative-deepening pass.
func (tc *TimeControl) ShouldStartDepth() bool {
	return tc.Elapsed() < tc.soft
}

// ShouldStop reports whether the hard deadline has passed or Stop was
// called.
func (tc *TimeControl) ShouldStop() bool {
	if tc.Stopped() {
		return true
	}
	return tc.Elapsed() >= tc.hard
}

// Stop requests that the search abort as soon as a worker next checks.
func (tc *TimeControl) Stop() {
	tc.mu.Lock()
	tc.stopped = true
	tc.mu.Unlock()
}

// Stopped reports whether Stop has been called.
func (tc *TimeControl) Stopped() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.stopped
}
