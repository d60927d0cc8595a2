// Package search implements iterative-deepening alpha-beta search with
// a shared transposition table, null-move pruning, late-move
// reductions, quiescence search and lazy-SMP parallelism across a
// worker pool.
package search

import (
	"unsafe"

	"github.com/MatN23/rook64/board"
	"github.com/MatN23/rook64/eval"
)

// Bound classifies how a stored score relates to the search window
// that produced it.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // fail-high, true score >= stored score
	BoundUpper // fail-low, true score <= stored score
)

type ttEntry struct {
	lock  uint32
	move  board.Move
	score int16
	depth int8
	bound Bound
}

const entrySize = int(unsafe.Sizeof(ttEntry{}))

// TranspositionTable is a fixed-size, lock-striped hash table shared by
// every search worker. Two candidate slots are derived from each
// position's Zobrist hash (a two-way bucket scheme); a probe checks
// both before reporting a miss, and a store replaces whichever of the
// two is emptier or shallower.
type TranspositionTable struct {
	table []ttEntry
	mask  uint32
	locks []chan struct{}
}

// NewTranspositionTable allocates a table sized to fit within megabytes
// MB, rounded down to a power of two number of entries.
func NewTranspositionTable(mb int) *TranspositionTable {
	if mb < 1 {
		mb = 1
	}
	numEntries := mb * 1024 * 1024 / entrySize
	size := uint32(1)
	for int(size)*2 <= numEntries {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	const numLocks = 1024
	locks := make([]chan struct{}, numLocks)
	for i := range locks {
		locks[i] = make(chan struct{}, 1)
	}
	return &TranspositionTable{
		table: make([]ttEntry, size),
		mask:  size - 1,
		locks: locks,
	}
}

func (tt *TranspositionTable) lock(h uint64) chan struct{} {
	// Keyed on the bucket (slot index with its low bit dropped) so that
	// both candidate slots of a bucket are always guarded by one lock.
	return tt.locks[(uint32(h)&tt.mask)>>1%uint32(len(tt.locks))]
}

func (tt *TranspositionTable) split(hash uint64) (hi, lo0, lo1 uint32) {
	hi = uint32(hash >> 32)
	lo0 = uint32(hash) & tt.mask
	lo1 = lo0 ^ 1
	return
}

// Probe looks up hash and returns the stored move, score, depth and
// bound. ok is false on a miss.
func (tt *TranspositionTable) Probe(hash uint64) (move board.Move, score int, depth int, bound Bound, ok bool) {
	l := tt.lock(hash)
	l <- struct{}{}
	defer func() { <-l }()

	hi, i0, i1 := tt.split(hash)
	if e := &tt.table[i0]; e.lock == hi && e.bound != BoundNone {
		return e.move, int(e.score), int(e.depth), e.bound, true
	}
	if e := &tt.table[i1]; e.lock == hi && e.bound != BoundNone {
		return e.move, int(e.score), int(e.depth), e.bound, true
	}
	return board.Move{}, 0, 0, BoundNone, false
}

// Store records a search result for hash, replacing the shallower of
// the two candidate slots unless one of them already matches this
// position.
func (tt *TranspositionTable) Store(hash uint64, move board.Move, score, depth int, bound Bound) {
	l := tt.lock(hash)
	l <- struct{}{}
	defer func() { <-l }()

	hi, i0, i1 := tt.split(hash)
	e0, e1 := &tt.table[i0], &tt.table[i1]

	var target *ttEntry
	switch {
	case e0.lock == hi:
		target = e0
	case e1.lock == hi:
		target = e1
	case e0.bound == BoundNone:
		target = e0
	case e1.bound == BoundNone:
		target = e1
	case int(e0.depth) <= int(e1.depth):
		target = e0
	default:
		target = e1
	}

	if target.lock == hi && int(target.depth) > depth && bound != BoundExact {
		return
	}

	target.lock = hi
	target.move = move
	target.score = int16(score)
	target.depth = int8(depth)
	target.bound = bound
}

// Clear empties every entry, used by the UCI "ucinewgame" command and
// the "ClearHash" button option.
func (tt *TranspositionTable) Clear() {
	for i := range tt.table {
		tt.table[i] = ttEntry{}
	}
}

// Hashfull estimates table occupancy in permille (0-1000), the unit
// UCI's "info hashfull" expects, by sampling the first 1000 entries
// rather than scanning the whole table on every info line.
func (tt *TranspositionTable) Hashfull() int {
	sample := len(tt.table)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.table[i].bound != BoundNone {
			used++
		}
	}
	return used * 1000 / sample
}

// scoreToTT adjusts a mate score to be relative to the current node
// rather than the root, so that it can be safely reused at a different
// ply later.
func scoreToTT(score int, ply int) int {
	if score >= int(eval.KnownWinScore) {
		return score + ply
	}
	if score <= -int(eval.KnownWinScore) {
		return score - ply
	}
	return score
}

// scoreFromTT reverses scoreToTT when reading a stored score back in
// at the current ply.
func scoreFromTT(score int, ply int) int {
	if score >= int(eval.KnownWinScore) {
		return score - ply
	}
	if score <= -int(eval.KnownWinScore) {
		return score + ply
	}
	return score
}
