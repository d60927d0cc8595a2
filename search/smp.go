package search

import (
	"context"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/MatN23/rook64/board"
)

// Engine owns the transposition table shared across a search and
// drives a lazy-SMP pool of Workers: every worker redundantly searches
// the same root position to the same depths, diverging naturally
// because of timing differences in table reads, and the deepest
// worker's result wins. This trades perfect work-splitting for a pool
// that needs no inter-thread move-list partitioning at all.
type Engine struct {
	TT      *TranspositionTable
	Threads int
	// MultiPV is the number of distinct root lines the reporting
	// worker searches and reports per depth. Only the reporting worker
	// (id 0) searches multiple lines; helper threads always search a
	// single line, since their result is only used if they reach the
	// greatest depth.
	MultiPV int

	stop int32
}

// NewEngine creates an Engine with a transposition table sized hashMB
// megabytes and a pool of `threads` lazy-SMP workers.
func NewEngine(hashMB, threads int) *Engine {
	if threads < 1 {
		threads = 1
	}
	return &Engine{TT: NewTranspositionTable(hashMB), Threads: threads, MultiPV: 1}
}

// SetHashSize reallocates the transposition table; used by the UCI
// "setoption name Hash value N" command.
func (e *Engine) SetHashSize(mb int) { e.TT = NewTranspositionTable(mb) }

// ClearHash empties the transposition table without reallocating it.
func (e *Engine) ClearHash() { e.TT.Clear() }

// Stop requests that any in-progress search return as soon as its
// workers next check the shared flag.
func (e *Engine) Stop() { atomic.StoreInt32(&e.stop, 1) }

// Result is the outcome of a Go call: the best move found, its score,
// and the final iteration's statistics.
type Result struct {
	BestMove board.Move
	Score    int
	Nodes    uint64
	Depth    int
}

// Go launches the lazy-SMP pool against pos for the given time control
// and maximum depth, invoking report from the main helper thread (id 0)
// after each of its completed iterations. It blocks until every worker
// has stopped, then returns the result reported by the worker that
// reached the greatest depth (ties broken by the lowest worker id, so
// the result is deterministic for a fixed thread count).
func (e *Engine) Go(root *board.Position, tc *TimeControl, maxDepth int, report func(IterationResult)) Result {
	atomic.StoreInt32(&e.stop, 0)

	type workerResult struct {
		id    int
		move  board.Move
		score int
		depth int
		nodes uint64
	}

	results := make([]workerResult, e.Threads)
	grp, _ := errgroup.WithContext(context.Background())

	for i := 0; i < e.Threads; i++ {
		i := i
		grp.Go(func() error {
			pos := root.Clone()
			w := NewWorker(i, e.TT, &e.stop)

			var rep func(IterationResult)
			multiPV := 1
			if i == 0 {
				multiPV = e.MultiPV
				if report != nil {
					rep = report
				}
			}

			move, score := w.Search(pos, tc, maxDepth, multiPV, rep)
			results[i] = workerResult{id: i, move: move, score: score, depth: w.Stats.Depth, nodes: w.Stats.Nodes}
			return nil
		})
	}
	grp.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].depth != results[b].depth {
			return results[a].depth > results[b].depth
		}
		return results[a].id < results[b].id
	})

	var totalNodes uint64
	for _, r := range results {
		totalNodes += r.nodes
	}

	best := results[0]
	return Result{BestMove: best.move, Score: best.score, Nodes: totalNodes, Depth: best.depth}
}
