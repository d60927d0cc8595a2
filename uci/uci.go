// Package uci implements the UCI (Universal Chess Interface) text
// protocol over stdin/stdout: the command loop, option declarations,
// and "info"/"bestmove" reporting.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/MatN23/rook64/board"
	"github.com/MatN23/rook64/book"
	"github.com/MatN23/rook64/search"
)

const (
	engineName   = "rook64"
	engineAuthor = "rook64 contributors"
)

// UCI drives the protocol loop: it owns the current position, the
// search engine, the opening book and the set of user-tunable
// options, and handles every command on the reading goroutine except
// "go", whose search runs on its own goroutine so that commands such as
// "isready", "stop" and "quit" stay responsive while it runs.
type UCI struct {
	out *bufio.Writer

	engine *search.Engine
	book   *book.Book
	opts   search.Options

	pos *board.Position

	mu        sync.Mutex
	searching bool
	tc        *search.TimeControl
}

// New builds a UCI handler with the given default options and opening
// book (book.Empty() if none is configured).
func New(out io.Writer, opts search.Options, b *book.Book) *UCI {
	u := &UCI{
		out:    bufio.NewWriter(out),
		engine: search.NewEngine(opts.HashMB, opts.Threads),
		book:   b,
		opts:   opts,
		pos:    board.NewPosition(),
	}
	if opts.MultiPV >= 1 {
		u.engine.MultiPV = opts.MultiPV
	}
	return u
}

func (u *UCI) send(format string, args ...interface{}) {
	fmt.Fprintf(u.out, format+"\n", args...)
	u.out.Flush()
}

// Run reads commands from in until it reaches EOF or receives "quit".
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if u.Execute(line) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		glog.Errorf("uci: reading stdin: %v", err)
	}
}

// Execute handles a single command line, returning true if the engine
// should stop reading further commands (i.e. "quit" was received).
func (u *UCI) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "uci":
		u.cmdUCI()
	case "isready":
		u.send("readyok")
	case "setoption":
		u.cmdSetOption(rest)
	case "ucinewgame":
		u.cmdNewGame()
	case "position":
		u.cmdPosition(rest)
	case "go":
		go u.cmdGo(rest)
	case "stop":
		u.cmdStop()
	case "ponderhit":
		// Ponder support is limited to not crashing on this command;
		// the engine never searches with a reduced ponder budget.
	case "debug":
		// Accepted and ignored: diagnostic verbosity is controlled by
		// glog flags, not by the UCI "debug" toggle.
	case "quit":
		u.cmdStop()
		return true
	default:
		glog.V(1).Infof("uci: ignoring unknown command %q", line)
	}
	return false
}

func (u *UCI) cmdUCI() {
	u.send("id name %s", engineName)
	u.send("id author %s", engineAuthor)
	u.send("option name Hash type spin default %d min 1 max 4096", u.opts.HashMB)
	u.send("option name Threads type spin default %d min 1 max 64", u.opts.Threads)
	u.send("option name ClearHash type button")
	u.send("option name OwnBook type check default %v", u.opts.OwnBook)
	u.send("option name MultiPV type spin default %d min 1 max 8", u.opts.MultiPV)
	u.send("uciok")
}

func (u *UCI) cmdSetOption(fields []string) {
	name, value := parseSetOption(fields)
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			glog.Warningf("uci: invalid Hash value %q", value)
			return
		}
		u.opts.HashMB = mb
		u.engine.SetHashSize(mb)
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			glog.Warningf("uci: invalid Threads value %q", value)
			return
		}
		u.opts.Threads = n
		u.engine.Threads = n
	case "clearhash":
		u.engine.ClearHash()
	case "ownbook":
		u.opts.OwnBook = strings.EqualFold(value, "true")
	case "multipv":
		n, err := strconv.Atoi(value)
		if err == nil && n >= 1 {
			u.opts.MultiPV = n
			u.engine.MultiPV = n
		}
	default:
		glog.V(1).Infof("uci: ignoring unknown option %q", name)
	}
}

// parseSetOption extracts the name and value out of the fields
// following "setoption", i.e. "name <name...> value <value...>".
func parseSetOption(fields []string) (name, value string) {
	var nameParts, valueParts []string
	mode := 0 // 0 = none, 1 = name, 2 = value
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "name":
			mode = 1
			continue
		case "value":
			mode = 2
			continue
		}
		switch mode {
		case 1:
			nameParts = append(nameParts, f)
		case 2:
			valueParts = append(valueParts, f)
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

func (u *UCI) cmdNewGame() {
	u.engine.ClearHash()
	u.pos = board.NewPosition()
}

func (u *UCI) cmdPosition(fields []string) {
	if len(fields) == 0 {
		return
	}

	var pos *board.Position
	var rest []string

	switch fields[0] {
	case "startpos":
		pos = board.NewPosition()
		rest = fields[1:]
	case "fen":
		idx := indexOf(fields, "moves")
		end := len(fields)
		if idx >= 0 {
			end = idx
		}
		fen := strings.Join(fields[1:end], " ")
		p, err := board.PositionFromFEN(fen)
		if err != nil {
			u.send("info string invalid fen: %v", err)
			glog.Errorf("uci: %v", errors.Wrap(err, "position fen"))
			return
		}
		pos = p
		if idx >= 0 {
			rest = fields[idx:]
		}
	default:
		glog.V(1).Infof("uci: unrecognized position subcommand %q", fields[0])
		return
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, ms := range rest[1:] {
			m, err := pos.ParseUCIMove(ms)
			if err != nil {
				glog.Warningf("uci: stopping move replay at illegal move %q: %v", ms, err)
				break
			}
			pos.DoMove(m)
		}
	}

	u.mu.Lock()
	u.pos = pos
	u.mu.Unlock()
}

func indexOf(fields []string, target string) int {
	for i, f := range fields {
		if f == target {
			return i
		}
	}
	return -1
}

func (u *UCI) cmdStop() {
	u.mu.Lock()
	searching, tc := u.searching, u.tc
	u.mu.Unlock()
	if searching && tc != nil {
		tc.Stop()
	}
}

func (u *UCI) cmdGo(fields []string) {
	u.mu.Lock()
	if u.searching {
		u.mu.Unlock()
		return
	}
	u.searching = true
	u.mu.Unlock()

	tc := parseGoTimeControl(fields, u.opts.MoveOverheadMs)
	depth := tc.Depth

	u.mu.Lock()
	u.tc = tc
	pos := u.pos
	u.mu.Unlock()

	if u.opts.OwnBook && tc.MoveTime == 0 && !tc.Infinite {
		if pos.FullmoveNumber() <= 15 {
			if m, ok := u.book.Probe(pos); ok {
				u.send("bestmove %s", m.UCI())
				u.mu.Lock()
				u.searching = false
				u.mu.Unlock()
				return
			}
		}
	}

	tc.Start(int(pos.SideToMove()))

	result := u.engine.Go(pos, tc, depth, func(it search.IterationResult) {
		u.sendInfo(it, tc)
	})

	u.send("bestmove %s", formatBestMove(result.BestMove))

	u.mu.Lock()
	u.searching = false
	u.mu.Unlock()
}

func formatBestMove(m board.Move) string {
	if m.IsNull() {
		return "0000"
	}
	return m.UCI()
}

func (u *UCI) sendInfo(it search.IterationResult, tc *search.TimeControl) {
	elapsed := tc.Elapsed()
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(it.Nodes) / elapsed.Seconds())
	}

	scoreStr := fmt.Sprintf("cp %d", it.Score)
	if it.Score >= 29000 || it.Score <= -29000 {
		mateIn := (30000 - abs(it.Score) + 1) / 2
		if it.Score < 0 {
			mateIn = -mateIn
		}
		scoreStr = fmt.Sprintf("mate %d", mateIn)
	}

	pvStr := make([]string, len(it.PV))
	for i, m := range it.PV {
		pvStr[i] = m.UCI()
	}

	multiPV := it.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	u.send("info depth %d seldepth %d multipv %d score %s nodes %d nps %d hashfull %d time %d pv %s",
		it.Depth, it.SelDepth, multiPV, scoreStr, it.Nodes, nps, u.engine.TT.Hashfull(), elapsed.Milliseconds(), strings.Join(pvStr, " "))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// parseGoTimeControl builds a TimeControl from a "go" command's
// fields.
func parseGoTimeControl(fields []string, moveOverheadMs int) *search.TimeControl {
	tc := &search.TimeControl{MoveOverhead: time.Duration(moveOverheadMs) * time.Millisecond}

	for i := 0; i < len(fields); i++ {
		next := func() string {
			if i+1 < len(fields) {
				i++
				return fields[i]
			}
			return "0"
		}
		switch fields[i] {
		case "wtime":
			tc.WTime = parseMs(next())
		case "btime":
			tc.BTime = parseMs(next())
		case "winc":
			tc.WInc = parseMs(next())
		case "binc":
			tc.BInc = parseMs(next())
		case "movestogo":
			tc.MovesToGo = parseInt(next())
		case "depth":
			tc.Depth = parseInt(next())
		case "nodes":
			tc.Nodes = uint64(parseInt(next()))
		case "movetime":
			tc.MoveTime = parseMs(next())
		case "infinite":
			tc.Infinite = true
		case "ponder":
			// Treated as a normal search; see the "ponderhit" handler.
		case "searchmoves":
			// Root move restriction is not modeled; remaining fields
			// are UCI move strings, consume and ignore them.
			for i+1 < len(fields) && len(fields[i+1]) >= 4 && fields[i+1][0] >= 'a' && fields[i+1][0] <= 'h' {
				i++
			}
		}
	}
	return tc
}

func parseMs(s string) time.Duration {
	n := parseInt(s)
	return time.Duration(n) * time.Millisecond
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
