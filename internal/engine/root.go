package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/chesstutor/engine/internal/board"
	"github.com/chesstutor/engine/internal/book"
)

// Result is the outcome of a single FindBestMove call: the chosen move in
// UCI notation, a formatted score string from White's perspective, and a
// principal variation. The source this engine follows does not reconstruct
// a true PV at the root, so PrincipalVariation is the chosen move alone.
type Result struct {
	BestMoveUCI        string
	Score              string
	PrincipalVariation string
}

// rankedMove is one entry of a depth's ranked root-move list, used for the
// skill-level blunder substitution.
type rankedMove struct {
	move  board.Move
	score int
}

// Engine ties together the transposition table, opening book, and searcher
// behind the single entry point the rest of the application calls.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher
	book     *book.Book
}

// NewEngine creates an engine with a transposition table sized ttSizeMB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	return &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
}

// LoadBook loads a Polyglot-format opening book from filename. A missing
// or unreadable file is not fatal: the engine falls through to search, as
// the contract requires.
func (e *Engine) LoadBook(filename string) error {
	b, err := book.LoadPolyglot(filename)
	if err != nil {
		return err
	}
	e.book = b
	return nil
}

// SetBook installs an already-loaded book, or clears it when b is nil.
func (e *Engine) SetBook(b *book.Book) {
	e.book = b
}

// HasBook reports whether an opening book is loaded.
func (e *Engine) HasBook() bool {
	return e.book != nil
}

// Clear resets the transposition table. Callers must serialize this call
// against any in-flight search.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// skillParams maps a skill level in [0, 20] to a target search depth and a
// blunder probability, per the skill-mapping table.
func skillParams(skillLevel, callerMaxDepth int) (targetDepth int, blunderChance float64) {
	switch {
	case skillLevel < 5:
		return 2, 0.30
	case skillLevel < 10:
		return 3, 0.15
	case skillLevel < 15:
		return 4, 0.05
	default:
		return callerMaxDepth, 0.00
	}
}

// FindBestMove is the engine's only external interface. It searches pos to
// at most maxDepth plies within timeLimit seconds, adjusting depth and
// blunder probability by skillLevel, and returns the best move found.
func (e *Engine) FindBestMove(pos *board.Position, maxDepth int, timeLimit float64, skillLevel int) Result {
	legalMoves := pos.GenerateLegalMoves()

	if legalMoves.Len() == 0 {
		return Result{BestMoveUCI: "", Score: "Game Over", PrincipalVariation: ""}
	}
	if legalMoves.Len() == 1 {
		only := legalMoves.Get(0)
		return Result{BestMoveUCI: only.String(), Score: "Forced", PrincipalVariation: only.String()}
	}

	if skillLevel > 5 && e.book != nil {
		if move, found := e.book.Probe(pos); found {
			return Result{BestMoveUCI: move.String(), Score: "+0.25", PrincipalVariation: "Opening Theory"}
		}
	}

	targetDepth, blunderChance := skillParams(skillLevel, maxDepth)

	deadline := time.Now().Add(time.Duration(timeLimit * float64(time.Second)))

	var bestMove board.Move
	bestScore := 0
	var lastCompletedRanking []rankedMove

	for depth := 1; depth <= targetDepth; depth++ {
		if time.Now().After(deadline) {
			break
		}

		ranking, move, score, completed := e.searchRoot(pos, legalMoves, depth, deadline)
		if !completed {
			break
		}

		lastCompletedRanking = ranking
		bestMove = move
		bestScore = score

		hoistToFront(legalMoves, bestMove)

		if abs(bestScore) > MateScore-1000 {
			break
		}
	}

	if bestMove == board.NoMove && len(lastCompletedRanking) == 0 {
		// Time ran out before depth 1 completed; fall back to a depth-1
		// search with no time limit so a legal move is always returned.
		ranking, move, score, _ := e.searchRoot(pos, legalMoves, 1, time.Time{})
		lastCompletedRanking = ranking
		bestMove = move
		bestScore = score
	}

	if skillLevel < 15 && len(lastCompletedRanking) > 1 {
		if rand.Float64() < blunderChance {
			top := len(lastCompletedRanking) - 1
			if top > 3 {
				top = 3
			}
			idx := 1 + rand.Intn(top)
			bestMove = lastCompletedRanking[idx].move
			bestScore = lastCompletedRanking[idx].score
		}
	}

	scoreString := formatScore(bestScore, pos.SideToMove)

	return Result{
		BestMoveUCI:        bestMove.String(),
		Score:              scoreString,
		PrincipalVariation: bestMove.String(),
	}
}

// searchRoot runs one root-level negamax pass over moves at the given
// depth, returning the (move, score) list, the best move and score, and
// whether the depth completed before the deadline. On a completed depth the
// list is ranked by score, best first; on a timeout it is in search order.
func (e *Engine) searchRoot(pos *board.Position, moves *board.MoveList, depth int, deadline time.Time) ([]rankedMove, board.Move, int, bool) {
	e.tt.NewSearch()

	alpha, beta := -Infinity, Infinity
	bestMove := board.NoMove
	bestScore := -Infinity
	ranking := make([]rankedMove, 0, moves.Len())

	work := pos.Copy()
	searcher := e.searcher

	for i := 0; i < moves.Len(); i++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ranking, bestMove, bestScore, false
		}

		move := moves.Get(i)
		undo := work.MakeMove(move)
		if !undo.Valid {
			continue
		}

		searcher.pos = work
		searcher.Reset()
		score := -searcher.negamax(depth-1, 1, -beta, -alpha)

		work.UnmakeMove(move, undo)

		ranking = append(ranking, rankedMove{move: move, score: score})

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].score > ranking[j].score
	})

	return ranking, bestMove, bestScore, true
}

// hoistToFront moves m to the front of moves, if present, so the next
// depth's root loop searches last depth's best move first.
func hoistToFront(moves *board.MoveList, m board.Move) {
	if m == board.NoMove {
		return
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == m {
			for j := i; j > 0; j-- {
				moves.Swap(j, j-1)
			}
			return
		}
	}
}

// abs returns the absolute value of an int.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// formatScore renders a raw engine score as a signed string from White's
// perspective, following the mate-distance arithmetic of the encoding this
// engine's scores use: score_adjustment = MATE_SCORE - |score|,
// real_mate_in_plies = max(1, 100 - score_adjustment), mate_in_moves =
// (real_mate_in_plies + 1) / 2.
func formatScore(score int, sideToMove board.Color) string {
	viewerScore := score
	if sideToMove == board.Black {
		viewerScore = -score
	}

	if abs(viewerScore) > MateScore-1000 {
		scoreAdjustment := MateScore - abs(viewerScore)
		realMateInPlies := 100 - scoreAdjustment
		if realMateInPlies < 1 {
			realMateInPlies = 1
		}
		mateInMoves := (realMateInPlies + 1) / 2

		if viewerScore > 0 {
			return fmt.Sprintf("+M%d", mateInMoves)
		}
		return fmt.Sprintf("-M%d", mateInMoves)
	}

	sign := "+"
	if viewerScore < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.2f", sign, float64(abs(viewerScore))/100)
}
