package engine

import (
	"sync/atomic"

	"github.com/chesstutor/engine/internal/board"
)

// Search constants. MateScore matches the mate-scoring convention used
// throughout the engine and by the root controller's score formatting;
// Infinity must exceed it so alpha-beta windows can always bracket a mate
// score.
const (
	Infinity  = 1000000
	MateScore = 100000
	MaxPly    = 128
)

// PVTable stores the principal variation.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs a single-threaded alpha-beta search from a fixed
// position. Mate scores are stored and returned raw: the checkmate branch
// below scores a forced mate as -MateScore + (100 - depth), where depth is
// the remaining-depth parameter passed into that call, not a ply-from-root
// count. This is a known quirk of the original scoring convention that the
// root controller's score formatting (see root.go) assumes and preserves.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	undoStack [MaxPly]board.UndoInfo
}

// NewSearcher creates a new searcher backed by tt.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Stop signals the search to stop at its next node-count check.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset clears per-search state ahead of a new call to Search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs a fixed-depth negamax search from pos and returns the best
// move found along with its score, from pos's side-to-move perspective.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.Reset()

	score := s.negamax(depth, 0, -Infinity, Infinity)

	var bestMove board.Move
	if s.pv.length[0] > 0 {
		bestMove = s.pv.moves[0][0]
	}

	return bestMove, score
}

// negamax implements alpha-beta-pruned negamax with transposition-table
// probing, then the terminal (checkmate/stalemate) check, then the
// horizon check that hands off to quiescence search. The terminal check
// must run before the horizon check: a depth-0 node that is actually
// checkmate has to return the ply-adjusted mate score here, not fall
// through to quiescence's flat evaluate().
func (s *Searcher) negamax(depth, ply int, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopFlag.Load() {
		return 0
	}

	s.nodes++
	s.pv.length[ply] = ply

	if ply > 0 && s.isDraw() {
		return 0
	}

	var ttMove board.Move
	ttEntry, found := s.tt.Probe(s.pos.Hash)
	if found {
		ttMove = ttEntry.BestMove
		if int(ttEntry.Depth) >= depth {
			score := int(ttEntry.Score)
			switch ttEntry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	inCheck := s.pos.InCheck()

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + (100 - depth)
		}
		return 0
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	scores := s.orderer.ScoreMoves(s.pos, moves)
	HoistMove(moves, scores, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.undoStack[ply] = s.pos.MakeMove(move)
		if !s.undoStack[ply].Valid {
			continue
		}

		score := -s.negamax(depth-1, ply+1, -beta, -alpha)

		s.pos.UnmakeMove(move, s.undoStack[ply])

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = TTExact

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			s.tt.Store(s.pos.Hash, depth, score, TTLowerBound, bestMove)
			return score
		}
	}

	s.tt.Store(s.pos.Hash, depth, bestScore, flag, bestMove)

	return bestScore
}

// quiescence extends the search along captures and promotions only, to
// avoid misjudging positions that are mid-exchange at the horizon.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	const maxQuiescencePly = 32
	if ply >= MaxPly || ply > maxQuiescencePly {
		return Evaluate(s.pos)
	}

	if s.stopFlag.Load() {
		return 0
	}

	s.nodes++

	standPat := Evaluate(s.pos)

	if standPat >= beta {
		return beta
	}

	if standPat > alpha {
		alpha = standPat
	}

	bigDelta := QueenValue
	if standPat+bigDelta < alpha {
		return alpha
	}

	moves := s.pos.GenerateCaptures()
	scores := s.orderer.ScoreMoves(s.pos, moves)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if !s.pos.InCheck() {
			var captureValue int
			if move.IsEnPassant() {
				captureValue = PawnValue
			} else if captured := s.pos.PieceAt(move.To()); captured != board.NoPiece {
				captureValue = pieceValues[captured.Type()]
			}
			if move.IsPromotion() {
				captureValue += QueenValue - PawnValue
			}
			if standPat+captureValue+200 < alpha {
				continue
			}
		}

		undo := s.pos.MakeMove(move)
		if !undo.Valid {
			continue
		}

		score := -s.quiescence(ply+1, -beta, -alpha)

		s.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}

		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// isDraw reports the 50-move rule and insufficient material. Threefold
// repetition is not detected: neither the searcher nor the root controller
// keeps a history of visited positions.
func (s *Searcher) isDraw() bool {
	if s.pos.HalfMoveClock >= 100 {
		return true
	}
	if s.pos.IsInsufficientMaterial() {
		return true
	}
	return false
}

// GetPV returns the principal variation from the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	for i := 0; i < s.pv.length[0]; i++ {
		pv[i] = s.pv.moves[0][i]
	}
	return pv
}
