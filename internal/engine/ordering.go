package engine

import (
	"github.com/chesstutor/engine/internal/board"
)

// Move ordering score bands, in descending priority.
const (
	queenPromotionScore = 2000
	promotionScore      = 1000
	captureBase         = 1000
	checkBonus          = 500
)

// MoveOrderer ranks moves for alpha-beta efficiency. It carries no
// per-search state: ordering is a pure function of the position and the
// move, per queen-promotion/other-promotion bonus, MVV-LVA for captures,
// a check bonus, and a piece-square-table delta for pawns and minor
// pieces. The TT's hinted move is hoisted ahead of this scoring by the
// caller rather than scored here.
type MoveOrderer struct{}

// NewMoveOrderer creates a move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i))
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move) int {
	if m.IsPromotion() {
		if m.Promotion() == board.Queen {
			return queenPromotionScore
		}
		return promotionScore
	}

	score := 0

	if m.IsCapture(pos) {
		var victimValue int
		if m.IsEnPassant() {
			victimValue = PawnValue
		} else if captured := pos.PieceAt(m.To()); captured != board.NoPiece {
			victimValue = pieceValues[captured.Type()]
		}
		attackerValue := 0
		if attacker := pos.PieceAt(m.From()); attacker != board.NoPiece {
			attackerValue = pieceValues[attacker.Type()]
		}
		score += captureBase + 10*victimValue - attackerValue
	}

	if givesCheck(pos, m) {
		score += checkBonus
	}

	if piece := pos.PieceAt(m.From()); piece != board.NoPiece {
		if table := pstDeltaTable(piece.Type()); table != nil {
			score += pstValue(m.To(), pos.SideToMove, table) - pstValue(m.From(), pos.SideToMove, table)
		}
	}

	return score
}

// pstDeltaTable returns the piece-square table used for move-ordering
// deltas. Only pawns, knights, and bishops contribute this term.
func pstDeltaTable(pt board.PieceType) *[64]int {
	switch pt {
	case board.Pawn:
		return &pawnTable
	case board.Knight:
		return &knightTable
	case board.Bishop:
		return &bishopTable
	}
	return nil
}

// givesCheck reports whether applying m leaves the opponent in check. It
// makes and immediately unmakes the move, mirroring the legality check
// already used by move generation.
func givesCheck(pos *board.Position, m board.Move) bool {
	undo := pos.MakeMove(m)
	check := pos.InCheck()
	pos.UnmakeMove(m, undo)
	return check
}

// SortMoves sorts moves by score, descending. Selection sort is sufficient
// for the handful of dozens of moves a chess position produces.
func SortMoves(moves *board.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best-scoring move at or after index and swaps it
// into index, letting callers sort lazily: only as many picks happen as
// moves actually get searched before a cutoff.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// HoistMove moves m to the front of the list, if present, so the TT's
// hinted best move is always searched first regardless of its score.
func HoistMove(moves *board.MoveList, scores []int, m board.Move) {
	if m == board.NoMove {
		return
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == m {
			for j := i; j > 0; j-- {
				moves.Swap(j, j-1)
				scores[j], scores[j-1] = scores[j-1], scores[j]
			}
			return
		}
	}
}
