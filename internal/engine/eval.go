// Package engine implements the chess search engine: static evaluation,
// move ordering, the transposition table, quiescence and negamax search,
// and the root controller that ties them together.
package engine

import (
	"github.com/chesstutor/engine/internal/board"
)

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// pieceValues indexes by board.PieceType for quick lookup.
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// tempoBonus rewards the side to move before the Negamax sign flip.
const tempoBonus = 20

// Piece-square tables, indexed a1..h8 (White's point of view). Black looks
// up the mirrored square table[63-sq] rather than using a separate table.
var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	4, 4, -24, -30, -30, 8, 8, 8,
	12, 8, 0, -10, -10, 0, 4, 6,
	8, 14, 12, 20, 20, 8, 6, 4,
	10, 16, 16, 30, 30, 12, 10, 8,
	20, 40, 40, 60, 60, 40, 40, 20,
	40, 60, 60, 80, 80, 60, 60, 40,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	0, -10, 12, 12, 12, 12, -10, 0,
	6, 12, 24, 30, 26, 24, 12, 6,
	12, 24, 30, 36, 36, 38, 24, 12,
	12, 24, 36, 40, 40, 36, 24, 12,
	12, 24, 36, 42, 42, 36, 24, 12,
	12, 24, 36, 40, 40, 36, 24, 12,
	6, 12, 24, 36, 36, 24, 12, 6,
	0, 6, 12, 12, 12, 12, 6, 0,
}

var bishopTable = [64]int{
	6, 0, 0, 0, 0, 0, 0, 6,
	10, 30, 12, 12, 12, 12, 30, 10,
	0, 20, 30, 12, 12, 30, 20, 0,
	16, 12, 32, 32, 32, 32, 12, 16,
	0, 30, 24, 32, 32, 24, 30, 0,
	0, 12, 30, 24, 24, 30, 12, 0,
	0, 18, 20, 20, 20, 20, 18, 0,
	6, 0, 0, 0, 0, 0, 0, 6,
}

var rookTable = [64]int{
	6, 10, 12, 14, 14, 12, 10, 6,
	8, 10, 10, 16, 16, 10, 10, 8,
	6, 8, 10, 12, 12, 10, 8, 6,
	4, 6, 8, 10, 10, 8, 6, 4,
	4, 6, 8, 10, 10, 8, 6, 4,
	6, 8, 10, 12, 12, 10, 8, 6,
	20, 20, 20, 20, 20, 20, 20, 20,
	18, 18, 18, 18, 18, 18, 18, 18,
}

var queenTable = [64]int{
	14, 14, 14, 14, 14, 14, 14, 14,
	14, 16, 16, 16, 16, 16, 16, 14,
	14, 16, 18, 18, 18, 18, 16, 14,
	14, 16, 18, 18, 18, 18, 16, 14,
	16, 18, 20, 20, 20, 20, 18, 16,
	16, 18, 20, 20, 20, 20, 18, 16,
	18, 20, 20, 20, 20, 20, 20, 18,
	18, 18, 18, 18, 18, 18, 18, 18,
}

var kingTable = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -30, -30, -30, -30, -30, -30, -30,
	-20, -20, -20, -20, -20, -20, -20, -20,
	-10, 0, 20, 20, 20, 20, 0, -10,
	-10, 0, 20, 40, 40, 20, 0, -10,
	-10, 0, 20, 20, 20, 20, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, -10, -10, -10, -10, -10, -10, -10,
}

// pstFor returns the piece-square table for a piece type.
func pstFor(pt board.PieceType) *[64]int {
	switch pt {
	case board.Pawn:
		return &pawnTable
	case board.Knight:
		return &knightTable
	case board.Bishop:
		return &bishopTable
	case board.Rook:
		return &rookTable
	case board.Queen:
		return &queenTable
	case board.King:
		return &kingTable
	}
	return nil
}

// pstValue looks up a square's table value for a color, mirroring Black's
// perspective with table[63-sq].
func pstValue(sq board.Square, c board.Color, table *[64]int) int {
	if c == board.White {
		return table[sq]
	}
	return table[63-sq]
}

// Evaluate returns the static score of pos from the side-to-move's
// perspective: positive favors the side to move.
func Evaluate(pos *board.Position) int {
	if pos.InCheck() && !pos.HasLegalMoves() {
		return -MateScore
	}
	if pos.IsStalemate() || pos.IsInsufficientMaterial() || pos.HalfMoveClock >= 100 {
		return 0
	}

	score := 0

	for pt := board.Pawn; pt <= board.King; pt++ {
		value := pieceValues[pt]
		score += value * (pos.Pieces[board.White][pt].PopCount() - pos.Pieces[board.Black][pt].PopCount())
	}

	for pt := board.Pawn; pt <= board.King; pt++ {
		table := pstFor(pt)

		bb := pos.Pieces[board.White][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			score += pstValue(sq, board.White, table)
		}

		bb = pos.Pieces[board.Black][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			score -= pstValue(sq, board.Black, table)
		}
	}

	if pos.SideToMove == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}

	if pos.SideToMove == board.Black {
		score = -score
	}

	return score
}
