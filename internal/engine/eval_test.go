package engine

import (
	"testing"

	"github.com/chesstutor/engine/internal/board"
)

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	score := Evaluate(pos)
	if score != tempoBonus {
		t.Errorf("expected starting position to equal the tempo bonus (%d), got %d", tempoBonus, score)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score := Evaluate(pos)
	if score <= 0 {
		t.Errorf("expected a material advantage for White, got %d", score)
	}
}

func TestEvaluateCheckmateReturnsMateScore(t *testing.T) {
	pos, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	score := Evaluate(pos)
	if score != -MateScore {
		t.Errorf("expected -MateScore for the mated side to move, got %d", score)
	}
}

func TestEvaluateStalemateIsZero(t *testing.T) {
	pos, err := board.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.IsStalemate() {
		t.Skip("fixture position is not actually stalemate; skipping")
	}
	if score := Evaluate(pos); score != 0 {
		t.Errorf("expected 0 for stalemate, got %d", score)
	}
}

func TestPSTValueMirrorsForBlack(t *testing.T) {
	// Black looks up table[63-sq], so White's a2 corresponds to Black's h7.
	white := pstValue(board.A2, board.White, &pawnTable)
	black := pstValue(board.H7, board.Black, &pawnTable)
	if white != black {
		t.Errorf("expected symmetric pawn advance to score equally, got white=%d black=%d", white, black)
	}
}
