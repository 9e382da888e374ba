package engine

import (
	"strings"
	"testing"

	"github.com/chesstutor/engine/internal/board"
)

func TestFindBestMoveForcedMove(t *testing.T) {
	// White king in the corner with exactly one legal move: Ka1-a2 (the
	// black rook on b8 covers b1 and b2).
	pos, err := board.ParseFEN("1r5k/8/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	eng := NewEngine(1)
	result := eng.FindBestMove(pos, 4, 1.0, 20)

	if result.Score != "Forced" {
		t.Errorf("expected Forced, got %q (move %q)", result.Score, result.BestMoveUCI)
	}
	if result.BestMoveUCI == "" {
		t.Error("expected a move, got empty string")
	}
}

func TestFindBestMoveGameOver(t *testing.T) {
	// Fool's mate: White to move is checkmated.
	pos, err := board.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	eng := NewEngine(1)
	result := eng.FindBestMove(pos, 4, 1.0, 20)

	if result.Score != "Game Over" {
		t.Errorf("expected Game Over, got %q", result.Score)
	}
	if result.BestMoveUCI != "" {
		t.Errorf("expected no move, got %q", result.BestMoveUCI)
	}
}

func TestFindBestMoveFindsMateInOne(t *testing.T) {
	// White to move, back-rank mate in one: Re1-e8#.
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	eng := NewEngine(1)
	result := eng.FindBestMove(pos, 4, 5.0, 20)

	if result.Score != "+M1" {
		t.Errorf("expected +M1, got %q (move %q)", result.Score, result.BestMoveUCI)
	}
}

func TestFormatScoreNonMate(t *testing.T) {
	cases := []struct {
		score int
		side  board.Color
		want  string
	}{
		{150, board.White, "+1.50"},
		{-150, board.White, "-1.50"},
		{150, board.Black, "-1.50"},
		{0, board.White, "+0.00"},
	}
	for _, c := range cases {
		got := formatScore(c.score, c.side)
		if got != c.want {
			t.Errorf("formatScore(%d, %v) = %q, want %q", c.score, c.side, got, c.want)
		}
	}
}

func TestFormatScoreMate(t *testing.T) {
	// Any score inside the mate band (|score| > MateScore-1000) formats as a
	// mate string signed for the winning side. MateScore-1 decodes to 99
	// plies under the encoding, so it formats as "+M50".
	score := MateScore - 1
	got := formatScore(score, board.White)
	if !strings.HasPrefix(got, "+M") {
		t.Errorf("expected mate-for-white string, got %q", got)
	}

	got = formatScore(-score, board.White)
	if !strings.HasPrefix(got, "-M") {
		t.Errorf("expected mate-against-white string, got %q", got)
	}
}

func TestSkillParams(t *testing.T) {
	cases := []struct {
		skill     int
		wantDepth int
		wantBlund float64
	}{
		{0, 2, 0.30},
		{4, 2, 0.30},
		{5, 3, 0.15},
		{9, 3, 0.15},
		{10, 4, 0.05},
		{14, 4, 0.05},
		{15, 8, 0.00},
		{20, 8, 0.00},
	}
	for _, c := range cases {
		depth, blunder := skillParams(c.skill, 8)
		if depth != c.wantDepth || blunder != c.wantBlund {
			t.Errorf("skillParams(%d) = (%d, %v), want (%d, %v)", c.skill, depth, blunder, c.wantDepth, c.wantBlund)
		}
	}
}

func TestEngineClear(t *testing.T) {
	eng := NewEngine(1)
	pos := board.NewPosition()
	eng.FindBestMove(pos, 3, 1.0, 20)
	eng.Clear()
}
