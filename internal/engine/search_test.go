package engine

import (
	"testing"

	"github.com/chesstutor/engine/internal/board"
)

func TestSearcherFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/4R2K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	tt := NewTranspositionTable(1)
	searcher := NewSearcher(tt)

	move, score := searcher.Search(pos, 2)

	if move.From() != board.E1 || move.To() != board.E8 {
		t.Errorf("expected Re8, got %s", move)
	}
	if abs(score) <= MateScore-1000 {
		t.Errorf("expected a mate score, got %d", score)
	}
}

func TestSearcherAvoidsStalemate(t *testing.T) {
	// White to move; Kb6 stalemates black (the rook on b1 covers b7 and b8),
	// no other move does.
	pos, err := board.ParseFEN("k7/8/8/2K5/8/8/8/1R6 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	tt := NewTranspositionTable(1)
	searcher := NewSearcher(tt)

	move, _ := searcher.Search(pos, 1)
	if move == board.NoMove {
		t.Fatal("expected a move to be returned")
	}
	if move.From() == board.C5 && move.To() == board.B6 {
		t.Errorf("expected the search to avoid the stalemating Kb6, got %s", move)
	}
}

func TestSearcherNodesIncreaseWithDepth(t *testing.T) {
	pos := board.NewPosition()

	tt := NewTranspositionTable(4)
	searcher := NewSearcher(tt)

	_, _ = searcher.Search(pos, 1)
	shallow := searcher.Nodes()

	tt.Clear()
	searcher2 := NewSearcher(tt)
	_, _ = searcher2.Search(pos, 3)
	deep := searcher2.Nodes()

	if deep <= shallow {
		t.Errorf("expected deeper search to visit more nodes: depth1=%d depth3=%d", shallow, deep)
	}
}

func TestIsDrawFiftyMoveRule(t *testing.T) {
	pos, err := board.ParseFEN("7k/8/8/8/8/8/6K1/8 w - - 100 60")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	tt := NewTranspositionTable(1)
	searcher := NewSearcher(tt)
	searcher.pos = pos

	if !searcher.isDraw() {
		t.Error("expected fifty-move rule to be detected as a draw")
	}
}

func TestQuiescenceStandPatUsesEvaluate(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(1)
	searcher := NewSearcher(tt)
	searcher.pos = pos
	searcher.Reset()

	score := searcher.quiescence(0, -Infinity, Infinity)
	direct := Evaluate(pos)

	// With no captures available from the start position, quiescence
	// should settle on (at least) the stand-pat evaluation.
	if score < direct {
		t.Errorf("expected quiescence score >= stand pat eval, got %d < %d", score, direct)
	}
}
