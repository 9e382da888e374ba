package engine

import (
	"testing"

	"github.com/chesstutor/engine/internal/board"
)

func TestTranspositionStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()

	if _, found := tt.Probe(pos.Hash); found {
		t.Fatal("expected miss on empty table")
	}

	move := board.NewMove(board.E2, board.E4)
	tt.Store(pos.Hash, 5, 123, TTExact, move)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected hit after store")
	}
	if entry.Score != 123 {
		t.Errorf("expected score 123, got %d", entry.Score)
	}
	if entry.BestMove != move {
		t.Errorf("expected move %s, got %s", move, entry.BestMove)
	}
	if entry.Flag != TTExact {
		t.Errorf("expected TTExact, got %v", entry.Flag)
	}
}

func TestTranspositionStoresMateScoresRaw(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()

	tt.Store(pos.Hash, 3, MateScore-1, TTExact, board.NoMove)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected hit after store")
	}
	if entry.Score != MateScore-1 {
		t.Errorf("expected raw mate score %d, got %d", MateScore-1, entry.Score)
	}
}

func TestTranspositionReplacementPrefersDeeper(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()

	tt.Store(pos.Hash, 5, 100, TTExact, board.NoMove)
	tt.Store(pos.Hash, 2, 200, TTExact, board.NoMove)

	entry, _ := tt.Probe(pos.Hash)
	if entry.Score != 100 {
		t.Errorf("expected shallower store to be rejected, got score %d", entry.Score)
	}

	tt.NewSearch()
	tt.Store(pos.Hash, 1, 300, TTExact, board.NoMove)
	entry, _ = tt.Probe(pos.Hash)
	if entry.Score != 300 {
		t.Errorf("expected new-generation store to replace regardless of depth, got %d", entry.Score)
	}
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()
	tt.Store(pos.Hash, 5, 100, TTExact, board.NoMove)

	tt.Clear()

	if _, found := tt.Probe(pos.Hash); found {
		t.Fatal("expected miss after clear")
	}
}
