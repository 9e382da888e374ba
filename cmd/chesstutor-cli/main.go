// Command chesstutor-cli runs a single find-best-move search against a
// FEN position and prints the result. It is a thin harness around the
// engine's one exported entry point, not a UCI or protocol server.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/chesstutor/engine/internal/board"
	"github.com/chesstutor/engine/internal/engine"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN of the position to search")
	depth := flag.Int("depth", 6, "maximum search depth in plies")
	timeLimit := flag.Float64("time", 5.0, "search time budget in seconds")
	skillLevel := flag.Int("skill", 20, "skill level, 0-20 (20 is full strength)")
	ttSizeMB := flag.Int("hash", 64, "transposition table size in MB")
	bookPath := flag.String("book", "", "path to a Polyglot opening book (optional)")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN %q: %v", *fen, err)
	}
	log.Printf("searching position %s", pos.ToFEN())

	eng := engine.NewEngine(*ttSizeMB)
	if *bookPath != "" {
		if err := eng.LoadBook(*bookPath); err != nil {
			log.Printf("opening book %q not loaded: %v", *bookPath, err)
		}
	}

	result := eng.FindBestMove(pos, *depth, *timeLimit, *skillLevel)

	os.Stdout.WriteString(result.BestMoveUCI + " " + result.Score + " " + result.PrincipalVariation + "\n")
}
