// planechess-cli inspects positions from the command line: apply moves,
// print or diagram the result, enumerate legal moves, and run perft.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"strings"

	"github.com/tidegear/planechess/internal/board"
	"github.com/tidegear/planechess/internal/diagram"
	"github.com/tidegear/planechess/internal/storage"
)

var (
	fen        = flag.String("fen", "", "starting position in FEN (default: the standard start)")
	moves      = flag.String("moves", "", "comma-separated coordinate moves to apply, e.g. e2e4,e7e5")
	boundless  = flag.Bool("boundless", false, "lift the board extent before applying moves")
	show       = flag.Bool("show", false, "print the resulting board")
	legal      = flag.Bool("legal", false, "list legal moves in the resulting position")
	perftDepth = flag.Int("perft", 0, "count move paths to the given depth")
	svgFile    = flag.String("svg", "", "write an SVG diagram of the resulting position to this file")
	stats      = flag.Bool("stats", false, "print stored game statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("planechess-cli: ")
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	state := startingState()
	state = applyMoves(state, *moves)

	printed := false

	if *show {
		printBoard(state)
		printed = true
	}

	if *legal {
		printLegalMoves(state)
		printed = true
	}

	if *perftDepth > 0 {
		printPerft(state, *perftDepth)
		printed = true
	}

	if *svgFile != "" {
		writeDiagram(state, *svgFile)
		printed = true
	}

	if *stats {
		printStats()
		printed = true
	}

	// With nothing else asked for, showing the position is the useful
	// default.
	if !printed {
		printBoard(state)
	}
}

func startingState() *board.State {
	s := board.DefaultState()
	if *fen != "" {
		var err error
		s, err = board.ParseFEN(*fen)
		if err != nil {
			log.Fatalf("bad -fen: %v", err)
		}
	}
	if *boundless {
		s = s.WithExtent(nil)
	}
	return s
}

func applyMoves(s *board.State, list string) *board.State {
	for _, text := range strings.Split(list, ",") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		m, err := board.ParseMove(text, s)
		if err != nil {
			log.Fatalf("bad move %q: %v", text, err)
		}
		if !m.IsLegal(s) {
			log.Fatalf("illegal move %q for %v", text, s.ToMove())
		}
		s = s.MakeMove(m)
	}
	return s
}

func printBoard(s *board.State) {
	fmt.Print(s.Describe())
	if _, ok := s.Extent(); ok {
		fmt.Printf("FEN: %s\n", s.ToFEN())
	}
	fmt.Printf("%v to move, %d plies played\n", s.ToMove(), s.MoveCount())
}

func printLegalMoves(s *board.State) {
	legal := s.LegalMoves()
	notations := make([]string, len(legal))
	for i := range legal {
		notations[i] = legal[i].String()
	}
	sort.Strings(notations)
	for _, n := range notations {
		fmt.Println(n)
	}
	fmt.Printf("%d legal moves\n", len(legal))
}

func printPerft(s *board.State, depth int) {
	counts, total := board.PerftDivide(s, depth)
	roots := make([]string, 0, len(counts))
	for root := range counts {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	for _, root := range roots {
		fmt.Printf("%s: %d\n", root, counts[root])
	}
	fmt.Printf("perft(%d) = %d\n", depth, total)
}

func writeDiagram(s *board.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("could not create %s: %v", path, err)
	}
	defer f.Close()

	opts := diagram.Options{Coordinates: true, LastMove: true}
	if err := diagram.Write(f, s, opts); err != nil {
		log.Fatalf("could not render diagram: %v", err)
	}
	log.Printf("diagram written to %s", path)
}

func printStats() {
	store, err := storage.NewStorage()
	if err != nil {
		log.Fatalf("could not open storage: %v", err)
	}
	defer store.Close()

	gs, err := store.LoadStats()
	if err != nil {
		log.Fatalf("could not load statistics: %v", err)
	}
	if gs.GamesPlayed == 0 {
		fmt.Println("no games recorded")
		return
	}
	fmt.Printf("games played:  %d\n", gs.GamesPlayed)
	fmt.Printf("white wins:    %d\n", gs.WhiteWins)
	fmt.Printf("black wins:    %d\n", gs.BlackWins)
	fmt.Printf("draws:         %d\n", gs.Draws)
	fmt.Printf("average plies: %.1f\n", gs.AveragePlies())
	fmt.Printf("decisive rate: %.0f%%\n", gs.DecisiveRate())
}
