package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sudoku_play_go/internal/db"
	"sudoku_play_go/internal/game"
	"sudoku_play_go/internal/grid"
	"sudoku_play_go/internal/visualizer"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "sudoku",
		Short: "Play and generate variable-size sudoku puzzles",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newPlayCmd(), newGenCmd(), newGetCmd(), newListCmd())
	return root
}

func newPlayCmd() *cobra.Command {
	var (
		size    int
		seed    int64
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.NewSeeded(size, rngFor(seed))
			if g.Side() != size {
				fmt.Printf("Not a perfect square, using %d instead\n", g.Side())
			}

			// Saving is optional: the game runs fine without a store.
			var saver game.Saver
			if cfg := db.LoadConfig(); cfg.Configured() {
				store, err := db.New(cfg, log)
				if err != nil {
					log.WithError(err).Warn("puzzle store unavailable, saving disabled")
				} else {
					saver = store
				}
			}

			return game.New(g, os.Stdin, os.Stdout, log, saver, useColor(noColor)).Run()
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 9, "Board size (coerced to the nearest perfect square)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 means time-based)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	return cmd
}

func newGenCmd() *cobra.Command {
	var (
		size    int
		number  int
		seed    int64
		upload  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate puzzles and print them with their solutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var store *db.Store
			if upload {
				s, err := db.New(db.LoadConfig(), log)
				if err != nil {
					return err
				}
				store = s
			}

			rng := rngFor(seed)
			color := useColor(noColor)

			for i := 0; i < number; i++ {
				g := grid.NewSeeded(size, rng)
				vis := visualizer.New(g, color)

				fmt.Printf("Puzzle #%d (%dx%d):\n", i+1, g.Side(), g.Side())
				fmt.Print(vis.Board())
				fmt.Println("\nSolution:")
				fmt.Print(vis.Solved())
				fmt.Println()

				if store != nil {
					id, err := store.Save(g)
					if err != nil {
						return err
					}
					fmt.Printf("Uploaded as %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 9, "Board size (coerced to the nearest perfect square)")
	cmd.Flags().IntVarP(&number, "number", "n", 1, "Number of puzzles to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 means time-based)")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload generated puzzles to PocketBase")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	return cmd
}

func newGetCmd() *cobra.Command {
	var solution bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a stored puzzle and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := db.New(db.LoadConfig(), log)
			if err != nil {
				return err
			}

			data, err := store.Get(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Puzzle %s (%dx%d):\n", args[0], data.Size, data.Size)
			printMatrix(data.Puzzle)
			if solution {
				fmt.Println("\nSolution:")
				printMatrix(data.Solution)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&solution, "solution", false, "Also print the solution")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		page    int
		perPage int
		size    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored puzzles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := db.New(db.LoadConfig(), log)
			if err != nil {
				return err
			}

			result, err := store.List(page, perPage, size)
			if err != nil {
				return err
			}

			fmt.Printf("Page %d/%d (%d puzzles total)\n",
				result.Page, result.TotalPages, result.TotalItems)
			for _, item := range result.Items {
				fmt.Printf("  %v  size %v  givens %v  created %v\n",
					item["id"], item["size"], item["givens"], item["created"])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Result page")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "Results per page")
	cmd.Flags().IntVar(&size, "size", 0, "Filter by board size (0 means all sizes)")
	return cmd
}

func printMatrix(m [][]int) {
	for _, row := range m {
		for _, v := range row {
			if v == 0 {
				fmt.Print(" · ")
			} else {
				fmt.Printf("%2d ", v)
			}
		}
		fmt.Println()
	}
}

func rngFor(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func useColor(noColor bool) bool {
	return !noColor && term.IsTerminal(int(os.Stdout.Fd()))
}
