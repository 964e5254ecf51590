// Command blockfall is a terminal Tetris. Run it with no arguments to play;
// press q to quit.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"blockfall/cmd/blockfall/ui"
	"blockfall/internal/config"
	"blockfall/internal/logging"
	"blockfall/internal/score"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is stamped by the build; "dev" for local builds.
var version = "dev"

var (
	// Global flags
	cfgPath     string
	boardWidth  int
	boardHeight int
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "blockfall - Tetris for your terminal",
	Long: `blockfall is a terminal Tetris.

Arrow keys move and rotate, space hard-drops, p pauses and q quits.
High scores are kept in a local SQLite database; see 'blockfall scores'.
Settings live in a YAML config file (see --config).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("width") {
			cfg.Board.Width = boardWidth
		}
		if cmd.Flags().Changed("height") {
			cfg.Board.Height = boardHeight
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGame,
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the high-score table",
	RunE:  runScores,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blockfall version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blockfall %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug logs")
	rootCmd.Flags().IntVar(&boardWidth, "width", 0, "board width in cells (overrides config)")
	rootCmd.Flags().IntVar(&boardHeight, "height", 0, "board height in cells (overrides config)")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	// The score store is best-effort: play works without it.
	store, err := score.NewStore(cfg.Scores.DatabasePath)
	if err != nil {
		logger.Warn("score store unavailable", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	model, err := ui.NewModel(cfg, logger, store)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if m, ok := final.(ui.Model); ok {
		fmt.Println(m.Summary())
	}
	return nil
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := score.NewStore(cfg.Scores.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	records, err := store.Top(ctx, cfg.Scores.Keep)
	if err != nil {
		return err
	}
	fmt.Print(formatScores(records))
	return nil
}

// formatScores renders the table printed by the scores subcommand.
func formatScores(records []score.Record) string {
	if len(records) == 0 {
		return "No games recorded yet.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-12s %8s %6s %6s %10s  %s\n",
		"#", "Player", "Score", "Lines", "Level", "Duration", "Played"))
	for i, r := range records {
		player := r.Player
		if player == "" {
			player = "anonymous"
		}
		sb.WriteString(fmt.Sprintf("%-4d %-12s %8d %6d %6d %10s  %s\n",
			i+1, player, r.Score, r.Lines, r.Level,
			r.Duration.Round(time.Second),
			r.StartedAt.Local().Format("2006-01-02 15:04")))
	}
	return sb.String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
