package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/tui"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
)

// newPlayer builds a seat from a flag value: "human" or a bot difficulty.
func newPlayer(id domain.PlayerID, kind, name string, opts []bot.Option) (game.Player, error) {
	switch kind {
	case "human":
		return game.NewHumanPlayer(id, name), nil
	case "easy", "medium", "hard":
		return game.NewBotPlayer(id, bot.Difficulty(kind), opts...)
	default:
		return nil, fmt.Errorf("unknown player kind %q (want human, easy, medium or hard)", kind)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run plays one match and returns the process exit code. Everything it opens
// is closed before it returns.
func run(args []string, stderr io.Writer) int {
	config.LoadEnv()
	cfg := config.LoadConfig()

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	p1 := fs.String("p1", "human", "Player 1: human, easy, medium or hard")
	p2 := fs.String("p2", cfg.BotDifficulty, "Player 2: human, easy, medium or hard")
	name := fs.String("name", "", "Name shown for human players")
	logFile := fs.String("log", "", "Write logs to this file (they are discarded otherwise)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Logs would tear the TUI, so they go to a file or nowhere
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			fmt.Fprintf(stderr, "error opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	logger.SetupWriter(out, cfg.LogLevel, false)

	var opts []bot.Option
	if cfg.RandomTieBreak {
		opts = append(opts, bot.WithRandomTies())
	}
	opts = append(opts, bot.WithLogger(logger.Component("BOT")))

	first, err := newPlayer(domain.Player1, *p1, *name, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	second, err := newPlayer(domain.Player2, *p2, *name, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	match, err := game.NewMatch(first, second)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.Info().Str("component", "MATCH").Str("p1", first.Name()).Str("p2", second.Name()).Msg("starting match")

	p := tea.NewProgram(tui.New(match), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
