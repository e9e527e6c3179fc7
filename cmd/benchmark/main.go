package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/benchmark"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()

	depthsFlag := flag.String("depths", "", "Comma separated search depths (default BENCHMARK_DEPTHS)")
	maxTime := flag.Duration("max-time", 60*time.Second, "Skip deeper searches of an algorithm once one takes longer than this (0 disables)")
	outDir := flag.String("out", cfg.ResultsDir, "Directory for the .txt, .tex and .parquet results")
	flag.Parse()

	logger.Setup(cfg.LogLevel, true)

	depths := cfg.BenchmarkDepths
	if *depthsFlag != "" {
		parsed, err := config.ParseIntList(*depthsFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -depths")
		}
		depths = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := benchmark.NewRunner(depths, *maxTime).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark aborted")
	}

	if err := benchmark.WriteText(os.Stdout, rep); err != nil {
		log.Fatal().Err(err).Msg("failed to print results")
	}

	files, err := benchmark.Save(*outDir, rep)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to save results")
	}
	fmt.Printf("\nResults saved to %s, %s and %s\n", files.Text, files.LaTeX, files.Parquet)
}
