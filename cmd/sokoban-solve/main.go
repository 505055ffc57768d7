// Command sokoban-solve runs the FESS search engine against a single
// Sokoban level, per spec.md §6.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jnoundu89/sokoban-fess"
	"github.com/jnoundu89/sokoban-fess/internal/config"
	"github.com/jnoundu89/sokoban-fess/internal/logging"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Exit codes per spec.md §6.
const (
	exitSolved        = 0
	exitUnsolvable    = 1
	exitLimitExceeded = 2
	exitMalformed     = 3
	exitCancelled     = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := &cobra.Command{
		Use:           "sokoban-solve",
		Short:         "Solve a Sokoban level using feature space search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	v := config.BindFlags(cmd.Flags())

	exitCode := exitSolved
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			exitCode = exitMalformed
			return err
		}

		logger := logging.New(stderr, cfg.LogLevel)

		levelText, err := readLevel(cfg.LevelFile, stdin)
		if err != nil {
			exitCode = exitMalformed
			return err
		}

		opts := sokoban.DefaultSolveOptions()
		opts.MaxNodes = cfg.MaxNodes
		opts.MaxMillis = cfg.MaxMillis
		opts.EnableCorralCheck = !cfg.NoCorral
		opts.EnableBipartiteCheck = !cfg.NoBipartite
		if cfg.Seed != 0 {
			opts.ZobristSeed = cfg.Seed
		}
		opts.Logger = &logger

		var bar *progressbar.ProgressBar
		if !cfg.Quiet {
			bar = progressbar.NewOptions(opts.MaxNodes,
				progressbar.OptionSetDescription("searching"),
				progressbar.OptionSetWriter(stderr),
				progressbar.OptionClearOnFinish(),
			)
			opts.ProgressCallback = func(s sokoban.Stats) bool {
				_ = bar.Set(s.NodesExpanded)
				return true
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		go func() {
			if _, ok := <-sig; ok {
				cancel()
			}
		}()

		result, err := sokoban.Solve(ctx, levelText, opts)
		if bar != nil {
			_ = bar.Close()
		}
		if err != nil {
			exitCode = exitMalformed
			return err
		}

		exitCode = reportResult(stdout, result)
		return nil
	}

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if exitCode == exitSolved {
			exitCode = exitMalformed
		}
	}
	return exitCode
}

func readLevel(path string, stdin io.Reader) (string, error) {
	if path == "" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func reportResult(stdout io.Writer, result sokoban.SolveResult) int {
	switch result.Outcome {
	case sokoban.Solved:
		fmt.Fprintf(stdout, "solved in %d pushes (%d macro moves, %d nodes expanded)\n",
			len(result.Moves), len(result.MacroMoves), result.Stats.NodesExpanded)
		for _, p := range result.Moves {
			fmt.Fprintf(stdout, "%v %v\n", p.Box, p.Direction)
		}
		return exitSolved
	case sokoban.Unsolvable:
		fmt.Fprintln(stdout, "unsolvable")
		return exitUnsolvable
	case sokoban.LimitExceeded:
		fmt.Fprintf(stdout, "limit exceeded: %v\n", result.LimitReason)
		return exitLimitExceeded
	case sokoban.Cancelled:
		fmt.Fprintln(stdout, "cancelled")
		return exitCancelled
	default:
		fmt.Fprintln(stdout, "unknown outcome")
		return exitMalformed
	}
}
