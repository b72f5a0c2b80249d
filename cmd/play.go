package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"isolation/agent"
	"isolation/config"
	"isolation/engine"
	"isolation/game"
)

var playOpts struct {
	p1          string
	p2          string
	evaluator   string
	depth       int
	iterations  int
	exploration float64
	seed        uint64
	moveTime    time.Duration
	moveLog     string
	showBoard   bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game between two agents",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playOpts.p1, "p1", "alphabeta", "strategy of the starting player (alphabeta, negamax, mcts)")
	playCmd.Flags().StringVar(&playOpts.p2, "p2", "mcts", "strategy of the second player")
	playCmd.Flags().StringVar(&playOpts.evaluator, "evaluator", "liberties", "heuristic for depth-limited strategies (liberties, own-liberties, aggressive)")
	playCmd.Flags().IntVar(&playOpts.depth, "depth", config.DefaultDepth, "deepening cap for alphabeta and negamax")
	playCmd.Flags().IntVar(&playOpts.iterations, "iterations", config.DefaultIterations, "MCTS iteration budget per round")
	playCmd.Flags().Float64Var(&playOpts.exploration, "exploration", config.DefaultExploration, "MCTS UCT exploration factor")
	playCmd.Flags().Uint64Var(&playOpts.seed, "seed", 0, "random seed, 0 for a fresh one")
	playCmd.Flags().DurationVar(&playOpts.moveTime, "move-time", config.DefaultMoveTime, "deadline per move")
	playCmd.Flags().StringVar(&playOpts.moveLog, "move-log", "", "write a YAML move log to this file")
	playCmd.Flags().BoolVar(&playOpts.showBoard, "show-board", false, "print the board after every move")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg1 := config.DefaultAgent(1, playOpts.p1)
	cfg2 := config.DefaultAgent(2, playOpts.p2)
	for _, cfg := range []*config.Agent{&cfg1, &cfg2} {
		cfg.Evaluator = playOpts.evaluator
		cfg.Depth = playOpts.depth
		cfg.Iterations = playOpts.iterations
		cfg.Exploration = playOpts.exploration
		cfg.Seed = playOpts.seed
	}
	if playOpts.seed != 0 {
		cfg2.Seed = playOpts.seed + 1 // distinct streams, still reproducible
	}

	first, err := agent.FromConfig(cfg1)
	if err != nil {
		return err
	}
	second, err := agent.FromConfig(cfg2)
	if err != nil {
		return err
	}

	opts := []engine.Option{engine.WithMoveTime(playOpts.moveTime)}
	if playOpts.moveLog != "" {
		f, err := os.Create(playOpts.moveLog)
		if err != nil {
			return fmt.Errorf("failed to create move log: %w", err)
		}
		defer f.Close()
		opts = append(opts, engine.WithMoveLog(f))
	}
	if playOpts.showBoard {
		opts = append(opts, engine.WithTrace(cmd.OutOrStdout()))
	}

	e := engine.New(first, second, opts...)
	gm, _, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), e.State())
	if gm.Winner == game.NoPlayer {
		fmt.Fprintf(cmd.OutOrStdout(), "no winner after %d plies\n", gm.Plies)
		return nil
	}
	strategies := [2]string{playOpts.p1, playOpts.p2}
	how := ""
	if gm.Forfeit {
		how = " by forfeit"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "player %d (%s) wins%s after %d plies in %s\n",
		gm.Winner, strategies[gm.Winner], how, gm.Plies, gm.Duration.Round(time.Millisecond))
	return nil
}
