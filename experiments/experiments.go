package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"isolation/agent"
	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
)

// matchup pairs two agent configs from the experiment config.
type matchup struct {
	first, second config.Agent
}

// job is one scheduled game. Seats are the per-game agent configs after seat
// alternation and seed derivation.
type job struct {
	matchup int
	seats   [2]config.Agent
}

// Run plays every configured matchup and stores the results as CSV files
// under a timestamped run directory. It returns the directory path.
func Run(ctx context.Context, cfg config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	matchups, err := buildMatchups(cfg)
	if err != nil {
		return "", err
	}
	jobs := buildJobs(cfg, matchups)

	log.Info().Msgf("starting %s experiment: %d matchups, %d games...", cfg.Name, len(matchups), len(jobs))

	// Each job writes only its own slot, so no locking is needed.
	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Concurrency)
	for i, j := range jobs {
		group.Go(func() error {
			gm, moves, err := runGame(ctx, cfg, j)
			if err != nil {
				return fmt.Errorf("failed to finish game %d: %w", i+1, err)
			}
			gameRecords[i] = metrics.GameRecord{
				ID:          i + 1,
				Agent1:      j.seats[0].ID,
				Agent2:      j.seats[1].ID,
				WinnerAgent: winnerAgent(gm.Winner, j.seats),
				GameMetric:  gm,
			}
			moveRecords[i] = lo.Map(moves, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: i + 1, MoveMetric: mm}
			})
			log.Info().Msgf("completed game %d of %d with winner agent %d", i+1, len(jobs), gameRecords[i].WinnerAgent)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	for mi, m := range matchups {
		records := lo.Filter(gameRecords, func(_ metrics.GameRecord, i int) bool {
			return jobs[i].matchup == mi
		})
		wins := lo.CountBy(records, func(r metrics.GameRecord) bool { return r.WinnerAgent == m.first.ID })
		losses := lo.CountBy(records, func(r metrics.GameRecord) bool { return r.WinnerAgent == m.second.ID })
		log.Info().Msgf("matchup %d of %d: agent %d vs agent %d: %d wins, %d losses, %d draws",
			mi+1, len(matchups), m.first.ID, m.second.ID, wins, losses, len(records)-wins-losses)
	}

	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(lo.Flatten(moveRecords)); err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msg("stored move records")

	log.Info().Msgf("completed %s experiment", cfg.Name)
	return writer.Dir(), nil
}

// buildMatchups resolves the configured pairings, or defaults to a round
// robin over all agents. A lone agent plays itself.
func buildMatchups(cfg config.Config) ([]matchup, error) {
	byID := make(map[int]config.Agent, len(cfg.Agents))
	for _, a := range cfg.Agents {
		byID[a.ID] = a
	}

	if len(cfg.Matchups) > 0 {
		matchups := make([]matchup, 0, len(cfg.Matchups))
		for _, pair := range cfg.Matchups {
			first, ok := byID[pair[0]]
			if !ok {
				return nil, fmt.Errorf("matchup references unknown agent id %d", pair[0])
			}
			second, ok := byID[pair[1]]
			if !ok {
				return nil, fmt.Errorf("matchup references unknown agent id %d", pair[1])
			}
			matchups = append(matchups, matchup{first: first, second: second})
		}
		return matchups, nil
	}

	var matchups []matchup
	for i := 0; i < len(cfg.Agents); i++ {
		for j := i + 1; j < len(cfg.Agents); j++ {
			matchups = append(matchups, matchup{first: cfg.Agents[i], second: cfg.Agents[j]})
		}
	}
	if len(matchups) == 0 {
		matchups = append(matchups, matchup{first: cfg.Agents[0], second: cfg.Agents[0]})
	}
	return matchups, nil
}

// buildJobs lays out every game of every matchup. Seats swap on odd games so
// neither agent always places first, and nonzero seeds shift per game so
// repeated games differ while staying reproducible.
func buildJobs(cfg config.Config, matchups []matchup) []job {
	var jobs []job
	for mi, m := range matchups {
		for g := 0; g < cfg.Games; g++ {
			seats := [2]config.Agent{m.first, m.second}
			if g%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			seats[0] = deriveSeed(seats[0], len(jobs))
			seats[1] = deriveSeed(seats[1], len(jobs))
			jobs = append(jobs, job{matchup: mi, seats: seats})
		}
	}
	return jobs
}

func deriveSeed(a config.Agent, gameIndex int) config.Agent {
	if a.Seed != 0 {
		a.Seed += uint64(gameIndex)
	}
	return a
}

func runGame(ctx context.Context, cfg config.Config, j job) (metrics.GameMetric, []metrics.MoveMetric, error) {
	first, err := agent.FromConfig(j.seats[0])
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	second, err := agent.FromConfig(j.seats[1])
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.New(first, second, engine.WithMoveTime(cfg.MoveTime.Std()))
	return e.Run(ctx)
}

// winnerAgent maps the winning seat back to an agent ID, -1 when the game
// had no winner.
func winnerAgent(winner game.PlayerID, seats [2]config.Agent) int {
	switch winner {
	case 0:
		return seats[0].ID
	case 1:
		return seats[1].ID
	}
	return -1
}
