package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"isolation/config"
)

// GameRecord ties one game's metrics to the agent configs that played it.
type GameRecord struct {
	ID          int
	Agent1      int // config.Agent.ID seated as player 0
	Agent2      int // config.Agent.ID seated as player 1
	WinnerAgent int // config.Agent.ID of the winner, -1 when truncated
	GameMetric
}

// MoveRecord ties one move's metrics to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under dir for one
// experiment run.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir returns the directory the records are written into.
func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []config.Agent) error {
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "strategy", "depth", "iterations", "exploration", "evaluator", "seed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			config.Evaluator,
			strconv.FormatUint(config.Seed, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "agent1", "agent2", "winner_agent", "winner_player", "forfeit", "plies", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.WinnerAgent),
			strconv.Itoa(int(record.Winner)),
			strconv.FormatBool(record.Forfeit),
			strconv.Itoa(record.Plies),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "ply", "player", "action", "rounds", "submissions", "elapsed", "strategy", "depth", "search_duration", "nodes", "episodes"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			strconv.Itoa(int(record.Player)),
			record.Action.String(),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Submissions),
			record.Elapsed.String(),
			record.Strategy,
			strconv.Itoa(record.Depth),
			record.SearchMetric.Duration.String(),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Episodes, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
