package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults of the search configuration surface.
const (
	DefaultDepth       = 3
	DefaultIterations  = 200
	DefaultExploration = 1.2
	DefaultMoveTime    = 150 * time.Millisecond
	DefaultGames       = 30
	DefaultConcurrency = 4
)

// Agent configures one playing agent.
type Agent struct {
	ID          int     `yaml:"id"`
	Strategy    string  `yaml:"strategy"`    // alphabeta, negamax or mcts
	Depth       int     `yaml:"depth"`       // deepening cap for alphabeta/negamax
	Iterations  int     `yaml:"iterations"`  // MCTS budget per search round
	Exploration float64 `yaml:"exploration"` // MCTS UCT exploration factor
	Evaluator   string  `yaml:"evaluator"`   // liberties, own-liberties or aggressive
	Seed        uint64  `yaml:"seed"`        // 0 picks a fresh seed per game
	MaxRounds   int     `yaml:"max_rounds"`  // 0 searches until the move deadline
}

// Config drives a run: one game or a whole arena experiment.
type Config struct {
	Name        string   `yaml:"name"`
	MoveTime    Duration `yaml:"move_time"`
	Games       int      `yaml:"games"` // per matchup
	Concurrency int      `yaml:"concurrency"`
	OutDir      string   `yaml:"out_dir"`
	Agents      []Agent  `yaml:"agents"`
	Matchups    [][2]int `yaml:"matchups"` // agent ID pairs; empty runs a round robin
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Name:        "arena",
		MoveTime:    Duration(DefaultMoveTime),
		Games:       DefaultGames,
		Concurrency: DefaultConcurrency,
		OutDir:      "experiments",
	}
}

// DefaultAgent returns an agent config with the documented defaults.
func DefaultAgent(id int, strategy string) Agent {
	return Agent{
		ID:          id,
		Strategy:    strategy,
		Depth:       DefaultDepth,
		Iterations:  DefaultIterations,
		Exploration: DefaultExploration,
		Evaluator:   "liberties",
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the parts of a config that decoding cannot.
func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if len(c.Agents) == 0 {
		return errors.New("no agents configured")
	}
	seen := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// Duration wraps time.Duration so YAML configs can say "150ms" or "2s".
type Duration time.Duration

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}
