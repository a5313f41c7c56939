package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID           int    `yaml:"id"`
	Kind         string `yaml:"kind"` // "minimax" or "random"
	Depth        int    `yaml:"depth"`
	Step         int    `yaml:"step"`
	Pruning      string `yaml:"pruning"`
	RootOrdering bool   `yaml:"root_ordering"`
	Seed         uint64 `yaml:"seed"`
}

type AgentSummary struct {
	Agent        int     `yaml:"agent"`
	Games        int     `yaml:"games"`
	Wins         int     `yaml:"wins"`
	Draws        int     `yaml:"draws"`
	Moves        int     `yaml:"moves"`
	MeanNodes    float64 `yaml:"mean_nodes"`
	StdDevNodes  float64 `yaml:"stddev_nodes"`
	MeanLeaves   float64 `yaml:"mean_leaves"`
	NodesPerSec  float64 `yaml:"nodes_per_second"`
	MeanMoveTime string  `yaml:"mean_move_time"`
}

type Summary struct {
	Name   string         `yaml:"name"`
	Games  int            `yaml:"games"`
	Agents []AgentSummary `yaml:"agents"`
}

// Summarize aggregates per-agent results. Winners are recorded as the
// seat name ("player0", "player1", "draw").
func Summarize(name string, configs []AgentConfig, games []GameRecord, moves []MoveRecord) Summary {
	summary := Summary{Name: name, Games: len(games)}

	for _, config := range configs {
		agent := AgentSummary{Agent: config.ID}

		for _, g := range games {
			seat := ""
			switch config.ID {
			case g.Agent1:
				seat = "player0"
			case g.Agent2:
				seat = "player1"
			default:
				continue
			}
			agent.Games++
			switch g.Winner {
			case seat:
				agent.Wins++
			case "draw":
				agent.Draws++
			}
		}

		own := lo.Filter(moves, func(m MoveRecord, _ int) bool { return m.Agent == config.ID })
		agent.Moves = len(own)
		if len(own) > 0 {
			nodes := lo.Map(own, func(m MoveRecord, _ int) float64 { return float64(m.Nodes) })
			leaves := lo.Map(own, func(m MoveRecord, _ int) float64 { return float64(m.Leaves) })
			agent.MeanNodes = stat.Mean(nodes, nil)
			if len(nodes) > 1 {
				agent.StdDevNodes = stat.StdDev(nodes, nil)
			}
			agent.MeanLeaves = stat.Mean(leaves, nil)

			totalNodes := lo.SumBy(own, func(m MoveRecord) int { return m.Nodes })
			totalTime := lo.SumBy(own, func(m MoveRecord) float64 { return m.Duration.Seconds() })
			if totalTime > 0 {
				agent.NodesPerSec = float64(totalNodes) / totalTime
			}
			agent.MeanMoveTime = fmt.Sprintf("%.3fs", totalTime/float64(len(own)))
		}

		summary.Agents = append(summary.Agents, agent)
	}
	return summary
}

func (w *Writer) WriteSummary(summary Summary) error {
	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	path := filepath.Join(w.baseDir, "summary.yaml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
