package experiments

import (
	"context"

	"abstractgames/config"
	"abstractgames/experiments/metrics"
	"abstractgames/searcher"
)

// RunPruningExperiment plays every pruning policy at the configured depth
// against the configured opponent, to compare node counts and move times.
func RunPruningExperiment(ctx context.Context, cfg *config.Config) (metrics.Summary, error) {
	opponent := OpponentAgentConfig(0, cfg)
	configs := []metrics.AgentConfig{opponent}
	matchUps := [][2]metrics.AgentConfig{}

	for i, pruning := range []searcher.Pruning{searcher.PruneBoth, searcher.PruneMinimizer, searcher.PruneNone} {
		sc := cfg.Search
		sc.Pruning = pruning.String()
		agent := SearchAgentConfig(i+1, sc)
		configs = append(configs, agent)
		matchUps = append(matchUps, [2]metrics.AgentConfig{agent, opponent})
	}

	return runExperiment(ctx, "pruning", SettingsFrom(cfg), configs, matchUps)
}
