package metrics

import (
	"time"
)

// IterationMetric describes one depth-limited pass of an iterative deepening
// search.
type IterationMetric struct {
	Depth   int
	Nodes   int
	Leaves  int
	Cutoffs int
	Value   float64
	Elapsed time.Duration // since the search started
	Period  time.Duration // spent on this iteration
	Rate    float64       // growth of Period over the previous iteration
}

type SearchMetric struct {
	MaxDepth   int
	Step       int
	Pruning    string
	Duration   time.Duration
	Nodes      int // summed over all iterations
	Leaves     int
	Iterations []IterationMetric
}

// NodesPerSecond is the search throughput over every iteration.
func (s SearchMetric) NodesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.Duration.Seconds()
}

// Final returns the metric of the deepest completed iteration.
func (s SearchMetric) Final() (IterationMetric, bool) {
	if len(s.Iterations) == 0 {
		return IterationMetric{}, false
	}
	return s.Iterations[len(s.Iterations)-1], true
}

type MoveMetric struct {
	Step   int
	Player int
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates the iterations of a single search.
type Collector interface {
	Start(maxDepth, step int, pruning string)
	AddIteration(depth, nodes, leaves, cutoffs int, value float64) IterationMetric
	Complete() SearchMetric
}

// Growth rates are only reported once periods are long enough to be measured
// reliably.
const (
	rateMinDepth  = 3
	rateMinPeriod = 50 * time.Millisecond
)

type collector struct {
	startTime  time.Time
	previous   time.Duration
	metric     SearchMetric
	iterations []IterationMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(maxDepth, step int, pruning string) {
	c.startTime = time.Now()
	c.previous = 0
	c.iterations = nil
	c.metric = SearchMetric{
		MaxDepth: maxDepth,
		Step:     step,
		Pruning:  pruning,
	}
}

func (c *collector) AddIteration(depth, nodes, leaves, cutoffs int, value float64) IterationMetric {
	elapsed := time.Since(c.startTime)
	period := elapsed - c.previous

	var rate float64
	if depth > rateMinDepth && c.previous > rateMinPeriod {
		rate = float64(period-c.previous) / float64(c.previous)
	}
	c.previous = elapsed

	it := IterationMetric{
		Depth:   depth,
		Nodes:   nodes,
		Leaves:  leaves,
		Cutoffs: cutoffs,
		Value:   value,
		Elapsed: elapsed,
		Period:  period,
		Rate:    rate,
	}
	c.iterations = append(c.iterations, it)
	c.metric.Nodes += nodes
	c.metric.Leaves += leaves
	return it
}

func (c *collector) Complete() SearchMetric {
	m := c.metric
	m.Duration = time.Since(c.startTime)
	m.Iterations = append([]IterationMetric(nil), c.iterations...)
	return m
}
