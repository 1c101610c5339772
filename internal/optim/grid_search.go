package optim

import (
	"context"
	"math"

	"github.com/halvard-os/rkcore/internal/dynamo"
)

// GridSearch exhaustively sweeps a named set of scalar parameters, running a
// fresh dynamo.Simulator for every combination and keeping whichever
// combination minimizes the named metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// BuildFunc constructs a simulator, an initial state and a run config for a
// given point in the parameter grid.
type BuildFunc func(params map[string]float64) (sim *dynamo.Simulator, x0 dynamo.State, cfg dynamo.Config, err error)

func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(g.paramNames) {
		sim, x0, cfg, err := build(current)
		if err != nil {
			return
		}

		result, err := sim.Run(ctx, x0, cfg)
		if err != nil {
			return
		}

		val := result.Metrics[metricName]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, build, metricName, best, bestParams)
	}
}
