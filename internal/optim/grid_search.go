package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

// Axis is one searched parameter.
type Axis struct {
	Name   string
	Values []float64
	Apply  func(cfg *config.Config, v float64)
}

// Iterations varies the relaxation iteration count.
func Iterations(values ...float64) Axis {
	return Axis{Name: "iterations", Values: values, Apply: func(c *config.Config, v float64) {
		c.Solver.Iterations = int(v)
	}}
}

// Damping varies the velocity damping.
func Damping(values ...float64) Axis {
	return Axis{Name: "damping", Values: values, Apply: func(c *config.Config, v float64) {
		c.Physics.Damping = v
	}}
}

// Point is one evaluated grid cell.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Objective scores a finished run; lower is better.
type Objective func(params map[string]float64, r *sim.Result) float64

// MetricObjective scores a run by one of its recorded metrics.
func MetricObjective(name string) Objective {
	return func(_ map[string]float64, r *sim.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Points enumerates the grid in row-major order, the last axis fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for _, ax := range g.axes {
		next := make([]map[string]float64, 0, len(points)*len(ax.Values))
		for _, p := range points {
			for _, v := range ax.Values {
				q := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					q[k] = pv
				}
				q[ax.Name] = v
				next = append(next, q)
			}
		}
		points = next
	}
	return points
}

// Search runs every grid point concurrently and returns all points in grid
// order together with the index of the best one.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) ([]Point, int, error) {
	for _, ax := range g.axes {
		if len(ax.Values) == 0 {
			return nil, -1, fmt.Errorf("axis %s has no values", ax.Name)
		}
	}

	params := g.Points()
	cfgs := make([]*config.Config, len(params))
	for i, p := range params {
		cfg := base.Clone()
		for _, ax := range g.axes {
			ax.Apply(cfg, p[ax.Name])
		}
		if err := cfg.Validate(); err != nil {
			return nil, -1, fmt.Errorf("grid point %v: %w", p, err)
		}
		cfgs[i] = cfg
	}

	results, err := sim.NewEnsemble(cfgs, 0).Run(ctx)
	if err != nil {
		return nil, -1, err
	}

	points := make([]Point, len(params))
	best := 0
	for i, r := range results {
		points[i] = Point{Params: params[i], Value: objective(params[i], r)}
		if points[i].Value < points[best].Value {
			best = i
		}
	}
	return points, best, nil
}
