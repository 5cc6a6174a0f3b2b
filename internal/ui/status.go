package ui

import (
	"fmt"
	"math"
	"strconv"

	"tilegen/internal/core"
	"tilegen/internal/terrain"
)

type seedProvider interface {
	Seed() int64
}

type stagedSim interface {
	Stage() terrain.Stage
	Iteration() int
	Sources() (attempted, placed int)
	Config() terrain.Config
}

// StatusLines summarises the generation progress of sim for the overlay.
func StatusLines(sim core.Sim) []string {
	head := sim.Name()
	if p, ok := sim.(seedProvider); ok {
		head = fmt.Sprintf("%s  seed %d", head, p.Seed())
	}
	lines := []string{head}
	if s, ok := sim.(stagedSim); ok {
		attempted, placed := s.Sources()
		lines = append(lines,
			fmt.Sprintf("stage %s", s.Stage()),
			fmt.Sprintf("growth %d/%d", s.Iteration(), s.Config().Forest.Iterations),
			fmt.Sprintf("sources %d placed, %d tried", placed, attempted),
		)
	}
	c := terrain.Count(sim.Cells())
	lines = append(lines, fmt.Sprintf("plain %d  forest %d  water %d", c.Plain, c.Forest, c.Water))
	return lines
}

// stepTarget returns the value one step from cur in direction dir, clamped to
// the control's bounds. ok is false when the value cannot move.
func stepTarget(ctrl core.ParameterControl, cur float64, dir int) (float64, bool) {
	if dir == 0 {
		return cur, false
	}
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	case core.ParamTypeFloat:
		if step <= 0 {
			step = 0.05
		}
	default:
		return cur, false
	}
	target := cur + float64(dir)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-cur) < 1e-9 {
		return cur, false
	}
	return target, true
}

// formatControl renders a control value with precision matching its step.
func formatControl(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}
