package metrics

import "github.com/steveyegge/observe/internal/types"

// TrendMeasure is the signed movement of one tracked dimension between the
// previous and current windows, classified against a threshold. Delta is
// relative for duration and hygiene (change per unit of the previous value)
// and absolute for the rate dimensions, matching how each is judged against
// its target.
type TrendMeasure struct {
	Delta     float64              `json:"delta"`
	Direction types.TrendDirection `json:"direction"`
}

// TrendDelta compares a current window against the previous one across the
// four tracked dimensions.
type TrendDelta struct {
	Duration    TrendMeasure `json:"duration"`
	Reliability TrendMeasure `json:"reliability"`
	Hygiene     TrendMeasure `json:"hygiene"`
	Autonomy    TrendMeasure `json:"autonomy"`
}

// HasDegradation reports whether any dimension is degrading.
func (t TrendDelta) HasDegradation() bool {
	for _, m := range []TrendMeasure{t.Duration, t.Reliability, t.Hygiene, t.Autonomy} {
		if m.Direction == types.TrendDegrading {
			return true
		}
	}
	return false
}

// ComputeTrend compares the current window against the previous one.
// threshold is the minimum movement that counts as a real change; smaller
// deltas are stable. An empty window on either side yields
// insufficient_data for every dimension rather than a division by zero.
// Swapping current and previous flips the sign of every delta.
func ComputeTrend(current, previous Summary, threshold float64) TrendDelta {
	insufficient := TrendMeasure{Direction: types.TrendInsufficient}
	if current.RunCount == 0 || previous.RunCount == 0 {
		return TrendDelta{
			Duration:    insufficient,
			Reliability: insufficient,
			Hygiene:     insufficient,
			Autonomy:    insufficient,
		}
	}

	var t TrendDelta

	// Duration: relative change in median cycle time; higher is worse.
	if previous.Duration.Median > 0 && current.Duration.Median > 0 {
		delta := (current.Duration.Median - previous.Duration.Median) / previous.Duration.Median
		t.Duration = classify(delta, threshold, higherIsWorse)
	} else {
		t.Duration = insufficient
	}

	// Reliability: absolute change in build success rate; lower is worse.
	t.Reliability = classify(current.BuildSuccessRate-previous.BuildSuccessRate, threshold, lowerIsWorse)

	// Hygiene: relative change in combined lint+type errors per run; higher
	// is worse. A clean previous window going dirty is a degradation even
	// though the relative change is undefined.
	prevHygiene := previous.HygieneErrorsPerRun()
	curHygiene := current.HygieneErrorsPerRun()
	switch {
	case prevHygiene > 0:
		t.Hygiene = classify((curHygiene-prevHygiene)/prevHygiene, threshold, higherIsWorse)
	case curHygiene > 0:
		t.Hygiene = TrendMeasure{Delta: curHygiene, Direction: types.TrendDegrading}
	default:
		t.Hygiene = TrendMeasure{Direction: types.TrendStable}
	}

	// Autonomy: absolute change in manual intervention rate; higher is worse.
	t.Autonomy = classify(current.ManualInterventionRate-previous.ManualInterventionRate, threshold, higherIsWorse)

	return t
}

type direction int

const (
	higherIsWorse direction = iota
	lowerIsWorse
)

func classify(delta, threshold float64, dir direction) TrendMeasure {
	m := TrendMeasure{Delta: delta, Direction: types.TrendStable}
	worse := delta > threshold
	better := delta < -threshold
	if dir == lowerIsWorse {
		worse, better = better, worse
	}
	switch {
	case worse:
		m.Direction = types.TrendDegrading
	case better:
		m.Direction = types.TrendImproving
	}
	return m
}

// TrendFor maps a metric kind to its trend dimension.
func (t TrendDelta) TrendFor(kind types.MetricKind) TrendMeasure {
	switch kind {
	case types.MetricCycleTime:
		return t.Duration
	case types.MetricBuildSuccess:
		return t.Reliability
	case types.MetricLintErrors, types.MetricTypeErrors:
		return t.Hygiene
	case types.MetricManualRate:
		return t.Autonomy
	}
	return TrendMeasure{Direction: types.TrendInsufficient}
}
