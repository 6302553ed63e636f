package stats

import (
	"context"

	"github.com/verte-zerg/pwdrill/internal/model"
	"github.com/verte-zerg/pwdrill/internal/store"
)

// Report contains precomputed data for recorded-history rendering.
type Report struct {
	Runs     []model.RunAggregate
	Attempts []model.AttemptRecord
	Totals   Summary
}

// BuildReport loads and prepares recorded runs and their attempts.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	attempts, err := st.ListAttempts(ctx, ids)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:     runs,
		Attempts: attempts,
		Totals:   Totals(runs),
	}, nil
}

// Chart converts the recorded attempts into chart data.
func (r Report) Chart() ChartData {
	durations := make([]float64, len(r.Attempts))
	data := ChartData{Durations: durations}
	for i, a := range r.Attempts {
		durations[i] = float64(a.DurationMs) / 1000
		if a.Correct {
			data.Passed++
		} else {
			data.Failed++
		}
	}
	data.RunningAvg = RunningAverage(durations)
	return data
}
