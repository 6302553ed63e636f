package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/pwdrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "pwdrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestListRunsAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(1700000000, 0)
	runID := NewRunID()
	if err := st.StartRun(ctx, runID, start); err != nil {
		t.Fatalf("start run: %v", err)
	}
	attempts := []model.AttemptRecord{
		{RunID: runID, Seq: 1, At: start.Add(time.Second), DurationMs: 1200, Correct: false, Length: 6},
		{RunID: runID, Seq: 2, At: start.Add(2 * time.Second), DurationMs: 2500, Correct: true, Length: 7},
		{RunID: runID, Seq: 3, At: start.Add(3 * time.Second), DurationMs: 1500, Correct: true, Length: 7},
	}
	for _, a := range attempts {
		if err := st.InsertAttempt(ctx, a); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	runs, err := st.ListRuns(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.RunID != runID || r.Attempts != 3 || r.Correct != 2 {
		t.Fatalf("unexpected run aggregate: %+v", r)
	}
	if r.BestMs != 1500 || r.TotalMs != 5200 || r.CorrectMs != 4000 || r.IncorrectMs != 1200 {
		t.Fatalf("unexpected durations: %+v", r)
	}
	if !r.StartedAt.Equal(start) || !r.EndedAt.Equal(start.Add(3*time.Second)) {
		t.Fatalf("unexpected times: %v %v", r.StartedAt, r.EndedAt)
	}

	recs, err := st.ListAttempts(ctx, []string{runID})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(recs) != 3 || recs[0].Seq != 1 || recs[2].Seq != 3 {
		t.Fatalf("unexpected attempts: %+v", recs)
	}
	if recs[0].Correct || !recs[1].Correct {
		t.Fatalf("correctness not round-tripped: %+v", recs)
	}
}

func TestListRunsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)
	var ids []string
	for i := 0; i < 3; i++ {
		id := NewRunID()
		started := base.Add(time.Duration(i) * time.Hour)
		if err := st.StartRun(ctx, id, started); err != nil {
			t.Fatalf("start run: %v", err)
		}
		rec := model.AttemptRecord{RunID: id, Seq: 1, At: started.Add(time.Second), DurationMs: 1000, Length: 3}
		if err := st.InsertAttempt(ctx, rec); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
		ids = append(ids, id)
	}
	empty := NewRunID()
	if err := st.StartRun(ctx, empty, base.Add(5*time.Hour)); err != nil {
		t.Fatalf("start run: %v", err)
	}

	runs, err := st.ListRuns(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != ids[1] || runs[1].RunID != ids[2] {
		t.Fatalf("unexpected runs for last=2: %+v", runs)
	}

	since := base.Add(90 * time.Minute)
	runs, err = st.ListRuns(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != ids[2] {
		t.Fatalf("unexpected runs for since filter: %+v", runs)
	}
	if runs[0].BestMs != 0 || runs[0].Correct != 0 {
		t.Fatalf("expected no best time without correct attempts: %+v", runs[0])
	}
}

func TestStartRunRejectsEmptyID(t *testing.T) {
	st := openTestStore(t)
	if err := st.StartRun(context.Background(), "", time.Now()); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}
