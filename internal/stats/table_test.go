package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/pwdrill/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Run", "Pass", "Best"}
	rows := [][]string{
		{"a", "97%", "1.20s"},
		{"second", "8%", "--"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Run    Pass  Best" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a       97% 1.20s" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "second   8%    --" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderRunTable(t *testing.T) {
	var buf bytes.Buffer
	runs := []model.RunAggregate{{
		RunID:     "r1",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local),
		Attempts:  4,
		Correct:   3,
		BestMs:    1500,
		TotalMs:   8000,
		CorrectMs: 6000,
	}}
	if err := RenderRunTable(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2026-01-02 03:04", "75%", "1.50s", "2.00s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
