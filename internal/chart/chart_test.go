package chart

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/verte-zerg/pwdrill/internal/stats"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sampleData() stats.ChartData {
	durations := []float64{3.1, 2.4, 2.9, 1.8}
	return stats.ChartData{
		Passed:     3,
		Failed:     1,
		Durations:  durations,
		RunningAvg: stats.RunningAverage(durations),
	}
}

func TestWriteDurationsPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDurationsPNG(&buf, sampleData()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("expected PNG output")
	}
}

func TestWriteDurationsPNGSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	data := stats.ChartData{Passed: 1, Durations: []float64{1.5}, RunningAvg: []float64{1.5}}
	if err := WriteDurationsPNG(&buf, data); err != nil {
		t.Fatalf("render single point: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("expected PNG output")
	}
}

func TestWriteOutcomesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutcomesPNG(&buf, sampleData()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("expected PNG output")
	}
}

func TestEmptyDataIsRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDurationsPNG(&buf, stats.ChartData{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err := WriteOutcomesPNG(&buf, stats.ChartData{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := Export(t.TempDir(), "x", stats.ChartData{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := Export(dir, "session", sampleData())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %v", paths)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Fatalf("%s is not a PNG", p)
		}
	}
}
