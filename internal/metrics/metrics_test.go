package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRecordRequest(t *testing.T) {
	m := New()

	m.RecordRequest(true)
	m.RecordRequest(true)
	m.RecordRequest(false)

	s := m.Snapshot()
	if s.RequestsTotal != 3 {
		t.Errorf("expected 3 total requests, got %d", s.RequestsTotal)
	}
	if s.RequestsSuccess != 2 {
		t.Errorf("expected 2 successful requests, got %d", s.RequestsSuccess)
	}
	if s.RequestsFailed != 1 {
		t.Errorf("expected 1 failed request, got %d", s.RequestsFailed)
	}
	if s.SuccessRate < 66.0 || s.SuccessRate > 67.0 {
		t.Errorf("expected success rate ~66.7, got %f", s.SuccessRate)
	}
}

func TestRecordOCRCall(t *testing.T) {
	m := New()

	m.RecordOCRCall(true)
	m.RecordOCRCall(false)

	s := m.Snapshot()
	if s.OCRCalls != 2 {
		t.Errorf("expected 2 OCR calls, got %d", s.OCRCalls)
	}
	if s.OCRFailures != 1 {
		t.Errorf("expected 1 OCR failure, got %d", s.OCRFailures)
	}
}

func TestRecordExtractionByType(t *testing.T) {
	m := New()

	m.RecordExtraction("person")
	m.RecordExtraction("person")
	m.RecordExtraction("sentiment")

	s := m.Snapshot()
	if s.ExtractionsByType["person"] != 2 {
		t.Errorf("expected 2 person extractions, got %d", s.ExtractionsByType["person"])
	}
	if s.ExtractionsByType["sentiment"] != 1 {
		t.Errorf("expected 1 sentiment extraction, got %d", s.ExtractionsByType["sentiment"])
	}
}

func TestResponseTimes(t *testing.T) {
	m := New()

	m.RecordResponseTime(100 * time.Millisecond)
	m.RecordResponseTime(300 * time.Millisecond)

	s := m.Snapshot()
	if s.AvgResponseTime != 200*time.Millisecond {
		t.Errorf("expected avg 200ms, got %v", s.AvgResponseTime)
	}
}

func TestPrometheusExposition(t *testing.T) {
	m := New()
	m.RecordRequest(true)
	m.RecordHeuristicFallback()
	m.RecordExtraction("person")

	out := m.Prometheus()

	for _, want := range []string{
		"extractord_requests_total 1",
		"extractord_heuristic_fallbacks_total 1",
		`extractord_extractions_total{type="person"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected exposition to contain %q", want)
		}
	}
}
