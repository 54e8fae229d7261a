package metrics

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	startTime time.Time

	requestsTotal   atomic.Int64
	requestsSuccess atomic.Int64
	requestsFailed  atomic.Int64

	ocrCalls    atomic.Int64
	ocrFailures atomic.Int64

	llmCalls           atomic.Int64
	heuristicFallbacks atomic.Int64

	extractionsByType map[string]*atomic.Int64
	typeLock          sync.Mutex

	responseTimes     []time.Duration
	responseTimesLock sync.Mutex
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

func New() *Metrics {
	return &Metrics{
		startTime:         time.Now(),
		responseTimes:     make([]time.Duration, 0, 1000),
		extractionsByType: make(map[string]*atomic.Int64),
	}
}

func (m *Metrics) RecordRequest(success bool) {
	m.requestsTotal.Add(1)
	if success {
		m.requestsSuccess.Add(1)
	} else {
		m.requestsFailed.Add(1)
	}
}

func (m *Metrics) RecordOCRCall(success bool) {
	m.ocrCalls.Add(1)
	if !success {
		m.ocrFailures.Add(1)
	}
}

func (m *Metrics) RecordLLMCall() {
	m.llmCalls.Add(1)
}

func (m *Metrics) RecordHeuristicFallback() {
	m.heuristicFallbacks.Add(1)
}

func (m *Metrics) RecordExtraction(extractionType string) {
	m.typeLock.Lock()
	defer m.typeLock.Unlock()

	if m.extractionsByType[extractionType] == nil {
		m.extractionsByType[extractionType] = &atomic.Int64{}
	}
	m.extractionsByType[extractionType].Add(1)
}

func (m *Metrics) RecordResponseTime(d time.Duration) {
	m.responseTimesLock.Lock()
	defer m.responseTimesLock.Unlock()

	m.responseTimes = append(m.responseTimes, d)
	if len(m.responseTimes) > 1000 {
		m.responseTimes = m.responseTimes[1:]
	}
}

type Snapshot struct {
	Uptime             time.Duration    `json:"uptime"`
	RequestsTotal      int64            `json:"requests_total"`
	RequestsSuccess    int64            `json:"requests_success"`
	RequestsFailed     int64            `json:"requests_failed"`
	OCRCalls           int64            `json:"ocr_calls"`
	OCRFailures        int64            `json:"ocr_failures"`
	LLMCalls           int64            `json:"llm_calls"`
	HeuristicFallbacks int64            `json:"heuristic_fallbacks"`
	ExtractionsByType  map[string]int64 `json:"extractions_by_type"`
	AvgResponseTime    time.Duration    `json:"avg_response_time"`
	SuccessRate        float64          `json:"success_rate"`
}

func (m *Metrics) Snapshot() *Snapshot {
	s := &Snapshot{
		Uptime:             time.Since(m.startTime),
		RequestsTotal:      m.requestsTotal.Load(),
		RequestsSuccess:    m.requestsSuccess.Load(),
		RequestsFailed:     m.requestsFailed.Load(),
		OCRCalls:           m.ocrCalls.Load(),
		OCRFailures:        m.ocrFailures.Load(),
		LLMCalls:           m.llmCalls.Load(),
		HeuristicFallbacks: m.heuristicFallbacks.Load(),
		ExtractionsByType:  make(map[string]int64),
	}

	if s.RequestsTotal > 0 {
		s.SuccessRate = float64(s.RequestsSuccess) / float64(s.RequestsTotal) * 100
	}

	m.responseTimesLock.Lock()
	if len(m.responseTimes) > 0 {
		var total time.Duration
		for _, rt := range m.responseTimes {
			total += rt
		}
		s.AvgResponseTime = total / time.Duration(len(m.responseTimes))
	}
	m.responseTimesLock.Unlock()

	m.typeLock.Lock()
	for k, v := range m.extractionsByType {
		s.ExtractionsByType[k] = v.Load()
	}
	m.typeLock.Unlock()

	return s
}

func (m *Metrics) Prometheus() string {
	var sb strings.Builder

	sb.WriteString("# HELP extractord_uptime_seconds Time since server start\n")
	sb.WriteString("# TYPE extractord_uptime_seconds gauge\n")
	sb.WriteString("extractord_uptime_seconds " + strconv.FormatInt(int64(time.Since(m.startTime).Seconds()), 10) + "\n\n")

	sb.WriteString("# HELP extractord_requests_total Total extraction requests\n")
	sb.WriteString("# TYPE extractord_requests_total counter\n")
	sb.WriteString("extractord_requests_total " + strconv.FormatInt(m.requestsTotal.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_requests_success Successful extraction requests\n")
	sb.WriteString("# TYPE extractord_requests_success counter\n")
	sb.WriteString("extractord_requests_success " + strconv.FormatInt(m.requestsSuccess.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_requests_failed Failed extraction requests\n")
	sb.WriteString("# TYPE extractord_requests_failed counter\n")
	sb.WriteString("extractord_requests_failed " + strconv.FormatInt(m.requestsFailed.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_ocr_calls_total OCR service calls\n")
	sb.WriteString("# TYPE extractord_ocr_calls_total counter\n")
	sb.WriteString("extractord_ocr_calls_total " + strconv.FormatInt(m.ocrCalls.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_ocr_failures_total Failed OCR service calls\n")
	sb.WriteString("# TYPE extractord_ocr_failures_total counter\n")
	sb.WriteString("extractord_ocr_failures_total " + strconv.FormatInt(m.ocrFailures.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_llm_calls_total LLM extraction calls\n")
	sb.WriteString("# TYPE extractord_llm_calls_total counter\n")
	sb.WriteString("extractord_llm_calls_total " + strconv.FormatInt(m.llmCalls.Load(), 10) + "\n\n")

	sb.WriteString("# HELP extractord_heuristic_fallbacks_total Extractions served by the heuristic fallback\n")
	sb.WriteString("# TYPE extractord_heuristic_fallbacks_total counter\n")
	sb.WriteString("extractord_heuristic_fallbacks_total " + strconv.FormatInt(m.heuristicFallbacks.Load(), 10) + "\n\n")

	m.typeLock.Lock()
	for extractionType, count := range m.extractionsByType {
		sb.WriteString("# HELP extractord_extractions_total Extractions per type\n")
		sb.WriteString("# TYPE extractord_extractions_total counter\n")
		sb.WriteString("extractord_extractions_total{type=\"" + extractionType + "\"} " + strconv.FormatInt(count.Load(), 10) + "\n\n")
	}
	m.typeLock.Unlock()

	return sb.String()
}

func RecordRequest(success bool) {
	Default().RecordRequest(success)
}

func RecordOCRCall(success bool) {
	Default().RecordOCRCall(success)
}

func RecordLLMCall() {
	Default().RecordLLMCall()
}

func RecordHeuristicFallback() {
	Default().RecordHeuristicFallback()
}

func RecordExtraction(extractionType string) {
	Default().RecordExtraction(extractionType)
}

func RecordResponseTime(d time.Duration) {
	Default().RecordResponseTime(d)
}

func Prometheus() string {
	return Default().Prometheus()
}
