package metrics

import (
	"time"
)

// SolveMetric summarizes one solve.
type SolveMetric struct {
	Nodes           int // Distinct positions after symmetry reduction
	Aliases         int // Fingerprints registered, symmetric images included
	Edges           int
	Leaves          int // Terminal and stalemate positions
	CycleDraws      int // Positions closed as perpetual draws
	BuildDuration   time.Duration
	AnalyzeDuration time.Duration
}

type Collector interface {
	Start()
	AddNode(aliases int)
	AddEdge()
	AddLeaf()
	StartAnalysis()
	AddCycleDraw()
	Complete() SolveMetric
}

type collector struct {
	startTime    time.Time
	analysisTime time.Time
	metric       SolveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.metric = SolveMetric{}
}

func (m *collector) AddNode(aliases int) {
	m.metric.Nodes++
	m.metric.Aliases += aliases
}

func (m *collector) AddEdge() {
	m.metric.Edges++
}

func (m *collector) AddLeaf() {
	m.metric.Leaves++
}

func (m *collector) StartAnalysis() {
	m.analysisTime = time.Now()
	m.metric.BuildDuration = m.analysisTime.Sub(m.startTime)
}

func (m *collector) AddCycleDraw() {
	m.metric.CycleDraws++
}

func (m *collector) Complete() SolveMetric {
	if !m.analysisTime.IsZero() {
		m.metric.AnalyzeDuration = time.Since(m.analysisTime)
	}
	return m.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                {}
func (m *dummyCollector) AddNode(aliases int)   {}
func (m *dummyCollector) AddEdge()              {}
func (m *dummyCollector) AddLeaf()              {}
func (m *dummyCollector) StartAnalysis()        {}
func (m *dummyCollector) AddCycleDraw()         {}
func (m *dummyCollector) Complete() SolveMetric { return SolveMetric{} }
