package demo

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/curvedemo/follow"
)

// Report summarizes a headless run.
type Report struct {
	TPS       int
	Entities  int
	Ticks     uint64
	TotalTime time.Duration

	UpdateTime Stats
	RenderTime Stats

	Final follow.Status
	Orb   mgl32.Vec3
	Mesh  mgl32.Vec3

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// TimingWindow is how many of the most recent samples Stats keeps for the
// percentile. Min, Max and Avg cover every sample added.
const TimingWindow = 4096

// Stats summarizes duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Count   uint64
	Samples []time.Duration

	total time.Duration
	next  int
}

// Add records one sample. Once TimingWindow samples are held the oldest is
// overwritten.
func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
	s.total += d

	if len(s.Samples) < TimingWindow {
		s.Samples = append(s.Samples, d)
		return
	}
	s.Samples[s.next] = d
	s.next = (s.next + 1) % TimingWindow
}

// Finalize computes the summary fields. Samples assigned directly, without
// Add, are summarized as a whole.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)
	s.P95 = sorted[(len(sorted)*95+99)/100-1]

	if s.Count > 0 {
		s.Avg = s.total / time.Duration(s.Count)
		return
	}

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.Count = uint64(len(sorted))
}

const reportTemplate = `
# Curve Follower Run

## Configuration
- **Ticks per second:** {{.TPS}}
- **Entities:** {{.Entities}}

## Follower
- **Ticks:** {{.Ticks}} in {{.TotalTime}}
- **Parameter:** {{printf "%.1f" .Final.Last.T}} after {{.Final.Advances}} advances
- **Orb:** {{vec .Orb}}
- **Mesh x:** {{printf "%.3f" (index .Mesh 0)}}

## Frame Times
- **Update:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, p95 {{.UpdateTime.P95}}, max {{.UpdateTime.Max}}
- **Render:** avg {{.RenderTime.Avg}}, min {{.RenderTime.Min}}, p95 {{.RenderTime.P95}}, max {{.RenderTime.Max}}

## Memory
- Heap Alloc:  {{.MemStatsStart.HeapAlloc | mb}} MB -> {{.MemStatsEnd.HeapAlloc | mb}} MB
- Total Alloc: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc | mb}} MB during the run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}- GC Pause:    {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns int64) string {
		return time.Duration(ns).String()
	},
	"vec": func(v mgl32.Vec3) string {
		return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

// Generate writes the report as Markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
