// Package observ measures the phases of a file run (cache, parse, transform,
// print) and folds per-file reports into run totals.
package observ

import (
	"fmt"
	"strings"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer tracks the phases of one file. Not safe for concurrent use: every
// worker owns its timer.
type Timer struct {
	now    func() time.Time
	phases []phase
}

// NewTimer creates a timer on the wall clock.
func NewTimer() *Timer { return NewTimerWithClock(time.Now) }

// NewTimerWithClock creates a timer on a custom clock.
func NewTimerWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, phases: make([]phase, 0, 4)}
}

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: t.now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index; out-of-range indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = t.now().Sub(p.start)
	p.note = note
}

// Elapsed returns the duration of a finished phase.
func (t *Timer) Elapsed(idx int) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	return t.phases[idx].dur
}

// PhaseReport is one measured phase, ready for serialization.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report агрегирует фазы одного файла или всего прогона.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.dur
		report.Phases[i] = PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note}
	}
	report.TotalMS = millis(total)
	return report
}

// Phase looks a phase up by name.
func (r Report) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}

// Merge sums reports phase by phase. Phases keep the order they were first
// seen in; the note counts how many reports carried the phase.
func Merge(reports ...*Report) Report {
	var out Report
	index := make(map[string]int)
	counts := make([]int, 0, 4)
	for _, r := range reports {
		if r == nil {
			continue
		}
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, ok := index[p.Name]
			if !ok {
				i = len(out.Phases)
				index[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
				counts = append(counts, 0)
			}
			out.Phases[i].DurationMS += p.DurationMS
			counts[i]++
		}
	}
	for i := range out.Phases {
		out.Phases[i].Note = fmt.Sprintf("%d files", counts[i])
	}
	return out
}

// Line renders the report as "name X ms, name Y ms".
func (r Report) Line() string {
	parts := make([]string, 0, len(r.Phases))
	for _, p := range r.Phases {
		parts = append(parts, fmt.Sprintf("%s %.2f ms", p.Name, p.DurationMS))
	}
	return strings.Join(parts, ", ")
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
