package driver

import (
	"time"

	"vuejsx/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while a file is transformed.
type PhaseObserver func(PhaseEvent)

// phases couples the timer with an optional observer.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
}

func (p phases) begin(name string) int {
	idx := p.timer.Begin(name)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return idx
}

func (p phases) end(idx int, name, note string) {
	p.timer.End(idx, note)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: p.timer.Elapsed(idx)})
	}
}

// stageObserver turns phase boundaries into progress events for file.
func stageObserver(sink ProgressSink, file string) PhaseObserver {
	if sink == nil {
		return nil
	}
	return func(ev PhaseEvent) {
		stage := Stage(ev.Name)
		switch stage {
		case StageParse, StageTransform, StagePrint, StageWrite:
		default:
			return
		}
		status := StatusWorking
		if ev.Status == PhaseEnd {
			status = StatusDone
		}
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Elapsed: ev.Elapsed})
	}
}
