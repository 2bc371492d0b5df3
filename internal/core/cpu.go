package core

import (
	"cpu-scheduler-simulator/internal/responses"
)

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// Cpu is a single simulated processor driven by a discrete clock. It records
// the Gantt chart of everything it executes.
type Cpu struct {
	Clock int
	// OnSlice, when set, sees every Execute call before blocks are merged.
	OnSlice func(p *Process, start, units int)
	gantt   []responses.GanttBlock
	metric  CpuMetric
}

func NewCpu() *Cpu {
	return &Cpu{gantt: make([]responses.GanttBlock, 0)}
}

// Execute runs p for at most units time units starting at the current clock
// and returns the units actually consumed. A process whose remaining time
// reaches zero gets its FinishTime set to the new clock.
func (c *Cpu) Execute(p *Process, units int) int {
	if units > p.RemainingTime {
		units = p.RemainingTime
	}
	if units <= 0 {
		return 0
	}

	start := c.Clock
	c.record(p.Job.Id, units)
	c.Clock += units
	c.metric.UtilizationTime += units
	p.RemainingTime -= units
	if p.RemainingTime == 0 {
		p.FinishTime = c.Clock
	}
	if c.OnSlice != nil {
		c.OnSlice(p, start, units)
	}
	return units
}

// record extends the last block when the same process keeps running without a
// gap, otherwise it opens a new block.
func (c *Cpu) record(processId string, units int) {
	if n := len(c.gantt); n > 0 {
		last := &c.gantt[n-1]
		if last.ProcessId == processId && last.End == c.Clock {
			last.End += units
			return
		}
	}
	c.gantt = append(c.gantt, responses.GanttBlock{
		ProcessId: processId,
		Start:     c.Clock,
		End:       c.Clock + units,
	})
}

// IdleUntil moves the clock forward to t without recording a block.
func (c *Cpu) IdleUntil(t int) {
	if t <= c.Clock {
		return
	}
	c.metric.IdleTime += t - c.Clock
	c.Clock = t
}

func (c *Cpu) GanttChart() []responses.GanttBlock {
	return c.gantt
}

func (c *Cpu) Metric() CpuMetric {
	metric := c.metric
	metric.TotalTime = c.Clock
	return metric
}
