package core

import (
	"sort"

	"cpu-scheduler-simulator/internal/requests"
)

// Process is the run-local view of a requested process. Every simulation run
// builds its own set with NewProcesses so the caller's slice is never touched.
type Process struct {
	Job           *requests.Process
	RemainingTime int
	QueueLevel    int
	FinishTime    int
}

func NewProcesses(jobs []requests.Process) []*Process {
	processes := make([]*Process, len(jobs))
	for i := range jobs {
		job := jobs[i]
		processes[i] = &Process{
			Job:           &job,
			RemainingTime: job.BurstTime,
		}
	}
	return processes
}

func (p *Process) Completed() bool {
	return p.RemainingTime == 0
}

// Ready reports whether p has arrived by clock and still needs the cpu.
func (p *Process) Ready(clock int) bool {
	return !p.Completed() && p.Job.ArrivalTime <= clock
}

// SortByArrival returns a new slice ordered by arrival time, keeping input
// order between processes that arrive together.
func SortByArrival(processes []*Process) []*Process {
	sorted := make([]*Process, len(processes))
	copy(sorted, processes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Job.ArrivalTime < sorted[j].Job.ArrivalTime
	})
	return sorted
}

// NextArrival returns the earliest arrival time among processes that are not
// completed yet. ok is false when every process is completed.
func NextArrival(processes []*Process) (arrival int, ok bool) {
	for _, p := range processes {
		if p.Completed() {
			continue
		}
		if !ok || p.Job.ArrivalTime < arrival {
			arrival = p.Job.ArrivalTime
			ok = true
		}
	}
	return arrival, ok
}

func AnyReady(processes []*Process, clock int) bool {
	for _, p := range processes {
		if p.Ready(clock) {
			return true
		}
	}
	return false
}
