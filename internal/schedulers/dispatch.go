package schedulers

import (
	"cpu-scheduler-simulator/internal/core"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

func newRunLogger(algorithm Algorithm) *logger.Logger {
	return logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, string(algorithm)))
}

// selectProcess walks processes in order and returns the first ready process
// that no later ready process beats. better must be a strict comparison.
func selectProcess(processes []*core.Process, clock int, better func(candidate, best *core.Process) bool) *core.Process {
	var best *core.Process
	for _, p := range processes {
		if !p.Ready(clock) {
			continue
		}
		if best == nil || better(p, best) {
			best = p
		}
	}
	return best
}

// idle jumps the cpu to the next arrival. It returns false when nothing is
// left to wait for.
func idle(log *logger.Logger, cpu *core.Cpu, processes []*core.Process) bool {
	next, ok := core.NextArrival(processes)
	if !ok {
		return false
	}
	if next > cpu.Clock {
		log.Infoln("cpu idle from", cpu.Clock, "to", next)
	}
	cpu.IdleUntil(next)
	return true
}

// runToCompletion dispatches p without preemption.
func runToCompletion(log *logger.Logger, cpu *core.Cpu, p *core.Process) {
	log.Infoln("pid:", p.Job.Id, "dispatched at", cpu.Clock)
	cpu.Execute(p, p.RemainingTime)
	log.Infoln("pid:", p.Job.Id, "proccess completed at", p.FinishTime)
}

// runSlice gives p at most timeQuantum units and reports whether it finished.
func runSlice(log *logger.Logger, cpu *core.Cpu, p *core.Process, timeQuantum int) bool {
	start := cpu.Clock
	used := cpu.Execute(p, timeQuantum)
	log.Infoln("pid:", p.Job.Id, "ran", used, "units from", start)
	if p.Completed() {
		log.Infoln("pid:", p.Job.Id, "proccess completed at", p.FinishTime)
		return true
	}
	return false
}

// runPreemptive steps the clock one unit at a time, re-selecting the process
// before every unit.
func runPreemptive(log *logger.Logger, cpu *core.Cpu, processes []*core.Process, better func(candidate, best *core.Process) bool) {
	var running *core.Process
	for completed := 0; completed < len(processes); {
		p := selectProcess(processes, cpu.Clock, better)
		if p == nil {
			if !idle(log, cpu, processes) {
				return
			}
			continue
		}
		if p != running {
			log.Infoln("pid:", p.Job.Id, "context switch at", cpu.Clock)
			running = p
		}

		cpu.Execute(p, 1)
		if p.Completed() {
			log.Infoln("pid:", p.Job.Id, "proccess completed at", p.FinishTime)
			running = nil
			completed++
		}
	}
}
