package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"

	"github.com/Moonlight-Companies/gologger/logger"
)

// we have 3 levels: base, base*2, base*4
const multilevelFeedbackQueueLevels = 3

// ScheduleMultilevelFeedbackQueue uses the round robin sweep, but each process
// gets the quantum of its own level and drops one level whenever it uses a
// whole slice without finishing.
func ScheduleMultilevelFeedbackQueue(request requests.ScheduleRequests, baseTimeQuantum int) (responses.ScheduleResponse, error) {
	if err := validateTimeQuantum(MultilevelFeedbackQueue, baseTimeQuantum); err != nil {
		return responses.ScheduleResponse{}, err
	}
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(MultilevelFeedbackQueue)
	log.Infoln("mlfq algorithm with base timeQuantum = ", baseTimeQuantum)

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()
	multilevelFeedbackQueue(log, cpu, processes, clampTimeQuantum(baseTimeQuantum))

	return generateResponse(MultilevelFeedbackQueue, processes, cpu), nil
}

func multilevelFeedbackQueue(log *logger.Logger, cpu *core.Cpu, processes []*core.Process, baseTimeQuantum int) {
	for completed := 0; completed < len(processes); {
		for _, p := range processes {
			if !p.Ready(cpu.Clock) {
				continue
			}
			if runSlice(log, cpu, p, levelTimeQuantum(baseTimeQuantum, p.QueueLevel)) {
				completed++
				continue
			}
			p.QueueLevel = nextQueueLevel(p.QueueLevel)
		}

		if completed < len(processes) && !core.AnyReady(processes, cpu.Clock) {
			if !idle(log, cpu, processes) {
				return
			}
		}
	}
}

// levelTimeQuantum doubles the base quantum per level. A base at or below
// MaxTimeUnit cannot overflow for the three levels.
func levelTimeQuantum(baseTimeQuantum, level int) int {
	return baseTimeQuantum << level
}

func nextQueueLevel(level int) int {
	if level+1 >= multilevelFeedbackQueueLevels {
		return multilevelFeedbackQueueLevels - 1
	}
	return level + 1
}
