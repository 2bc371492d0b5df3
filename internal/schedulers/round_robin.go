package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"

	"github.com/Moonlight-Companies/gologger/logger"
)

// ScheduleRoundRobin sweeps the process list in input order, giving every ready
// process one slice of at most timeQuantum units per pass. A preempted process
// waits for the next pass instead of being requeued behind later arrivals.
func ScheduleRoundRobin(request requests.ScheduleRequests, timeQuantum int) (responses.ScheduleResponse, error) {
	if err := validateTimeQuantum(RoundRobin, timeQuantum); err != nil {
		return responses.ScheduleResponse{}, err
	}
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(RoundRobin)
	log.Infoln("running roundRobin algorithm with timeQuantum = ", timeQuantum)

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()
	roundRobin(log, cpu, processes, clampTimeQuantum(timeQuantum))

	return generateResponse(RoundRobin, processes, cpu), nil
}

func roundRobin(log *logger.Logger, cpu *core.Cpu, processes []*core.Process, timeQuantum int) {
	for completed := 0; completed < len(processes); {
		for _, p := range processes {
			if !p.Ready(cpu.Clock) {
				continue
			}
			if runSlice(log, cpu, p, timeQuantum) {
				completed++
			}
		}

		if completed < len(processes) && !core.AnyReady(processes, cpu.Clock) {
			if !idle(log, cpu, processes) {
				return
			}
		}
	}
}
