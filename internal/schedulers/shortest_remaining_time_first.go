package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

// ScheduleShortestRemainingTimeFirst is the preemptive form of sjf. Every time
// unit goes to the ready process with the least remaining time.
func ScheduleShortestRemainingTimeFirst(request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(ShortestRemainingTimeFirst)
	log.Infoln("running srtf algorithm ...")

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()
	runPreemptive(log, cpu, processes, lessRemaining)

	return generateResponse(ShortestRemainingTimeFirst, processes, cpu), nil
}

func lessRemaining(candidate, best *core.Process) bool {
	return candidate.RemainingTime < best.RemainingTime
}
