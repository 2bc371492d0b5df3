package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

// ScheduleShortestJobFirst is non-preemptive: at every completion the arrived
// process with the smallest burst runs next, ties going to the earlier arrival.
func ScheduleShortestJobFirst(request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(ShortestJobFirst)
	log.Infoln("running sjf algorithm ...")

	processes := core.NewProcesses(request.Processes)
	jobs := core.SortByArrival(processes)
	cpu := core.NewCpu()

	for completed := 0; completed < len(jobs); {
		shortestJob := selectProcess(jobs, cpu.Clock, shorterBurst)
		if shortestJob == nil {
			if !idle(log, cpu, jobs) {
				break
			}
			continue
		}
		runToCompletion(log, cpu, shortestJob)
		completed++
	}

	return generateResponse(ShortestJobFirst, processes, cpu), nil
}

func shorterBurst(candidate, best *core.Process) bool {
	return candidate.Job.BurstTime < best.Job.BurstTime
}
