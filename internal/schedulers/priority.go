package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

// SchedulePriority is preemptive priority scheduling. Lower priority values run
// first and equal priorities keep input order.
func SchedulePriority(request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(PriorityPreemptive)
	log.Infoln("running priority algorithm ...")

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()
	runPreemptive(log, cpu, processes, higherPriority)

	return generateResponse(PriorityPreemptive, processes, cpu), nil
}

func higherPriority(candidate, best *core.Process) bool {
	return candidate.Job.Priority < best.Job.Priority
}
