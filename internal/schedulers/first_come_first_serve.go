package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

// ScheduleFirstComeFirstServe runs processes to completion in arrival order.
func ScheduleFirstComeFirstServe(request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(FirstComeFirstServe)
	log.Infoln("running fcfs algorithm ...")

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()

	// sort jobs by arrival time
	for _, p := range core.SortByArrival(processes) {
		cpu.IdleUntil(p.Job.ArrivalTime)
		runToCompletion(log, cpu, p)
	}

	return generateResponse(FirstComeFirstServe, processes, cpu), nil
}
