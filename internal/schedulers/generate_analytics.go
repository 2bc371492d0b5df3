package schedulers

import (
	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/responses"
	"cpu-scheduler-simulator/internal/util"
)

func generateResponse(algorithm Algorithm, processes []*core.Process, cpu *core.Cpu) responses.ScheduleResponse {
	proccessDetails := make([]responses.ProcessResponse, 0, len(processes))
	for _, p := range processes {
		proccessDetails = append(proccessDetails, generateProcessDetails(p))
	}
	averageWaitingTime, averageTurnAroundTime := util.CalculateAverage(proccessDetails)

	metric := cpu.Metric()
	return responses.ScheduleResponse{
		Algorithm:             string(algorithm),
		GanttChart:            cpu.GanttChart(),
		TotalTime:             float64(metric.TotalTime),
		IdleTime:              float64(metric.IdleTime),
		AverageWaitingTime:    averageWaitingTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		CpuUtilization:        util.Ratio(float64(metric.UtilizationTime), float64(metric.TotalTime)),
		CpuThroughput:         util.Ratio(float64(len(processes)), float64(metric.TotalTime)),
		Details:               proccessDetails,
	}
}

func generateProcessDetails(process *core.Process) responses.ProcessResponse {
	turnAroundTime := process.FinishTime - process.Job.ArrivalTime
	waitingTime := turnAroundTime - process.Job.BurstTime

	return responses.ProcessResponse{
		ProcessId:      process.Job.Id,
		ArrivalTime:    process.Job.ArrivalTime,
		BurstTime:      process.Job.BurstTime,
		Priority:       process.Job.Priority,
		FinishTime:     process.FinishTime,
		TurnAroundTime: float64(turnAroundTime),
		WaitingTime:    float64(waitingTime),
	}
}
