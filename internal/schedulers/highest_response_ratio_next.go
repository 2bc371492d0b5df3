package schedulers

import (
	"math/bits"

	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

// ScheduleHighestResponseRatioNext is non-preemptive. At every completion the
// arrived process with the highest (wait + burst) / burst runs next.
func ScheduleHighestResponseRatioNext(request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	if err := validateProcesses(request.Processes); err != nil {
		return responses.ScheduleResponse{}, err
	}
	log := newRunLogger(HighestResponseRatioNext)
	log.Infoln("running hrrn algorithm ...")

	processes := core.NewProcesses(request.Processes)
	cpu := core.NewCpu()

	for completed := 0; completed < len(processes); {
		clock := cpu.Clock
		selected := selectProcess(processes, clock, func(candidate, best *core.Process) bool {
			return higherResponseRatio(candidate, best, clock)
		})
		if selected == nil {
			if !idle(log, cpu, processes) {
				break
			}
			continue
		}
		log.Infoln("pid:", selected.Job.Id, "response ratio", ResponseRatio(*selected.Job, clock))
		runToCompletion(log, cpu, selected)
		completed++
	}

	return generateResponse(HighestResponseRatioNext, processes, cpu), nil
}

// ResponseRatio is (wait + burst) / burst for a process observed at clock.
func ResponseRatio(p requests.Process, clock int) float64 {
	waitTime := clock - p.ArrivalTime
	return float64(waitTime+p.BurstTime) / float64(p.BurstTime)
}

// higherResponseRatio compares ratios by cross multiplication so equal ratios
// compare equal exactly. The products are taken as 128 bit values since
// (wait + burst) * burst does not fit in 64 bits for long runs.
func higherResponseRatio(candidate, best *core.Process, clock int) bool {
	c, b := candidate.Job, best.Job
	cHi, cLo := bits.Mul64(uint64(clock-c.ArrivalTime+c.BurstTime), uint64(b.BurstTime))
	bHi, bLo := bits.Mul64(uint64(clock-b.ArrivalTime+b.BurstTime), uint64(c.BurstTime))
	return cHi > bHi || (cHi == bHi && cLo > bLo)
}
