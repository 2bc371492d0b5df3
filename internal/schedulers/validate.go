package schedulers

import (
	"fmt"
	"strings"

	"cpu-scheduler-simulator/internal/requests"
)

// MaxTimeUnit bounds arrival times, bursts and the whole simulated timeline so
// the clock and every quantum stay far from int overflow.
const MaxTimeUnit = 1 << 40

func validateProcesses(processes []requests.Process) error {
	seen := make(map[string]struct{}, len(processes))
	totalBurst, lastArrival := 0, 0
	for i, p := range processes {
		switch {
		case strings.TrimSpace(p.Id) == "":
			return fmt.Errorf("%w: process #%d has an empty id", ErrInvalidProcess, i+1)
		case p.ArrivalTime < 0:
			return fmt.Errorf("%w: process %s has negative arrival time %d", ErrInvalidProcess, p.Id, p.ArrivalTime)
		case p.ArrivalTime > MaxTimeUnit:
			return fmt.Errorf("%w: process %s arrives at %d, past %d", ErrInvalidProcess, p.Id, p.ArrivalTime, MaxTimeUnit)
		case p.BurstTime < 1:
			return fmt.Errorf("%w: process %s has burst time %d, want at least 1", ErrInvalidProcess, p.Id, p.BurstTime)
		case p.BurstTime > MaxTimeUnit:
			return fmt.Errorf("%w: process %s has burst time %d, past %d", ErrInvalidProcess, p.Id, p.BurstTime, MaxTimeUnit)
		case p.Priority < 1:
			return fmt.Errorf("%w: process %s has priority %d, want at least 1", ErrInvalidProcess, p.Id, p.Priority)
		}
		if _, ok := seen[p.Id]; ok {
			return fmt.Errorf("%w: duplicate process id %s", ErrInvalidProcess, p.Id)
		}
		seen[p.Id] = struct{}{}

		// the clock never passes the last arrival plus every burst
		totalBurst += p.BurstTime
		lastArrival = max(lastArrival, p.ArrivalTime)
		if totalBurst > MaxTimeUnit || lastArrival+totalBurst > MaxTimeUnit {
			return fmt.Errorf("%w: processes span more than %d time units", ErrInvalidProcess, MaxTimeUnit)
		}
	}
	return nil
}

func validateTimeQuantum(algorithm Algorithm, timeQuantum int) error {
	if timeQuantum <= 0 {
		return fmt.Errorf("%w: %s needs a positive time quantum, got %d", ErrMissingParameter, algorithm, timeQuantum)
	}
	return nil
}

// clampTimeQuantum caps a quantum at MaxTimeUnit. No process has more work
// left than that, so the cap never changes a slice.
func clampTimeQuantum(timeQuantum int) int {
	return min(timeQuantum, MaxTimeUnit)
}
