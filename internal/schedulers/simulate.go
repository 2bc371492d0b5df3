package schedulers

import (
	"fmt"
	"strings"

	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

type Algorithm string

const (
	FirstComeFirstServe        Algorithm = "fcfs"
	ShortestJobFirst           Algorithm = "sjf"
	ShortestRemainingTimeFirst Algorithm = "srtf"
	PriorityPreemptive         Algorithm = "priority"
	RoundRobin                 Algorithm = "rr"
	HighestResponseRatioNext   Algorithm = "hrrn"
	MultilevelFeedbackQueue    Algorithm = "mlq"
)

// Algorithms lists every supported algorithm in the order SimulateAll runs them.
var Algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	ShortestRemainingTimeFirst,
	PriorityPreemptive,
	RoundRobin,
	HighestResponseRatioNext,
	MultilevelFeedbackQueue,
}

var algorithmTitles = map[Algorithm]string{
	FirstComeFirstServe:        "First-come, first-serve",
	ShortestJobFirst:           "Shortest-job-first",
	ShortestRemainingTimeFirst: "Shortest-remaining-time-first",
	PriorityPreemptive:         "Priority (preemptive)",
	RoundRobin:                 "Round-robin",
	HighestResponseRatioNext:   "Highest-response-ratio-next",
	MultilevelFeedbackQueue:    "Multilevel feedback queue",
}

// ParseAlgorithm accepts the short algorithm names, case-insensitively. mlfq is
// accepted as an alias of mlq.
func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if algorithm == "mlfq" {
		return MultilevelFeedbackQueue, nil
	}
	if _, ok := algorithmTitles[algorithm]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, name)
	}
	return algorithm, nil
}

func (a Algorithm) NeedsTimeQuantum() bool {
	return a == RoundRobin || a == MultilevelFeedbackQueue
}

func (a Algorithm) Title() string {
	if title, ok := algorithmTitles[a]; ok {
		return title
	}
	return string(a)
}

// Simulate runs one algorithm over request. Each call works on its own copy of
// the processes, so the request can be reused across algorithms.
func Simulate(request requests.ScheduleRequests, algorithm Algorithm) (responses.ScheduleResponse, error) {
	switch algorithm {
	case FirstComeFirstServe:
		return ScheduleFirstComeFirstServe(request)
	case ShortestJobFirst:
		return ScheduleShortestJobFirst(request)
	case ShortestRemainingTimeFirst:
		return ScheduleShortestRemainingTimeFirst(request)
	case PriorityPreemptive:
		return SchedulePriority(request)
	case RoundRobin:
		if request.TimeQuantum == nil {
			return responses.ScheduleResponse{}, fmt.Errorf("%w: rr needs time_quantum", ErrMissingParameter)
		}
		return ScheduleRoundRobin(request, *request.TimeQuantum)
	case HighestResponseRatioNext:
		return ScheduleHighestResponseRatioNext(request)
	case MultilevelFeedbackQueue:
		if request.TimeQuantum == nil {
			return responses.ScheduleResponse{}, fmt.Errorf("%w: mlq needs time_quantum", ErrMissingParameter)
		}
		return ScheduleMultilevelFeedbackQueue(request, *request.TimeQuantum)
	default:
		return responses.ScheduleResponse{}, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, string(algorithm))
	}
}

func SimulateByName(request requests.ScheduleRequests, name string) (responses.ScheduleResponse, error) {
	algorithm, err := ParseAlgorithm(name)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	return Simulate(request, algorithm)
}

// QuantumFunc supplies the time quantum for an algorithm whose request has none.
type QuantumFunc func(Algorithm) int

// SimulateAll runs every algorithm in Algorithms order. defaultQuantum may be
// nil, in which case rr and mlq rely on the request's own time quantum.
func SimulateAll(request requests.ScheduleRequests, defaultQuantum QuantumFunc) ([]responses.ScheduleResponse, error) {
	results := make([]responses.ScheduleResponse, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		result, err := Simulate(WithDefaultQuantum(request, algorithm, defaultQuantum), algorithm)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// WithDefaultQuantum fills in a missing time quantum for algorithms that need one.
func WithDefaultQuantum(request requests.ScheduleRequests, algorithm Algorithm, defaultQuantum QuantumFunc) requests.ScheduleRequests {
	if request.TimeQuantum != nil || defaultQuantum == nil || !algorithm.NeedsTimeQuantum() {
		return request
	}
	return request.WithTimeQuantum(defaultQuantum(algorithm))
}
