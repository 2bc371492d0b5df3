package schedulers

import (
	"math"
	"math/rand"
	"testing"

	"cpu-scheduler-simulator/internal/core"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
	"cpu-scheduler-simulator/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// five processes used by the interactive simulator as its default table
var defaultProcesses = []requests.Process{
	{Id: "P1", ArrivalTime: 0, BurstTime: 7, Priority: 2},
	{Id: "P2", ArrivalTime: 2, BurstTime: 4, Priority: 1},
	{Id: "P3", ArrivalTime: 4, BurstTime: 1, Priority: 3},
	{Id: "P4", ArrivalTime: 5, BurstTime: 4, Priority: 2},
	{Id: "P5", ArrivalTime: 6, BurstTime: 3, Priority: 1},
}

func block(id string, start, end int) responses.GanttBlock {
	return responses.GanttBlock{ProcessId: id, Start: start, End: end}
}

func quantum(q int) *int {
	return &q
}

type processTimes struct {
	finish, waiting, turnaround int
}

func assertTimes(t *testing.T, want map[string]processTimes, got responses.ScheduleResponse) {
	t.Helper()
	require.Len(t, got.Details, len(want))
	for _, d := range got.Details {
		w, ok := want[d.ProcessId]
		require.True(t, ok, "unexpected process %s", d.ProcessId)
		assert.Equal(t, w.finish, d.FinishTime, "finish time of %s", d.ProcessId)
		assert.Equal(t, float64(w.waiting), d.WaitingTime, "waiting time of %s", d.ProcessId)
		assert.Equal(t, float64(w.turnaround), d.TurnAroundTime, "turnaround time of %s", d.ProcessId)
	}
}

func TestScheduleFirstComeFirstServe(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 7, Priority: 1},
		{Id: "P2", ArrivalTime: 2, BurstTime: 4, Priority: 1},
		{Id: "P3", ArrivalTime: 4, BurstTime: 1, Priority: 1},
	}}

	got, err := ScheduleFirstComeFirstServe(request)
	require.NoError(t, err)

	assert.Equal(t, "fcfs", got.Algorithm)
	assert.Equal(t, []responses.GanttBlock{block("P1", 0, 7), block("P2", 7, 11), block("P3", 11, 12)}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 7, waiting: 0, turnaround: 7},
		"P2": {finish: 11, waiting: 5, turnaround: 9},
		"P3": {finish: 12, waiting: 7, turnaround: 8},
	}, got)
	assert.Equal(t, 4.0, got.AverageWaitingTime)
	assert.Equal(t, 8.0, got.AverageTurnAroundTime)
	assert.Equal(t, 12.0, got.TotalTime)
	assert.Equal(t, 0.0, got.IdleTime)
	assert.Equal(t, 1.0, got.CpuUtilization)
	assert.Equal(t, 0.25, got.CpuThroughput)
}

func TestScheduleFirstComeFirstServe_ArrivalOrderAndIdleGap(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "B", ArrivalTime: 10, BurstTime: 2, Priority: 1},
		{Id: "A", ArrivalTime: 3, BurstTime: 2, Priority: 1},
		{Id: "C", ArrivalTime: 3, BurstTime: 1, Priority: 1},
	}}

	got, err := ScheduleFirstComeFirstServe(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{block("A", 3, 5), block("C", 5, 6), block("B", 10, 12)}, got.GanttChart)
	assert.Equal(t, "B", got.Details[0].ProcessId, "details keep input order")
	assert.Equal(t, 7.0, got.IdleTime)
	assert.Equal(t, 12.0, got.TotalTime)
}

func TestScheduleShortestJobFirst(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 7, Priority: 1},
		{Id: "P2", ArrivalTime: 2, BurstTime: 4, Priority: 1},
		{Id: "P3", ArrivalTime: 4, BurstTime: 1, Priority: 1},
		{Id: "P4", ArrivalTime: 5, BurstTime: 4, Priority: 1},
	}}

	got, err := ScheduleShortestJobFirst(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 7),
		block("P3", 7, 8),
		block("P2", 8, 12),
		block("P4", 12, 16),
	}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 7, waiting: 0, turnaround: 7},
		"P2": {finish: 12, waiting: 6, turnaround: 10},
		"P3": {finish: 8, waiting: 3, turnaround: 4},
		"P4": {finish: 16, waiting: 7, turnaround: 11},
	}, got)
	assert.Equal(t, 4.0, got.AverageWaitingTime)
	assert.Equal(t, 8.0, got.AverageTurnAroundTime)
}

func TestScheduleShortestJobFirst_JumpsOverIdleTime(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 3, BurstTime: 2, Priority: 1},
		{Id: "P2", ArrivalTime: 10, BurstTime: 1, Priority: 1},
	}}

	got, err := ScheduleShortestJobFirst(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{block("P1", 3, 5), block("P2", 10, 11)}, got.GanttChart)
	assert.Equal(t, 8.0, got.IdleTime)
	assert.Equal(t, 0.0, got.AverageWaitingTime)
}

func TestScheduleShortestRemainingTimeFirst(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 7, Priority: 1},
		{Id: "P2", ArrivalTime: 2, BurstTime: 4, Priority: 1},
		{Id: "P3", ArrivalTime: 4, BurstTime: 1, Priority: 1},
		{Id: "P4", ArrivalTime: 5, BurstTime: 4, Priority: 1},
	}}

	got, err := ScheduleShortestRemainingTimeFirst(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 2),
		block("P2", 2, 4),
		block("P3", 4, 5),
		block("P2", 5, 7),
		block("P4", 7, 11),
		block("P1", 11, 16),
	}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 16, waiting: 9, turnaround: 16},
		"P2": {finish: 7, waiting: 1, turnaround: 5},
		"P3": {finish: 5, waiting: 0, turnaround: 1},
		"P4": {finish: 11, waiting: 2, turnaround: 6},
	}, got)
	assert.Equal(t, 3.0, got.AverageWaitingTime)
	assert.Equal(t, 7.0, got.AverageTurnAroundTime)
}

func TestScheduleShortestRemainingTimeFirst_TieKeepsInputOrder(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "A", ArrivalTime: 0, BurstTime: 2, Priority: 1},
		{Id: "B", ArrivalTime: 0, BurstTime: 2, Priority: 1},
	}}

	got, err := ScheduleShortestRemainingTimeFirst(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{block("A", 0, 2), block("B", 2, 4)}, got.GanttChart)
}

func TestSchedulePriority(t *testing.T) {
	got, err := SchedulePriority(requests.ScheduleRequests{Processes: defaultProcesses})
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 2),
		block("P2", 2, 6),
		block("P5", 6, 9),
		block("P1", 9, 14),
		block("P4", 14, 18),
		block("P3", 18, 19),
	}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 14, waiting: 7, turnaround: 14},
		"P2": {finish: 6, waiting: 0, turnaround: 4},
		"P3": {finish: 19, waiting: 14, turnaround: 15},
		"P4": {finish: 18, waiting: 9, turnaround: 13},
		"P5": {finish: 9, waiting: 0, turnaround: 3},
	}, got)
	assert.Equal(t, 6.0, got.AverageWaitingTime)
	assert.Equal(t, 9.8, got.AverageTurnAroundTime)
}

func TestScheduleRoundRobin(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{Id: "P2", ArrivalTime: 1, BurstTime: 3, Priority: 1},
	}}

	got, err := ScheduleRoundRobin(request, 2)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 2),
		block("P2", 2, 4),
		block("P1", 4, 6),
		block("P2", 6, 7),
		block("P1", 7, 8),
	}, got.GanttChart)
	for _, b := range got.GanttChart {
		assert.LessOrEqual(t, b.Duration(), 2)
	}
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 8, waiting: 3, turnaround: 8},
		"P2": {finish: 7, waiting: 3, turnaround: 6},
	}, got)
	assert.Equal(t, 3.0, got.AverageWaitingTime)
	assert.Equal(t, 7.0, got.AverageTurnAroundTime)
}

func TestScheduleRoundRobin_IdleJumpAndMerge(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 2, Priority: 1},
		{Id: "P2", ArrivalTime: 5, BurstTime: 3, Priority: 1},
	}}

	got, err := ScheduleRoundRobin(request, 2)
	require.NoError(t, err)

	// P2 runs alone in consecutive passes, so its two slices merge.
	assert.Equal(t, []responses.GanttBlock{block("P1", 0, 2), block("P2", 5, 8)}, got.GanttChart)
	assert.Equal(t, 3.0, got.IdleTime)
	assert.Equal(t, 8.0, got.TotalTime)
}

func TestScheduleRoundRobin_SweepsInInputOrder(t *testing.T) {
	// A FIFO ready queue would run C before B. The sweep visits B first
	// because it sits earlier in the list and has arrived by t=2.
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "A", ArrivalTime: 0, BurstTime: 4, Priority: 1},
		{Id: "B", ArrivalTime: 1, BurstTime: 2, Priority: 1},
		{Id: "C", ArrivalTime: 0, BurstTime: 2, Priority: 1},
	}}

	got, err := ScheduleRoundRobin(request, 2)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("A", 0, 2),
		block("B", 2, 4),
		block("C", 4, 6),
		block("A", 6, 8),
	}, got.GanttChart)
}

func TestScheduleHighestResponseRatioNext(t *testing.T) {
	got, err := ScheduleHighestResponseRatioNext(requests.ScheduleRequests{Processes: defaultProcesses})
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 7),
		block("P3", 7, 8),
		block("P2", 8, 12),
		block("P5", 12, 15),
		block("P4", 15, 19),
	}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 7, waiting: 0, turnaround: 7},
		"P2": {finish: 12, waiting: 6, turnaround: 10},
		"P3": {finish: 8, waiting: 3, turnaround: 4},
		"P4": {finish: 19, waiting: 10, turnaround: 14},
		"P5": {finish: 15, waiting: 6, turnaround: 9},
	}, got)
	assert.Equal(t, 5.0, got.AverageWaitingTime)
	assert.Equal(t, 8.8, got.AverageTurnAroundTime)
}

func TestResponseRatio(t *testing.T) {
	p := requests.Process{Id: "P2", ArrivalTime: 2, BurstTime: 4, Priority: 1}
	assert.Equal(t, 1.0, ResponseRatio(p, 2))
	assert.Equal(t, 2.25, ResponseRatio(p, 7))
}

func TestScheduleHighestResponseRatioNext_TieKeepsInputOrder(t *testing.T) {
	// at t=2 both A and B have ratio 2
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "X", ArrivalTime: 0, BurstTime: 2, Priority: 1},
		{Id: "A", ArrivalTime: 0, BurstTime: 2, Priority: 1},
		{Id: "B", ArrivalTime: 1, BurstTime: 1, Priority: 1},
	}}

	got, err := ScheduleHighestResponseRatioNext(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{block("X", 0, 2), block("A", 2, 4), block("B", 4, 5)}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"X": {finish: 2, waiting: 0, turnaround: 2},
		"A": {finish: 4, waiting: 2, turnaround: 4},
		"B": {finish: 5, waiting: 3, turnaround: 4},
	}, got)
}

func TestScheduleHighestResponseRatioNext_LongBursts(t *testing.T) {
	// (wait + burst) * burst for A is about 1.2e19 at t=4e9
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "X", ArrivalTime: 0, BurstTime: 4_000_000_000, Priority: 1},
		{Id: "A", ArrivalTime: 1, BurstTime: 3_000_000_000, Priority: 1},
		{Id: "B", ArrivalTime: 1, BurstTime: 1, Priority: 1},
	}}

	got, err := ScheduleHighestResponseRatioNext(request)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("X", 0, 4_000_000_000),
		block("B", 4_000_000_000, 4_000_000_001),
		block("A", 4_000_000_001, 7_000_000_001),
	}, got.GanttChart)
}

func TestHigherResponseRatio(t *testing.T) {
	process := func(arrival, burst int) *core.Process {
		return &core.Process{Job: &requests.Process{Id: "P", ArrivalTime: arrival, BurstTime: burst, Priority: 1}}
	}

	long, short := process(1, 3_000_000_000), process(1, 1)
	assert.True(t, higherResponseRatio(short, long, 4_000_000_000))
	assert.False(t, higherResponseRatio(long, short, 4_000_000_000))

	// ratios 2 and (2^41-1)/(2^40-1), both products past 2^64
	even, above := process(0, 1<<40), process(0, 1<<40-1)
	assert.True(t, higherResponseRatio(above, even, 1<<40))
	assert.False(t, higherResponseRatio(even, above, 1<<40))

	// equal ratios never win
	a, b := process(0, 2), process(1, 1)
	assert.False(t, higherResponseRatio(a, b, 2))
	assert.False(t, higherResponseRatio(b, a, 2))
}

func TestScheduleMultilevelFeedbackQueue(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "P1", ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{Id: "P2", ArrivalTime: 1, BurstTime: 3, Priority: 1},
	}}

	got, err := ScheduleMultilevelFeedbackQueue(request, 1)
	require.NoError(t, err)

	assert.Equal(t, []responses.GanttBlock{
		block("P1", 0, 1),
		block("P2", 1, 2),
		block("P1", 2, 4),
		block("P2", 4, 6),
		block("P1", 6, 8),
	}, got.GanttChart)
	assertTimes(t, map[string]processTimes{
		"P1": {finish: 8, waiting: 3, turnaround: 8},
		"P2": {finish: 6, waiting: 2, turnaround: 5},
	}, got)
}

func TestScheduleMultilevelFeedbackQueue_LevelsAreCapped(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "A", ArrivalTime: 0, BurstTime: 20, Priority: 1},
		{Id: "B", ArrivalTime: 0, BurstTime: 20, Priority: 1},
	}}

	got, err := ScheduleMultilevelFeedbackQueue(request, 1)
	require.NoError(t, err)

	durations := make([]int, 0, len(got.GanttChart))
	for _, b := range got.GanttChart {
		durations = append(durations, b.Duration())
	}
	assert.Equal(t, []int{1, 1, 2, 2, 4, 4, 4, 4, 4, 4, 4, 4, 1, 1}, durations)
	assertTimes(t, map[string]processTimes{
		"A": {finish: 39, waiting: 19, turnaround: 39},
		"B": {finish: 40, waiting: 20, turnaround: 40},
	}, got)
}

func TestLevelTimeQuantum(t *testing.T) {
	assert.Equal(t, 3, levelTimeQuantum(3, 0))
	assert.Equal(t, 6, levelTimeQuantum(3, 1))
	assert.Equal(t, 12, levelTimeQuantum(3, 2))

	level := 0
	for i := 0; i < 10; i++ {
		level = nextQueueLevel(level)
	}
	assert.Equal(t, 2, level)
}

func TestScheduleQuantumLargerThanAnyBurst(t *testing.T) {
	request := requests.ScheduleRequests{Processes: []requests.Process{
		{Id: "A", ArrivalTime: 0, BurstTime: 3, Priority: 1},
		{Id: "B", ArrivalTime: 1, BurstTime: 2, Priority: 1},
	}}
	want := []responses.GanttBlock{block("A", 0, 3), block("B", 3, 5)}

	got, err := ScheduleRoundRobin(request, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, want, got.GanttChart)

	got, err = ScheduleMultilevelFeedbackQueue(request, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, want, got.GanttChart)

	for level := 0; level < multilevelFeedbackQueueLevels; level++ {
		assert.Equal(t, MaxTimeUnit<<level, levelTimeQuantum(clampTimeQuantum(math.MaxInt), level))
	}
}

func TestEmptyInput(t *testing.T) {
	for _, algorithm := range Algorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			got, err := Simulate(requests.ScheduleRequests{TimeQuantum: quantum(2)}, algorithm)
			require.NoError(t, err)

			assert.NotNil(t, got.GanttChart)
			assert.Empty(t, got.GanttChart)
			assert.Empty(t, got.Details)
			assert.Zero(t, got.AverageWaitingTime)
			assert.Zero(t, got.AverageTurnAroundTime)
			assert.Zero(t, got.CpuUtilization)
			assert.Zero(t, got.CpuThroughput)
		})
	}
}

func randomRequest(r *rand.Rand, n int) requests.ScheduleRequests {
	processes := make([]requests.Process, n)
	for i := range processes {
		processes[i] = requests.Process{
			Id:          "P" + string(rune('A'+i)),
			ArrivalTime: r.Intn(12),
			BurstTime:   1 + r.Intn(8),
			Priority:    1 + r.Intn(4),
		}
	}
	return requests.ScheduleRequests{Processes: processes}.WithTimeQuantum(1 + r.Intn(4))
}

func TestSimulate_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(4600))
	for round := 0; round < 40; round++ {
		request := randomRequest(r, 1+r.Intn(8))
		before := append([]requests.Process(nil), request.Processes...)
		assertSlices(t, request)

		for _, algorithm := range Algorithms {
			got, err := Simulate(request, algorithm)
			require.NoError(t, err)
			assert.Equal(t, before, request.Processes, "%s mutated its input", algorithm)

			require.Len(t, got.Details, len(request.Processes))
			var waitingSum, turnaroundSum float64
			for i, d := range got.Details {
				p := request.Processes[i]
				assert.Equal(t, p.Id, d.ProcessId)
				assert.GreaterOrEqual(t, d.FinishTime, p.ArrivalTime+p.BurstTime)
				assert.GreaterOrEqual(t, d.WaitingTime, 0.0)
				assert.Equal(t, d.TurnAroundTime-float64(p.BurstTime), d.WaitingTime)
				waitingSum += d.WaitingTime
				turnaroundSum += d.TurnAroundTime
			}
			count := float64(len(got.Details))
			assert.Equal(t, util.Round(waitingSum/count, 2), got.AverageWaitingTime)
			assert.Equal(t, util.Round(turnaroundSum/count, 2), got.AverageTurnAroundTime)

			executed := map[string]int{}
			blocks := map[string]int{}
			lastEnd := 0
			for _, b := range got.GanttChart {
				assert.Less(t, b.Start, b.End)
				assert.GreaterOrEqual(t, b.Start, lastEnd, "%s blocks overlap", algorithm)
				lastEnd = b.End
				executed[b.ProcessId] += b.Duration()
				blocks[b.ProcessId]++
			}
			for _, p := range request.Processes {
				assert.Equal(t, p.BurstTime, executed[p.Id], "%s executed %s", algorithm, p.Id)
			}

			switch algorithm {
			case FirstComeFirstServe, ShortestJobFirst, HighestResponseRatioNext:
				for _, p := range request.Processes {
					assert.Equal(t, 1, blocks[p.Id], "%s interrupted %s", algorithm, p.Id)
				}
			}

			again, err := Simulate(request, algorithm)
			require.NoError(t, err)
			assert.Equal(t, got, again, "%s is not deterministic", algorithm)
		}
	}
}

// assertSlices replays round robin and mlfq with a slice hook. Every round robin
// slice is min(remaining, quantum). The k-th mlfq slice of a process gets the
// quantum of level min(k, 2).
func assertSlices(t *testing.T, request requests.ScheduleRequests) {
	t.Helper()
	q := *request.TimeQuantum

	cpu := core.NewCpu()
	cpu.OnSlice = func(p *core.Process, start, units int) {
		assert.GreaterOrEqual(t, start, p.Job.ArrivalTime)
		assert.Equal(t, min(p.RemainingTime+units, q), units, "rr slice of %s at %d", p.Job.Id, start)
	}
	processes := core.NewProcesses(request.Processes)
	roundRobin(newRunLogger(RoundRobin), cpu, processes, q)
	for _, p := range processes {
		assert.True(t, p.Completed(), "rr left %s unfinished", p.Job.Id)
	}

	taken := map[string]int{}
	cpu = core.NewCpu()
	cpu.OnSlice = func(p *core.Process, start, units int) {
		level := min(taken[p.Job.Id], multilevelFeedbackQueueLevels-1)
		taken[p.Job.Id]++
		assert.Equal(t, level, p.QueueLevel, "mlfq level of %s at %d", p.Job.Id, start)
		limit := levelTimeQuantum(q, level)
		assert.Equal(t, min(p.RemainingTime+units, limit), units, "mlfq slice of %s at %d", p.Job.Id, start)
	}
	processes = core.NewProcesses(request.Processes)
	multilevelFeedbackQueue(newRunLogger(MultilevelFeedbackQueue), cpu, processes, q)
	for _, p := range processes {
		assert.True(t, p.Completed(), "mlfq left %s unfinished", p.Job.Id)
		assert.LessOrEqual(t, p.QueueLevel, multilevelFeedbackQueueLevels-1)
	}
}
