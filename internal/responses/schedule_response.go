package responses

type GanttBlock struct {
	ProcessId string `json:"process_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

func (b GanttBlock) Duration() int {
	return b.End - b.Start
}

type ProcessResponse struct {
	ProcessId      string  `json:"process_id"`
	ArrivalTime    int     `json:"arrival_time"`
	BurstTime      int     `json:"burst_time"`
	Priority       int     `json:"priority"`
	FinishTime     int     `json:"finish_time"`
	TurnAroundTime float64 `json:"turn_around_time"`
	WaitingTime    float64 `json:"waiting_time"`
}
type ScheduleResponse struct {
	Algorithm             string            `json:"algorithm"`
	GanttChart            []GanttBlock      `json:"gantt_chart"`
	TotalTime             float64           `json:"total_time"`
	IdleTime              float64           `json:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	Details               []ProcessResponse `json:"details"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AlgorithmResponse struct {
	Name         string `json:"name"`
	NeedsQuantum bool   `json:"needs_quantum"`
}
