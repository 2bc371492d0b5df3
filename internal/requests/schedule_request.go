package requests

// Process describes one schedulable process. Lower Priority values run first.
type Process struct {
	Id          string `json:"id"`
	ArrivalTime int    `json:"arrival_time"`
	BurstTime   int    `json:"burst_time"`
	Priority    int    `json:"priority"`
}

type ScheduleRequests struct {
	Processes []Process `json:"processes"`
	// TimeQuantum is required by rr and mlq. For mlq it is the level 0 quantum.
	TimeQuantum *int `json:"time_quantum,omitempty"`
}

// WithTimeQuantum returns a copy of the request carrying the given quantum.
func (r ScheduleRequests) WithTimeQuantum(timeQuantum int) ScheduleRequests {
	r.TimeQuantum = &timeQuantum
	return r
}
