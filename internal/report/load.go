package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpu-scheduler-simulator/internal/requests"
)

// LoadProcesses reads rows of id,arrival,burst[,priority]. Priority defaults
// to 1. Blank lines and lines starting with # are skipped.
func LoadProcesses(r io.Reader) ([]requests.Process, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	processes := make([]requests.Process, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("row %d: want 3 or 4 columns, got %d", i+1, len(row))
		}
		p := requests.Process{Id: strings.TrimSpace(row[0]), Priority: 1}
		fields := []*int{&p.ArrivalTime, &p.BurstTime, &p.Priority}
		for j, column := range row[1:] {
			value, err := strconv.Atoi(strings.TrimSpace(column))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+2, err)
			}
			*fields[j] = value
		}
		processes = append(processes, p)
	}
	return processes, nil
}
