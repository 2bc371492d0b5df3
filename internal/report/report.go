package report

import (
	"fmt"
	"io"
	"strings"

	"cpu-scheduler-simulator/internal/responses"

	"github.com/olekukonko/tablewriter"
)

// Write outputs a title, the Gantt chart and the per-process table for result.
func Write(w io.Writer, title string, result responses.ScheduleResponse) {
	outputTitle(w, title)
	outputGantt(w, result.GanttChart)
	outputSchedule(w, result)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// outputGantt prints one cell per block, plus an idle cell for every gap.
func outputGantt(w io.Writer, gantt []responses.GanttBlock) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(gantt) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}

	var cells, times []string
	end := 0
	for _, b := range gantt {
		if b.Start > end {
			cells = append(cells, "idle")
			times = append(times, fmt.Sprint(end))
		}
		cells = append(cells, b.ProcessId)
		times = append(times, fmt.Sprint(b.Start))
		end = b.End
	}
	times = append(times, fmt.Sprint(end))

	_, _ = fmt.Fprint(w, "|")
	for _, cell := range cells {
		padding := strings.Repeat(" ", max(8-len(cell), 0)/2)
		_, _ = fmt.Fprint(w, padding, cell, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, strings.Join(times, "\t"))
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, result responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, 0, len(result.Details))
	for _, d := range result.Details {
		rows = append(rows, []string{
			d.ProcessId,
			fmt.Sprint(d.Priority),
			fmt.Sprint(d.BurstTime),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprintf("%.2f", d.WaitingTime),
			fmt.Sprintf("%.2f", d.TurnAroundTime),
			fmt.Sprint(d.FinishTime),
		})
	}

	table := tablewriter.NewWriter(w)
	// header formatting would turn "2.50" into "2 50" in the footer
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", result.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", result.AverageTurnAroundTime),
		fmt.Sprintf("Throughput\n%.2f/t", result.CpuThroughput)})
	table.Render()
}
