package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cpu-scheduler-simulator/config"
	"cpu-scheduler-simulator/internal/report"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
	"cpu-scheduler-simulator/internal/schedulers"
	"cpu-scheduler-simulator/pkg/client"
)

var ErrInvalidArgs = errors.New("invalid args")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, args []string, w io.Writer) error {
	flags := flag.NewFlagSet("simulate", flag.ContinueOnError)
	algorithm := flags.String("algorithm", "all", "fcfs, sjf, srtf, priority, rr, hrrn, mlq or all")
	quantum := flags.Int("quantum", 0, "time quantum for rr and base quantum for mlq (0 uses config.yaml)")
	server := flags.String("server", "", "scheduler API base url; simulate locally when empty")
	configDir := flags.String("config", ".", "directory holding config.yaml")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("%w: must give a scheduling file to process", ErrInvalidArgs)
	}

	processes, err := loadProcessingFile(flags.Arg(0))
	if err != nil {
		return err
	}
	request := requests.ScheduleRequests{Processes: processes}
	if *quantum > 0 {
		request = request.WithTimeQuantum(*quantum)
	}

	var results []responses.ScheduleResponse
	if *server != "" {
		results, err = simulateRemote(ctx, client.New(*server, nil), *algorithm, request)
	} else {
		var cfg *config.SchedulerConfig
		if cfg, err = config.Load(*configDir); err != nil {
			return err
		}
		results, err = simulateLocal(cfg, *algorithm, request)
	}
	if err != nil {
		return err
	}

	for _, result := range results {
		report.Write(w, schedulers.Algorithm(result.Algorithm).Title(), result)
	}
	return nil
}

func loadProcessingFile(path string) ([]requests.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%v: error opening scheduling file", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return report.LoadProcesses(f)
}

func simulateLocal(cfg *config.SchedulerConfig, name string, request requests.ScheduleRequests) ([]responses.ScheduleResponse, error) {
	defaultQuantum := func(algorithm schedulers.Algorithm) int {
		return cfg.TimeQuantum(string(algorithm))
	}
	if name == "all" {
		return schedulers.SimulateAll(request, defaultQuantum)
	}

	algorithm, err := schedulers.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	result, err := schedulers.Simulate(schedulers.WithDefaultQuantum(request, algorithm, defaultQuantum), algorithm)
	if err != nil {
		return nil, err
	}
	return []responses.ScheduleResponse{result}, nil
}

func simulateRemote(ctx context.Context, c *client.Client, name string, request requests.ScheduleRequests) ([]responses.ScheduleResponse, error) {
	if name == "all" {
		return c.SimulateAll(ctx, request)
	}
	result, err := c.Simulate(ctx, name, request)
	if err != nil {
		return nil, err
	}
	return []responses.ScheduleResponse{result}, nil
}
