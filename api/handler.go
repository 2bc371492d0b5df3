package api

import (
	"errors"

	"cpu-scheduler-simulator/config"
	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
	"cpu-scheduler-simulator/internal/schedulers"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/gofiber/fiber/v2"
)

type SchedulerHandler interface {
	Simulate(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	HighestResponseRatioNext(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Algorithms(ctx *fiber.Ctx) error
}
type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
	log    *logger.Logger
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{
		config: config,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "api")),
	}
}

// RegisterRoutes mounts the v1 scheduler routes under router.
func RegisterRoutes(router fiber.Router, handler SchedulerHandler) {
	v1 := router.Group("/v1")
	{
		v1.Get("/algorithms", handler.Algorithms)
		v1.Post("/simulate/:algorithm", handler.Simulate)
		v1.Post("/all", handler.AllAlgorithms)

		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/hrrn", handler.HighestResponseRatioNext)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/mlq", handler.MultilevelFeedbackQueue)
	}
}

func (s *SchedulerHandlerImpl) Simulate(ctx *fiber.Ctx) error {
	algorithm, err := schedulers.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.schedule(ctx, algorithm)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityPreemptive)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) HighestResponseRatioNext(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.HighestResponseRatioNext)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.MultilevelFeedbackQueue)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, ok, err := s.parseRequest(ctx)
	if !ok {
		return err
	}
	results, err := schedulers.SimulateAll(request, s.defaultQuantum)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(results)
}

func (s *SchedulerHandlerImpl) Algorithms(ctx *fiber.Ctx) error {
	algorithms := make([]responses.AlgorithmResponse, 0, len(schedulers.Algorithms))
	for _, algorithm := range schedulers.Algorithms {
		algorithms = append(algorithms, responses.AlgorithmResponse{
			Name:         string(algorithm),
			NeedsQuantum: algorithm.NeedsTimeQuantum(),
		})
	}
	return ctx.JSON(algorithms)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, ok, err := s.parseRequest(ctx)
	if !ok {
		return err
	}
	request = schedulers.WithDefaultQuantum(request, algorithm, s.defaultQuantum)

	response, err := schedulers.Simulate(request, algorithm)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(response)
}

// parseRequest answers 400 itself when the body is malformed and reports
// ok=false; the returned error is only set if writing that answer failed.
func (s *SchedulerHandlerImpl) parseRequest(ctx *fiber.Ctx) (request requests.ScheduleRequests, ok bool, err error) {
	if err := ctx.BodyParser(&request); err != nil {
		s.log.Warn("invalid request format: ", err)
		return request, false, ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
	}
	return request, true, nil
}

func (s *SchedulerHandlerImpl) defaultQuantum(algorithm schedulers.Algorithm) int {
	return s.config.TimeQuantum(string(algorithm))
}

func (s *SchedulerHandlerImpl) fail(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, schedulers.ErrInvalidAlgorithm):
		status = fiber.StatusNotFound
	case errors.Is(err, schedulers.ErrMissingParameter), errors.Is(err, schedulers.ErrInvalidProcess):
		status = fiber.StatusUnprocessableEntity
	}
	s.log.Warn("can not process request: ", err)
	return ctx.Status(status).JSON(responses.ErrorResponse{Error: err.Error()})
}
