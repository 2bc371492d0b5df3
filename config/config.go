package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                                   int
	RoundRobinTimeQuantum                  int
	MultilevelFeedbackQueueBaseTimeQuantum int
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads ./config.yaml once and exits the process if the
// configuration is unusable.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		c, err := Load("./")
		if err != nil {
			log.Fatalln(err)
		}
		config = c
	})

	return config
}

// Load reads config.yaml from the first path that has one. A missing file is
// not an error: defaults and SCHEDULER_* style environment variables apply.
func Load(paths ...string) (*SchedulerConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.base_time_quantum", 2)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading scheduler config: %w", err)
		}
	}

	c := &SchedulerConfig{
		Port:                                   v.GetInt("port"),
		RoundRobinTimeQuantum:                  v.GetInt("scheduler.round_robin.time_quantum"),
		MultilevelFeedbackQueueBaseTimeQuantum: v.GetInt("scheduler.multilevel_feedback_queue.base_time_quantum"),
	}
	if c.RoundRobinTimeQuantum <= 0 || c.MultilevelFeedbackQueueBaseTimeQuantum <= 0 {
		return nil, fmt.Errorf("time quantums must be positive, got rr=%d mlq=%d",
			c.RoundRobinTimeQuantum, c.MultilevelFeedbackQueueBaseTimeQuantum)
	}
	return c, nil
}

// TimeQuantum returns the configured quantum for rr and mlq, 0 otherwise.
func (c *SchedulerConfig) TimeQuantum(algorithm string) int {
	switch algorithm {
	case "rr":
		return c.RoundRobinTimeQuantum
	case "mlq", "mlfq":
		return c.MultilevelFeedbackQueueBaseTimeQuantum
	default:
		return 0
	}
}
