package a2acal

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/a2acal/calendar"
	calredis "github.com/hupe1980/a2acal/calendar/redis"
	"github.com/hupe1980/a2acal/config"
	"github.com/hupe1980/a2acal/logging"
	"github.com/hupe1980/a2acal/model"
	"github.com/hupe1980/a2acal/model/anthropic"
	"github.com/hupe1980/a2acal/model/openai"
)

// NewFromConfig assembles an Agent from a validated configuration: calendar
// backend, model provider, logger and runner settings. Additional option
// functions run after the configuration is applied and win on conflict.
func NewFromConfig(cfg config.Config, optFns ...func(o *Options)) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := buildCalendarStore(cfg.Calendar)
	if err != nil {
		return nil, err
	}

	llm, err := buildModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LoggingConfig())

	agentOpts := append([]func(o *Options){func(o *Options) {
		o.Name = cfg.Name
		o.Instructions = cfg.Instructions
		o.MaxToolCalls = cfg.MaxToolCalls
		o.Stream = cfg.Model.Stream
		o.CalendarStore = store
		o.Logger = logger
	}}, optFns...)

	return New(llm, agentOpts...), nil
}

func buildCalendarStore(cfg config.CalendarConfig) (calendar.Store, error) {
	switch cfg.Backend {
	case "file":
		return calendar.NewFileStore(cfg.Path), nil
	case "redis":
		return calredis.New(func(o *calredis.Options) {
			o.Addr = cfg.Redis.Addr
			o.Password = cfg.Redis.Password
			o.DB = cfg.Redis.DB
			if cfg.Redis.Key != "" {
				o.Key = cfg.Redis.Key
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown calendar backend %q", cfg.Backend)
	}
}

func buildModel(cfg config.ModelConfig) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Name != "" {
				o.Model = cfg.Name
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Name != "" {
				o.Model = anthropicsdk.Model(cfg.Name)
			}
			o.APIKey = cfg.APIKey
		}), nil
	case "mock":
		name := cfg.Name
		if name == "" {
			name = "mock"
		}
		return model.NewMockModel(name), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
