package batchos

import (
	"context"
	"fmt"
	"os"

	"github.com/viant/batchos/kernel"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/policy"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/console"
	"github.com/viant/batchos/service/event"
	"github.com/viant/batchos/service/messaging/memory"
	"github.com/viant/batchos/service/trap"
	"github.com/viant/batchos/service/trap/sim"
	"github.com/viant/batchos/tracing"
)

// Version is reported to the tracing backend.
const Version = "0.1.0"

// Service boots and owns one kernel instance.
type Service struct {
	config        *Config
	hart          trap.Hart
	console       console.Console
	kernel        *kernel.Kernel
	kernelOptions []kernel.Option
	publisher     *event.Publisher[task.Task]
	listener      *event.Listener[task.Task]
	eventHandler  func(*event.Event[task.Task])
	tracingErr    error
}

// New creates a service.
func New(options ...Option) *Service {
	ret := &Service{}
	for _, opt := range options {
		opt(ret)
	}
	if ret.config == nil {
		ret.config = DefaultConfig()
	}
	if ret.hart == nil {
		ret.hart = sim.New()
	}
	if ret.console == nil {
		ret.console = console.NewStream(nil, os.Stdout)
	}
	return ret
}

// Config returns the service configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Hart returns the hart the kernel runs on.
func (s *Service) Hart() trap.Hart {
	return s.hart
}

// Kernel returns the kernel; nil before Boot.
func (s *Service) Kernel() *kernel.Kernel {
	return s.kernel
}

// Boot validates the configuration, boots the kernel and runs the batch.
func (s *Service) Boot(ctx context.Context) (*batch.Summary, error) {
	if s.kernel != nil {
		return nil, kernel.ErrBooted
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := s.initTracing(); err != nil {
		return nil, err
	}

	var batchOptions []batch.Option
	if p := policy.FromConfig(s.config.Policy); p != nil {
		batchOptions = append(batchOptions, batch.WithPolicy(p))
	}
	if s.eventHandler != nil {
		s.publisher = event.NewMemoryPublisher[task.Task](memory.DefaultConfig())
		s.listener = event.NewListener(s.publisher, s.eventHandler)
		s.listener.Start(ctx)
		batchOptions = append(batchOptions, batch.WithPublisher(s.publisher))
	}
	options := append([]kernel.Option{kernel.WithBatchOptions(batchOptions...)}, s.kernelOptions...)
	s.kernel = kernel.New(s.hart, s.console, s.config.KernelConfig(), options...)
	return s.kernel.Boot(ctx)
}

func (s *Service) initTracing() error {
	if s.tracingErr != nil {
		return fmt.Errorf("failed to init tracing: %w", s.tracingErr)
	}
	cfg := s.config.Tracing
	if !cfg.Enabled {
		return nil
	}
	service := cfg.Service
	if service == "" {
		service = "batchos"
	}
	if err := tracing.Init(service, Version, cfg.Output); err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	return nil
}

// Idle parks the hart until ctx is done.
func (s *Service) Idle(ctx context.Context) error {
	if s.kernel == nil {
		return fmt.Errorf("kernel was not booted")
	}
	return s.kernel.Idle(ctx)
}

// Close stops the background event listener, if any.
func (s *Service) Close() error {
	if s.listener != nil {
		s.listener.Stop()
	}
	return nil
}
