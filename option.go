package batchos

import (
	"github.com/viant/batchos/kernel"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/service/console"
	"github.com/viant/batchos/service/event"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/trap"
	"github.com/viant/batchos/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service.
type Option func(s *Service)

// WithConfig sets the configuration; DefaultConfig is used otherwise.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithHart sets the hart the kernel runs on; a simulated hart otherwise.
func WithHart(hart trap.Hart) Option {
	return func(s *Service) {
		s.hart = hart
	}
}

// WithConsole sets the diagnostic console; standard output otherwise.
func WithConsole(con console.Console) Option {
	return func(s *Service) {
		s.console = con
	}
}

// WithWork replaces the synthetic workload.
func WithWork(work executor.Work) Option {
	return func(s *Service) {
		s.kernelOptions = append(s.kernelOptions, kernel.WithWork(work))
	}
}

// WithKernelOptions passes additional options to the kernel.
func WithKernelOptions(options ...kernel.Option) Option {
	return func(s *Service) {
		s.kernelOptions = append(s.kernelOptions, options...)
	}
}

// WithEventHandler receives every task lifecycle event in the background.
func WithEventHandler(handler func(*event.Event[task.Task])) Option {
	return func(s *Service) {
		s.eventHandler = handler
	}
}

// WithTracing configures OpenTelemetry with the stdout exporter, writing to
// outputFile or standard output when empty.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
