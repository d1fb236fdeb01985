package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"github.com/viant/batchos"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/trap/sim"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run boots the kernel and returns the process exit code: 0 when every task
// completed, 1 on failure or leftover tasks, 2 when the hart halted.
func run(args []string) int {
	flags := pflag.NewFlagSet("batchos", pflag.ContinueOnError)
	fConfig := flags.StringP("config", "c", "", "configuration URL (file, mem or any afs scheme)")
	fLogLevel := flags.StringP("log-level", "l", "", "log level override")
	fTrace := flags.String("trace", "", "write task spans to this file; - for stdout")
	fIdle := flags.Duration("idle", 0, "keep the hart idling for this long after the batch")
	if err := flags.Parse(args); err != nil {
		return report(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := batchos.DefaultConfig()
	if *fConfig != "" {
		var err error
		if cfg, err = batchos.LoadConfig(ctx, *fConfig); err != nil {
			return report(err)
		}
	}
	if *fLogLevel != "" {
		cfg.Log.Level = *fLogLevel
	}
	if *fTrace != "" {
		cfg.Tracing.Enabled = true
		if *fTrace != "-" {
			cfg.Tracing.Output = *fTrace
		}
	}

	hart := sim.New()
	srv := batchos.New(batchos.WithConfig(cfg), batchos.WithHart(hart))
	defer srv.Close()

	type result struct {
		summary *batch.Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := srv.Boot(ctx)
		if err == nil && *fIdle > 0 {
			idleCtx, cancel := context.WithTimeout(ctx, *fIdle)
			_ = srv.Idle(idleCtx)
			cancel()
		}
		done <- result{summary: summary, err: err}
	}()

	select {
	case <-hart.Halted():
		fmt.Fprintf(os.Stderr, "halted: %v\n", hart.Fault())
		return 2
	case ret := <-done:
		if ret.err != nil {
			return report(ret.err)
		}
		if ret.summary.Failed > 0 || ret.summary.Remaining > 0 {
			return 1
		}
		return 0
	}
}

func report(err error) int {
	fmt.Fprintf(os.Stderr, "batchos: %v\n", err)
	return 1
}
