// Package batchos is a minimal kernel core for a single-core machine: a trap
// dispatcher coupled to a resource-constrained batch scheduler.
//
// The Service façade boots the kernel against a hart and a console:
//
//	cfg, _ := batchos.LoadConfig(ctx, "batch.yaml")
//	srv := batchos.New(batchos.WithConfig(cfg))
//	summary, err := srv.Boot(ctx)
//
// On the host the hart is simulated (service/trap/sim) and the console writes
// to standard output.
package batchos
