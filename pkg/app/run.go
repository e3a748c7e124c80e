package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Run builds and starts the runtime, then blocks until ctx is done or a
// shutdown signal arrives.
func Run(ctx context.Context, p Params) error {
	rt, err := Build(ctx, p)
	if err != nil {
		return err
	}
	if err := rt.Start(); err != nil {
		_ = rt.Close(context.Background())
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	rt.Logger.Info("shutdown signal received")

	// The parent context may already be cancelled; flushing still needs one.
	err = rt.Close(context.WithoutCancel(ctx))
	rt.Logger.Info("shutdown complete")
	return err
}
