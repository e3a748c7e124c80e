package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kardianos/service"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

// program adapts app.Run to the service manager's Start/Stop callbacks.
type program struct {
	params app.Params
	cancel context.CancelFunc
	done   chan error
}

func (p *program) Start(_ service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan error, 1)
	go func() { p.done <- app.Run(ctx, p.params) }()
	return nil
}

func (p *program) Stop(_ service.Service) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	return <-p.done
}

// serviceConfig describes the OS service. The installed service re-enters
// this binary through "service run" with the same config and data dir.
func serviceConfig(p app.Params) (*service.Config, error) {
	args := []string{"service", "run"}
	if p.ConfigPath != "" {
		abs, err := filepath.Abs(p.ConfigPath)
		if err != nil {
			return nil, err
		}
		args = append(args, "--config", abs)
	}
	if p.DataDir != "" {
		abs, err := filepath.Abs(p.DataDir)
		if err != nil {
			return nil, err
		}
		args = append(args, "--data-dir", abs)
	}
	return &service.Config{
		Name:        "mobais",
		DisplayName: "mobais assistant",
		Description: "Conversational command router with reminders and an HTTP API.",
		Arguments:   args,
		Option: service.KeyValue{
			"Restart":     "on-failure",
			"UserService": true,
		},
	}, nil
}

func newService(p app.Params) (service.Service, error) {
	cfg, err := serviceConfig(p)
	if err != nil {
		return nil, err
	}
	return service.New(&program{params: p}, cfg)
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Install and control mobais as an OS service",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run under the service manager (used by the installed service)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(paramsFrom(cmd))
			if err != nil {
				return err
			}
			return svc.Run()
		},
	})

	for _, action := range service.ControlAction {
		cmd.AddCommand(&cobra.Command{
			Use:   action,
			Short: fmt.Sprintf("%s the mobais service", action),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := newService(paramsFrom(cmd))
				if err != nil {
					return err
				}
				if err := service.Control(svc, action); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "service %s: ok\n", action)
				return nil
			},
		})
	}
	return cmd
}
