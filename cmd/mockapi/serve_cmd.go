package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-console/internal/mockapi"
	"github.com/iota-uz/iota-console/internal/server"
	"github.com/iota-uz/iota-console/modules"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/configuration"
	"github.com/iota-uz/iota-console/pkg/eventbus"
	"github.com/iota-uz/iota-console/pkg/logging"
)

type serveOptions struct {
	Port        int
	SeedFile    string
	Token       string
	ListWrapper string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /api/{resource} from memory, optionally seeded from YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := configuration.Use()
			defer conf.Unload()
			if cmd.Flags().Changed("port") {
				conf.MockAPI.Port = opts.Port
			}
			if cmd.Flags().Changed("seed") {
				conf.MockAPI.SeedFile = opts.SeedFile
			}
			if cmd.Flags().Changed("token") {
				conf.MockAPI.Token = opts.Token
			}
			return serve(cmd.Context(), conf, opts.ListWrapper)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 3200, "listen port (overrides MOCKAPI_PORT)")
	cmd.Flags().StringVar(&opts.SeedFile, "seed", "", "YAML fixtures file (overrides MOCKAPI_SEED_FILE)")
	cmd.Flags().StringVar(&opts.Token, "token", "", "required bearer token; empty disables auth (overrides MOCKAPI_TOKEN)")
	cmd.Flags().StringVar(&opts.ListWrapper, "list-wrapper", "", "wrap list payloads under this key (items, data or results)")
	return cmd
}

func serve(ctx context.Context, conf *configuration.Configuration, listWrapper string) error {
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		cleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer cleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	app := application.New(&application.ApplicationOptions{
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		return fmt.Errorf("failed to load modules: %w", err)
	}

	backend := mockapi.New(app, mockapi.Options{ListWrapper: listWrapper, Logger: logger})
	if conf.MockAPI.SeedFile != "" {
		fixtures, err := mockapi.LoadFixtures(conf.MockAPI.SeedFile)
		if err != nil {
			return err
		}
		if err := backend.Store().Seed(fixtures); err != nil {
			return err
		}
		logger.WithField("file", conf.MockAPI.SeedFile).Info("fixtures loaded")
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Backend:       backend,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", conf.MockAPI.Port)
	logger.Infof("Listening on: http://localhost%s", addr)
	return serverInstance.Serve(ctx, addr)
}
