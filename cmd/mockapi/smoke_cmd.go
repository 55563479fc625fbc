package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-console/modules/clients/domain/client"
	clientpersistence "github.com/iota-uz/iota-console/modules/clients/infrastructure/persistence"
	"github.com/iota-uz/iota-console/modules/organizations/domain/organization"
	orgpersistence "github.com/iota-uz/iota-console/modules/organizations/infrastructure/persistence"
	"github.com/iota-uz/iota-console/modules/tasks/domain/task"
	taskpersistence "github.com/iota-uz/iota-console/modules/tasks/infrastructure/persistence"
	"github.com/iota-uz/iota-console/modules/users/domain/user"
	userpersistence "github.com/iota-uz/iota-console/modules/users/infrastructure/persistence"
	"github.com/iota-uz/iota-console/pkg/configuration"
	"github.com/iota-uz/iota-console/pkg/resource"
	"github.com/iota-uz/iota-console/pkg/rest"
	"github.com/iota-uz/iota-console/pkg/session"
)

type smokeOptions struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	logger          *logrus.Logger
	requestIDHeader string
}

func newSmokeCmd() *cobra.Command {
	var opts smokeOptions

	cmd := &cobra.Command{
		Use:   "smoke --base-url <url> --token <token>",
		Short: "List every resource through the console repositories and report counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.BaseURL) == "" {
				return errors.New("--base-url is required")
			}
			conf := configuration.Use()
			opts.logger = conf.Logger()
			opts.requestIDHeader = conf.RequestIDHeader
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			return smoke(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "http://localhost:3200", "backend base URL")
	cmd.Flags().StringVar(&opts.Token, "token", "", "bearer token")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 15*time.Second, "per request timeout")
	return cmd
}

type lister func(ctx context.Context) (int, error)

func count[E any](repo resource.Repository[E]) lister {
	return func(ctx context.Context) (int, error) {
		items, err := repo.List(ctx)
		return len(items), err
	}
}

func smoke(ctx context.Context, out io.Writer, opts smokeOptions) error {
	restOpts := rest.Options{
		BaseURL:         opts.BaseURL,
		Session:         session.NewStatic(opts.Token, nil),
		Logger:          opts.logger,
		Timeout:         opts.Timeout,
		RequestIDHeader: opts.requestIDHeader,
	}

	clientsRepo, err := clientpersistence.NewClientRepository(restOpts)
	if err != nil {
		return err
	}
	orgsRepo, err := orgpersistence.NewOrganizationRepository(restOpts)
	if err != nil {
		return err
	}
	tasksRepo, err := taskpersistence.NewTaskRepository(restOpts)
	if err != nil {
		return err
	}
	usersRepo, err := userpersistence.NewUserRepository(restOpts)
	if err != nil {
		return err
	}

	checks := []struct {
		name string
		list lister
	}{
		{clientpersistence.Resource, count[client.Client](clientsRepo)},
		{orgpersistence.Resource, count[organization.Organization](orgsRepo)},
		{taskpersistence.Resource, count[task.Task](tasksRepo)},
		{userpersistence.Resource, count[user.User](usersRepo)},
	}

	var failed []string
	for _, c := range checks {
		n, err := c.list(ctx)
		if err != nil {
			failed = append(failed, c.name)
			fmt.Fprintf(out, "%-14s FAIL %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(out, "%-14s ok   %d records\n", c.name, n)
	}
	if len(failed) > 0 {
		return fmt.Errorf("smoke failed for: %s", strings.Join(failed, ", "))
	}
	return nil
}
