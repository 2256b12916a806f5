package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Feedback service.FeedbackService
	Memory   service.MemoryService
	History  service.HistoryService

	// Defaults seeds plan requests; flags overlay it. Nil falls back to
	// the built-in defaults.
	Defaults *contract.PlanRequest

	// ServeHTTP starts the HTTP front end. Wired in main, where the full
	// server stack is assembled.
	ServeHTTP func(ctx context.Context, port string) error

	// IsInteractive reports whether the process is attached to a terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) baseRequest(zip string) contract.PlanRequest {
	if a.Defaults == nil {
		return contract.NewPlanRequest(zip)
	}
	req := *a.Defaults
	if zip != "" {
		req.Zip = zip
	}
	return req
}

// NewRootCmd creates the top-level "saturday" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "saturday",
		Short: "Pick, schedule, and learn from one Saturday activity a week",
	}

	// The HTTP API spells these fields with underscores; accept both.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newFeedbackCmd(app),
		newMemoryCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)

	return root
}
