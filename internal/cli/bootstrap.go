package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqnet/su/internal/config"
	"github.com/seqnet/su/internal/router"
)

// BootstrapResult reports one pool reconciliation.
type BootstrapResult struct {
	Configured int `json:"configured"` // URLs in the scheduler list
	Registered int `json:"registered"` // URLs newly written to the store
}

// NewBootstrapCommand creates the bootstrap command.
func NewBootstrapCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Reconcile the configured scheduler pool into the data store",
		Long: `Reconcile the scheduler pool membership file into the data store.

Every URL in the scheduler list that the store does not know yet is
registered with a process count of zero. Known units keep their counts,
and units that left the list are never removed, so existing process pins
stay resolvable. Safe to run on every deployment.

Example:
  su bootstrap --config su.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // failures are rendered by the formatter
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(rootOpts, cmd)
		},
	}

	return cmd
}

func runBootstrap(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &Formatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env, err := openEnvironment(opts)
	if err != nil {
		return report(formatter, err)
	}
	defer env.Close()

	if env.cfg.Mode != config.ModeRouter {
		return report(formatter, NewExitError(ExitCommandError,
			"bootstrap requires router mode: standalone units have no scheduler pool"))
	}

	urls, err := config.LoadSchedulerList(env.cfg.SchedulerListPath)
	if err != nil {
		return report(formatter, WrapExitError(ExitCommandError, "failed to load scheduler list", err))
	}
	formatter.VerboseLog("Loaded %d scheduler URL(s) from %s", len(urls), env.cfg.SchedulerListPath)

	registered, err := router.NewRegistry(env.store, env.log).Reconcile(cmdContext(cmd), urls)
	if err != nil {
		return report(formatter, WrapExitError(ExitCommandError, "failed to reconcile scheduler pool", err))
	}

	result := BootstrapResult{Configured: len(urls), Registered: registered}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ scheduler pool reconciled: %d configured, %d newly registered\n",
		result.Configured, result.Registered)
	return nil
}
