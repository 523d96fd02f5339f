package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/unit"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	All         bool
	Concurrency int
}

// VerifyReport is one process's verification outcome.
type VerifyReport struct {
	ProcessID string `json:"process_id"`
	Messages  int    `json:"messages"`
	Intact    bool   `json:"intact"`
	Error     string `json:"error,omitempty"`
}

// VerifyResult aggregates the reports of one verify invocation.
type VerifyResult struct {
	Intact  bool           `json:"intact"`
	Reports []VerifyReport `json:"reports"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [process-id...]",
		Short: "Verify hash chains and nonce contiguity of process logs",
		Long: `Verify that stored process logs are intact: gap-free 0-based nonces, a
constant epoch, and an unbroken hash chain from the genesis link.

Verifies the named processes, or every known process with --all. Logs are
checked concurrently, bounded by --concurrency. A broken or unknown log is
reported and verification of the remaining logs continues.

Example:
  su verify 9drPMBRsvzPG0Zlmf2g5vTqBKyw
  su verify --all --concurrency 16 --format json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "verify every process in the store")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 8, "maximum concurrent log verifications")

	return cmd
}

func runVerify(opts *VerifyOptions, ids []string, cmd *cobra.Command) error {
	formatter := &Formatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	switch {
	case opts.All && len(ids) > 0:
		return report(formatter, NewExitError(ExitCommandError, "cannot combine --all with explicit process ids"))
	case !opts.All && len(ids) == 0:
		return report(formatter, NewExitError(ExitCommandError, "nothing to verify: pass process ids or --all"))
	case opts.Concurrency < 1:
		return report(formatter, NewExitError(ExitCommandError, "--concurrency must be at least 1"))
	}

	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return report(formatter, err)
	}
	defer env.Close()

	ctx := cmdContext(cmd)
	if opts.All {
		ids, err = env.store.ReadAllProcessIDs(ctx)
		if err != nil {
			return report(formatter, WrapExitError(ExitCommandError, "failed to list processes", err))
		}
	}
	if len(ids) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(VerifyResult{Intact: true, Reports: []VerifyReport{}})
		}
		fmt.Fprintln(formatter.Writer, "no process logs to verify")
		return nil
	}
	formatter.VerboseLog("Verifying %d process log(s)", len(ids))

	u := unit.New(unit.Deps{Store: env.store}, unit.WithLogger(env.log))

	reports := make([]VerifyReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			n, err := u.VerifyProcess(gctx, id)
			switch {
			case err == nil:
				reports[i] = VerifyReport{ProcessID: id, Messages: n, Intact: true}
			case fault.IsKind(err, fault.KindValidation) || fault.IsNotFound(err):
				// A broken or unknown log is a finding, not an abort.
				reports[i] = VerifyReport{ProcessID: id, Error: err.Error()}
			default:
				return fmt.Errorf("verify %q: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report(formatter, WrapExitError(ExitCommandError, "verification aborted", err))
	}

	failed := 0
	for _, r := range reports {
		if !r.Intact {
			failed++
		}
	}
	result := VerifyResult{Intact: failed == 0, Reports: reports}
	summary := fmt.Sprintf("verification failed for %d of %d process(es)", failed, len(reports))

	if formatter.Format == "json" {
		if result.Intact {
			return formatter.Success(result)
		}
		_ = formatter.Fail(NewExitError(ExitFailure, summary), result)
		return NewExitError(ExitFailure, summary)
	}

	for _, r := range reports {
		if r.Intact {
			fmt.Fprintf(formatter.Writer, "✓ %s: %d message(s) intact\n", r.ProcessID, r.Messages)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s: %s\n", r.ProcessID, r.Error)
		}
	}
	if result.Intact {
		return nil
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintln(formatter.Writer, summary)
	return NewExitError(ExitFailure, summary)
}
