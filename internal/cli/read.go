package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
	"github.com/seqnet/su/internal/unit"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	From int64
	To   int64
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Read a message, or a process's message log, by id",
		Long: `Read an id that may name either a message or a process.

A message id returns that message's sequencing values. A process id
returns the process's ordered log, optionally windowed by timestamp:
--from is exclusive, --to is inclusive, zero means unbounded.

Example:
  su read mGzSlzO24q1Emxp4CkZ0Ionv2dE
  su read 9drPMBRsvzPG0Zlmf2g5vTqBKyw --from 1700000000000 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.From, "from", 0, "window start timestamp, exclusive (0 = unbounded)")
	cmd.Flags().Int64Var(&opts.To, "to", 0, "window end timestamp, inclusive (0 = unbounded)")

	return cmd
}

func runRead(opts *ReadOptions, id string, cmd *cobra.Command) error {
	formatter := &Formatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	env, err := openEnvironment(opts.RootOptions)
	if err != nil {
		return report(formatter, err)
	}
	defer env.Close()

	u := unit.New(unit.Deps{Store: env.store}, unit.WithLogger(env.log))

	res, err := u.Read(cmdContext(cmd), id, opts.From, opts.To)
	if err != nil {
		code := ExitCommandError
		if fault.IsNotFound(err) {
			code = ExitFailure
		}
		return report(formatter, WrapExitError(code, "read failed", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(res)
	}

	if res.Message != nil {
		printMessage(formatter.Writer, *res.Message)
		return nil
	}

	fmt.Fprintf(formatter.Writer, "process %s: %d message(s)\n", res.ProcessID, len(res.Log))
	for _, m := range res.Log {
		fmt.Fprintf(formatter.Writer, "%6d  %13d  %s  %s\n", m.Nonce, m.Timestamp, m.HashChain, m.MessageID)
	}
	return nil
}

func printMessage(w io.Writer, m record.Message) {
	fmt.Fprintf(w, "message %s\n", m.MessageID)
	fmt.Fprintf(w, "  process:    %s\n", m.ProcessID)
	fmt.Fprintf(w, "  epoch:      %d\n", m.Epoch)
	fmt.Fprintf(w, "  nonce:      %d\n", m.Nonce)
	fmt.Fprintf(w, "  timestamp:  %d\n", m.Timestamp)
	fmt.Fprintf(w, "  hash_chain: %s\n", m.HashChain)
}
