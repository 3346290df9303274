package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexcodex/featurekit/sequence"
)

func newFibCmd() *cobra.Command {
	var useBig bool
	cmd := &cobra.Command{
		Use:   "fib [count]",
		Short: "Print the first count Fibonacci numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be an integer: %w", err)
			}
			if useBig {
				fmt.Fprintln(cmd.OutOrStdout(), sequence.Format(sequence.FibonacciBig(n)))
				return nil
			}
			seq, err := sequence.Fibonacci(n)
			if errors.Is(err, sequence.ErrOverflow) {
				return fmt.Errorf("%w (use --big)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sequence.Format(seq))
			return nil
		},
	}
	cmd.Flags().BoolVar(&useBig, "big", false, "Use arbitrary precision (no length limit)")
	return cmd
}
