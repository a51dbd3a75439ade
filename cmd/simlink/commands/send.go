package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardside/simlink/pkg/iso7816"
	"github.com/cardside/simlink/pkg/transport"
)

// send <apdu-hex>...: transmit one or more command APDUs in sequence.
func sendCmd() *cobra.Command {
	var (
		retries   int
		expect    string
		showTrace bool
	)

	cmd := &cobra.Command{
		Use:   "send <apdu-hex>...",
		Short: "Send command APDUs to the card",
		Long: `Send one or more command APDUs, given as hex strings (spaces allowed,
case-insensitive), e.g.:

  simlink send A0A40000023F00

Response bytes announced with status 61XX or 9FXX are fetched automatically.
With --expect the final status word of each command is verified against a
4-digit pattern where '?' masks a digit (e.g. --expect '91??'); a checked
send never retries, so --expect and --retries are mutually exclusive.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expect != "" && retries > 0 {
				return fmt.Errorf("--expect and --retries are mutually exclusive")
			}

			var opts []transport.Option
			var trace iso7816.Trace
			if showTrace {
				opts = append(opts, transport.WithTraceRecorder(&trace))
			}

			link, closer, err := openLink(opts...)
			if err != nil {
				return err
			}
			defer closer()

			for _, arg := range args {
				apdu, err := iso7816.FromHex(arg)
				if err != nil {
					return err
				}

				var data []byte
				var sw iso7816.StatusWord
				if expect != "" {
					data, sw, err = link.SendChecked(apdu, iso7816.SwPattern(expect))
				} else {
					data, sw, err = link.Send(apdu, retries)
				}
				if err != nil {
					return fmt.Errorf("sending %s: %w", arg, err)
				}

				if len(data) > 0 {
					fmt.Printf("%s %s\n", strings.ToUpper(iso7816.ToHex(data)), sw.Verbose())
				} else {
					fmt.Println(sw.Verbose())
				}
			}

			if showTrace {
				fmt.Println()
				fmt.Println(trace.Describe())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&retries, "retries", 0, "retry budget for transient transport faults")
	cmd.Flags().StringVar(&expect, "expect", "", "verify the final status word against this pattern")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the full exchange trace afterwards")
	addWaitFlags(cmd)
	return cmd
}
