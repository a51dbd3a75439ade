package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardside/simlink/pkg/iso7816"
)

// reset: power-cycle the card and print the fresh ATR.
func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the card and print its ATR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			link, closer, err := openLink()
			if err != nil {
				return err
			}
			defer closer()

			if _, err := link.ResetCard(); err != nil {
				return err
			}
			atr, err := link.ATR()
			if err != nil {
				return err
			}
			fmt.Println(strings.ToUpper(iso7816.ToHex(atr)))
			return nil
		},
	}
	addWaitFlags(cmd)
	return cmd
}
