package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardside/simlink/pkg/iso7816"
)

// atr: connect to the card and print its Answer To Reset.
func atrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atr",
		Short: "Print the card's Answer To Reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			link, closer, err := openLink()
			if err != nil {
				return err
			}
			defer closer()

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
