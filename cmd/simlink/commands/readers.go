package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardside/simlink/pkg/transport/pcsc"
)

// readers: list the attached PC/SC readers with their indices.
func readersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readers",
		Short: "List attached PC/SC readers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			readers, err := pcsc.ListReaders()
			if err != nil {
				return err
			}
			if len(readers) == 0 {
				fmt.Println("no readers found")
				return nil
			}
			for i, name := range readers {
				fmt.Printf("%d: %s\n", i, name)
			}
			return nil
		},
	}
}
