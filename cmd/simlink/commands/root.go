package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ebfe/scard"
	"github.com/spf13/cobra"

	"github.com/cardside/simlink/pkg/transport"
	"github.com/cardside/simlink/pkg/transport/pcsc"
)

var (
	readerIndex int
	protocol    string
	verbose     bool

	waitForCard bool
	waitTimeout time.Duration
	newCardOnly bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "simlink",
		Short:         "Talk to a SIM/smart card over PC/SC",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().IntVarP(&readerIndex, "reader", "r", 0, "PC/SC reader index (see 'simlink readers')")
	root.PersistentFlags().StringVar(&protocol, "protocol", "any", "card protocol: t0, t1 or any")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(readersCmd(), atrCmd(), sendCmd(), resetCmd())
	return root.Execute()
}

// addWaitFlags registers the card-wait flags shared by the commands that need
// a connected card.
func addWaitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&waitForCard, "wait", false, "wait for a card instead of failing when none is present")
	cmd.Flags().DurationVar(&waitTimeout, "timeout", 0, "give up waiting after this long (0 = wait forever)")
	cmd.Flags().BoolVar(&newCardOnly, "new-card", false, "with --wait, ignore an already inserted card")
}

func cardProtocol() (scard.Protocol, error) {
	switch protocol {
	case "t0":
		return scard.ProtocolT0, nil
	case "t1":
		return scard.ProtocolT1, nil
	case "any":
		return scard.ProtocolAny, nil
	}
	return 0, fmt.Errorf("unknown protocol %q (want t0, t1 or any)", protocol)
}

// openLink builds the PC/SC channel for the selected reader, connects
// (waiting for a card if requested) and wraps it in a transport link.
// The returned closer releases the channel.
func openLink(opts ...transport.Option) (*transport.Link, func(), error) {
	proto, err := cardProtocol()
	if err != nil {
		return nil, nil, err
	}
	ch, err := pcsc.New(readerIndex, pcsc.WithProtocol(proto))
	if err != nil {
		return nil, nil, err
	}
	if waitForCard {
		err = ch.WaitForCard(waitTimeout, newCardOnly)
	} else {
		err = ch.Connect()
	}
	if err != nil {
		ch.Close()
		return nil, nil, err
	}
	return transport.NewLink(ch, opts...), ch.Close, nil
}
