package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forcebit/rsapad-go/pkg/padding"
	"github.com/forcebit/rsapad-go/pkg/rsasig"
)

func newSchemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List padding schemes and RSA signature algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "SCHEME\tDIGEST\tDIGEST LENGTH\tSIGNING")
			for _, id := range padding.SupportedSchemes() {
				s, err := padding.GetScheme(id)
				if err != nil {
					return err
				}
				_, signing := padding.AsEncoder(s)
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", id, s.Digest().ID(), s.Digest().OutputLen(), signing)
			}
			fmt.Fprintln(w)

			fmt.Fprintln(w, "ALGORITHM\tSCHEME\t\t")
			for _, id := range rsasig.SupportedAlgorithms() {
				alg, err := rsasig.GetAlgorithm(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t\t\n", id, alg.Scheme().ID())
			}
			return w.Flush()
		},
	}
}
