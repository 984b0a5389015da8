package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate addresses from a YAML list",
		Long: "Validate each address in FILE (a YAML list of address mappings, or - for stdin).\n" +
			"Keys follow ShipEngine's names (address_line1, city_locality, ...) or the short\n" +
			"aliases street, city, state and country.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}
			addrs, err := parseAddresses(data)
			if err != nil {
				return err
			}

			results, err := a.provider.ValidateAddresses(cmd.Context(), addrs...)
			if err != nil {
				return err
			}
			return a.output(cmd, results, func(w io.Writer) { renderVerification(w, results) })
		},
	}
}
