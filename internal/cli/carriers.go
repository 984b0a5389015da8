package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newCarriersCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "carriers",
		Short: "Inspect connected carrier accounts",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List connected carriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			carriers, err := a.provider.ListCarriers(cmd.Context())
			if err != nil {
				return err
			}
			return a.output(cmd, carriers, func(w io.Writer) { renderCarriers(w, carriers) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "get CARRIER_ID",
		Short: "Show one carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carrier, err := a.provider.GetCarrier(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, carrier, func(w io.Writer) { renderCarrier(w, carrier) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "services CARRIER_ID",
		Short: "List a carrier's services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.provider.ListCarrierServices(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, services, func(w io.Writer) { renderServices(w, services) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "packages CARRIER_ID",
		Short: "List a carrier's package types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := a.provider.ListCarrierPackageTypes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, packages, func(w io.Writer) { renderPackageTypes(w, packages) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "options CARRIER_ID",
		Short: "List a carrier's advanced options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.provider.GetCarrierOptions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, options, func(w io.Writer) { renderCarrierOptions(w, options) })
		},
	})

	return c
}
