package cli

import (
	"io"

	"github.com/dukerupert/shipengine"
	"github.com/spf13/cobra"
)

func newRatesCmd(a *app) *cobra.Command {
	var (
		shipmentPath string
		carrierIDs   []string
		services     []string
	)

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Quote a shipment with one or more carriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readFile(shipmentPath)
			if err != nil {
				return err
			}
			shipment, err := parseShipment(data)
			if err != nil {
				return err
			}

			resp, err := a.provider.GetRates(cmd.Context(), shipment, shipengine.NewRateOptions(carrierIDs...))
			if err != nil {
				return err
			}
			if len(services) > 0 {
				resp.Rates = resp.ByService(services...)
			}
			return a.output(cmd, resp, func(w io.Writer) { renderRates(w, resp) })
		},
	}

	cmd.Flags().StringVarP(&shipmentPath, "shipment", "s", "", "Shipment YAML file (- for stdin)")
	cmd.Flags().StringSliceVarP(&carrierIDs, "carrier", "c", nil, "Carrier id to quote (repeatable)")
	cmd.Flags().StringSliceVar(&services, "service", nil, "Only show these service codes")
	_ = cmd.MarkFlagRequired("shipment")

	return cmd
}
