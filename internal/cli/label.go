package cli

import (
	"fmt"
	"io"

	"github.com/dukerupert/shipengine"
	"github.com/spf13/cobra"
)

// labelFlags are shared by the commands that purchase a label.
type labelFlags struct {
	test   bool
	format string
	layout string
	save   bool
}

func (f *labelFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.test, "test", false, "Create a test label (not charged)")
	cmd.Flags().StringVar(&f.format, "format", "pdf", "Label format: pdf, png or zpl")
	cmd.Flags().StringVar(&f.layout, "layout", "4x6", "Label layout: 4x6 or letter")
	cmd.Flags().BoolVar(&f.save, "save", false, "Download the label into configured storage")
}

func (f *labelFlags) options() shipengine.LabelOptions {
	return shipengine.LabelOptions{
		TestLabel: f.test,
		Format:    shipengine.LabelFormat(f.format),
		Layout:    shipengine.LabelLayout(f.layout),
	}
}

func newLabelCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "label",
		Short: "Create, inspect, void and track labels",
	}

	c.AddCommand(newLabelCreateCmd(a))
	c.AddCommand(newLabelFromRateCmd(a))
	c.AddCommand(newLabelDownloadCmd(a))

	c.AddCommand(&cobra.Command{
		Use:   "get LABEL_ID",
		Short: "Show a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := a.provider.GetLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, label, func(w io.Writer) { renderLabel(w, label) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "void LABEL_ID",
		Short: "Void a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.provider.VoidLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, result, func(w io.Writer) { renderVoid(w, args[0], result) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "track LABEL_ID",
		Short: "Show tracking events for a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.provider.TrackLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.output(cmd, info, func(w io.Writer) { renderTracking(w, info) })
		},
	})

	return c
}

func newLabelCreateCmd(a *app) *cobra.Command {
	var (
		shipmentPath string
		flags        labelFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Purchase a label for a shipment",
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

			label, err := a.provider.CreateLabel(cmd.Context(), shipment, flags.options())
			if err != nil {
				return err
			}
			return a.finishLabel(cmd, label, flags)
		},
	}

	cmd.Flags().StringVarP(&shipmentPath, "shipment", "s", "", "Shipment YAML file (- for stdin)")
	_ = cmd.MarkFlagRequired("shipment")
	flags.register(cmd)
	return cmd
}

func newLabelFromRateCmd(a *app) *cobra.Command {
	var flags labelFlags

	cmd := &cobra.Command{
		Use:   "from-rate RATE_ID",
		Short: "Purchase a label for a quoted rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := a.provider.CreateLabelFromRate(cmd.Context(), args[0], flags.options())
			if err != nil {
				return err
			}
			return a.finishLabel(cmd, label, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func newLabelDownloadCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "download LABEL_ID",
		Short: "Download a label into configured storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := a.provider.GetLabel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			location, err := a.download(cmd, label, shipengine.LabelFormat(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "pdf", "Label format: pdf, png or zpl")
	return cmd
}

// finishLabel prints a purchased label and optionally archives it.
func (a *app) finishLabel(cmd *cobra.Command, label *shipengine.Label, flags labelFlags) error {
	if err := a.output(cmd, label, func(w io.Writer) { renderLabel(w, label) }); err != nil {
		return err
	}
	if !flags.save {
		return nil
	}

	location, err := a.download(cmd, label, shipengine.LabelFormat(flags.format))
	if err != nil {
		return err
	}
	if !a.jsonOutput && a.query == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("saved"), location)
	}
	return nil
}

func (a *app) download(cmd *cobra.Command, label *shipengine.Label, format shipengine.LabelFormat) (string, error) {
	store, err := a.labelStore(cmd)
	if err != nil {
		return "", err
	}
	return a.provider.DownloadLabel(cmd.Context(), label, format, store)
}
