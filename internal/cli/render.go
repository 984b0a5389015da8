package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dukerupert/shipengine"
)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	okStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

// table pads plain cells into columns before styling so ANSI codes do not
// break alignment.
func table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	pad := func(cells []string) []string {
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		return out
	}

	hdr := pad(headers)
	for i := range hdr {
		hdr[i] = headerStyle.Render(hdr[i])
	}
	fmt.Fprintln(w, strings.Join(hdr, "  "))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(pad(row), "  "))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

func renderVerification(w io.Writer, results []shipengine.VerificationResult) {
	for i, r := range results {
		var status string
		switch r.Status {
		case shipengine.AddressVerified:
			status = okStyle.Render(string(r.Status))
		case shipengine.AddressWarning, shipengine.AddressUnverified:
			status = warnStyle.Render(string(r.Status))
		default:
			status = failStyle.Render(string(r.Status))
		}
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(fmt.Sprintf("#%d", i+1)), status)

		addr := r.OriginalAddress
		if r.MatchedAddress != nil {
			addr = *r.MatchedAddress
		}
		fmt.Fprintln(w, "  "+formatAddress(addr))
		for _, m := range r.Messages {
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(m.Type+":"), m.Message)
		}
	}
}

func formatAddress(a shipengine.Address) string {
	parts := append([]string{}, a.StreetLines()...)
	locality := strings.TrimSpace(strings.Join([]string{a.City, a.State, a.PostalCode}, " "))
	if locality != "" {
		parts = append(parts, locality)
	}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}

func renderCarriers(w io.Writer, carriers []shipengine.Carrier) {
	if len(carriers) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(no carriers connected)"))
		return
	}
	rows := make([][]string, len(carriers))
	for i, c := range carriers {
		rows[i] = []string{c.ID, c.Code, c.FriendlyName, c.Nickname, yesNo(c.Primary), c.Balance.StringFixed(2)}
	}
	table(w, []string{"ID", "CODE", "NAME", "NICKNAME", "PRIMARY", "BALANCE"}, rows)
}

func renderCarrier(w io.Writer, c *shipengine.Carrier) {
	body := fmt.Sprintf("%s\n%s %s\n%s %s\n%s %s",
		titleStyle.Render(c.FriendlyName),
		dimStyle.Render("id:"), c.ID,
		dimStyle.Render("code:"), c.Code,
		dimStyle.Render("account:"), c.AccountNumber,
	)
	fmt.Fprintln(w, boxStyle.Render(body))
	if len(c.Services) > 0 {
		fmt.Fprintln(w)
		renderServices(w, c.Services)
	}
}

func renderServices(w io.Writer, services []shipengine.Service) {
	rows := make([][]string, len(services))
	for i, s := range services {
		rows[i] = []string{s.Code, s.Name, yesNo(s.Domestic), yesNo(s.International)}
	}
	table(w, []string{"SERVICE", "NAME", "DOMESTIC", "INTL"}, rows)
}

func renderPackageTypes(w io.Writer, packages []shipengine.PackageType) {
	rows := make([][]string, len(packages))
	for i, p := range packages {
		dims := "-"
		if d := p.Dimensions; d != nil {
			dims = fmt.Sprintf("%gx%gx%g %s", d.Length, d.Width, d.Height, d.Unit)
		}
		rows[i] = []string{p.Code, p.Name, dims}
	}
	table(w, []string{"PACKAGE", "NAME", "DIMENSIONS"}, rows)
}

func renderCarrierOptions(w io.Writer, options []shipengine.CarrierOption) {
	rows := make([][]string, len(options))
	for i, o := range options {
		rows[i] = []string{o.Name, o.DefaultValue, o.Description}
	}
	table(w, []string{"OPTION", "DEFAULT", "DESCRIPTION"}, rows)
}

func renderRates(w io.Writer, resp *shipengine.RateResponse) {
	fmt.Fprintf(w, "%s %s\n\n", titleStyle.Render("Shipment"), resp.ShipmentID)

	cheapest, hasCheapest := resp.Cheapest()
	rows := make([][]string, len(resp.Rates))
	for i, r := range resp.Rates {
		days := "-"
		if r.DeliveryDays > 0 {
			days = fmt.Sprintf("%d", r.DeliveryDays)
		}
		mark := ""
		if hasCheapest && r.ID == cheapest.ID {
			mark = "*"
		}
		rows[i] = []string{r.ID, r.CarrierCode, r.ServiceCode, r.Total().String(), days, mark}
	}
	table(w, []string{"RATE", "CARRIER", "SERVICE", "TOTAL", "DAYS", ""}, rows)

	for _, r := range resp.InvalidRates {
		fmt.Fprintf(w, "%s %s %s\n", failStyle.Render("invalid:"), r.CarrierID, strings.Join(r.ErrorMessages, "; "))
	}
	for _, e := range resp.Errors {
		fmt.Fprintf(w, "%s %s\n", failStyle.Render("error:"), e.Message)
	}
}

func renderLabel(w io.Writer, l *shipengine.Label) {
	status := okStyle.Render(l.Status)
	if l.Voided {
		status = failStyle.Render("voided")
	}
	body := strings.Join([]string{
		titleStyle.Render("Label "+l.ID) + " " + status,
		dimStyle.Render("tracking:") + " " + l.TrackingNumber,
		dimStyle.Render("carrier:") + " " + l.CarrierCode + " " + l.ServiceCode,
		dimStyle.Render("cost:") + " " + l.TotalCost().String(),
		dimStyle.Render("ship date:") + " " + formatDate(l.ShipDate, time.DateOnly),
		dimStyle.Render("download:") + " " + l.Download.Href,
	}, "\n")
	fmt.Fprintln(w, boxStyle.Render(body))
}

func renderVoid(w io.Writer, labelID string, r *shipengine.VoidResult) {
	if r.Approved {
		fmt.Fprintf(w, "%s %s %s\n", okStyle.Render("voided"), labelID, dimStyle.Render(r.Message))
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", failStyle.Render("void rejected"), labelID, r.Message)
}

func renderTracking(w io.Writer, t *shipengine.TrackingInfo) {
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render(t.TrackingNumber), t.StatusDescription)
	if !t.EstimatedDeliveryDate.IsZero() {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("estimated delivery:"), t.EstimatedDeliveryDate.Format(time.DateOnly))
	}
	for _, e := range t.Events {
		where := strings.TrimSpace(strings.Join([]string{e.City, e.State}, " "))
		fmt.Fprintf(w, "  %s  %s  %s\n",
			dimStyle.Render(formatDate(e.OccurredAt, "2006-01-02 15:04")),
			e.Description,
			dimStyle.Render(where),
		)
	}
}
