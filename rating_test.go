package shipengine_test

import (
	"testing"

	"github.com/dukerupert/shipengine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func usd(amount string) shipengine.Money {
	return shipengine.Money{Currency: "usd", Amount: decimal.RequireFromString(amount)}
}

func TestNewRateOptions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"keeps order", []string{"se-3", "se-1", "se-2"}, []string{"se-3", "se-1", "se-2"}},
		{"drops duplicates", []string{"se-1", "se-2", "se-1"}, []string{"se-1", "se-2"}},
		{"drops blanks", []string{"", " se-1 ", "  "}, []string{"se-1"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := shipengine.NewRateOptions(tt.in...)
			assert.Equal(t, tt.want, opts.CarrierIDs)
			assert.Equal(t, len(tt.want) == 0, opts.IsEmpty())
		})
	}
}

func TestRateOptions_IsEmptyOnLiteral(t *testing.T) {
	assert.True(t, shipengine.RateOptions{}.IsEmpty())
	assert.True(t, shipengine.RateOptions{CarrierIDs: []string{" "}}.IsEmpty())
	assert.False(t, shipengine.RateOptions{CarrierIDs: []string{"se-1"}}.IsEmpty())
}

func TestRate_Total(t *testing.T) {
	r := shipengine.Rate{
		ShippingAmount:     usd("9.45"),
		InsuranceAmount:    usd("1.10"),
		ConfirmationAmount: usd("2.50"),
		OtherAmount:        usd("0.05"),
	}
	total := r.Total()
	assert.Equal(t, "usd", total.Currency)
	assert.True(t, decimal.RequireFromString("13.10").Equal(total.Amount))
	assert.Equal(t, "13.10 USD", total.String())
}

func TestRateResponse_Cheapest(t *testing.T) {
	resp := &shipengine.RateResponse{Rates: []shipengine.Rate{
		{ID: "a", ShippingAmount: usd("12.00")},
		{ID: "b", ShippingAmount: usd("8.00"), OtherAmount: usd("1.00")},
		{ID: "c", ShippingAmount: usd("9.50")},
	}}

	best, ok := resp.Cheapest()
	assert.True(t, ok)
	assert.Equal(t, "b", best.ID)

	_, ok = (&shipengine.RateResponse{}).Cheapest()
	assert.False(t, ok)
}

func TestRateResponse_ByService(t *testing.T) {
	resp := &shipengine.RateResponse{Rates: []shipengine.Rate{
		{ID: "a", ServiceCode: "usps_priority_mail"},
		{ID: "b", ServiceCode: "ups_ground"},
		{ID: "c", ServiceCode: "usps_first_class_mail"},
	}}

	got := resp.ByService("usps_priority_mail", "usps_first_class_mail")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	}
	assert.Empty(t, resp.ByService("fedex_ground"))
}

func TestLabelDownload_For(t *testing.T) {
	d := shipengine.LabelDownload{Href: "h", PDF: "p", PNG: "n", ZPL: "z"}
	assert.Equal(t, "h", d.For(""))
	assert.Equal(t, "p", d.For(shipengine.LabelPDF))
	assert.Equal(t, "n", d.For(shipengine.LabelPNG))
	assert.Equal(t, "z", d.For(shipengine.LabelZPL))
}
