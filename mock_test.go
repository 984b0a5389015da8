package shipengine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/shipengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_Defaults(t *testing.T) {
	m := shipengine.NewMockProvider()
	ctx := context.Background()

	results, err := m.ValidateAddresses(ctx, shipengine.Address{Line1: "a"}, shipengine.Address{Line1: "b"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[1].MatchedAddress.Line1)

	rates, err := m.GetRates(ctx, shipengine.Shipment{}, shipengine.NewRateOptions("se-1", "se-2"))
	require.NoError(t, err)
	require.Len(t, rates.Rates, 2)
	assert.Equal(t, "se-2", rates.Rates[1].CarrierID)

	_, err = m.GetRates(ctx, shipengine.Shipment{}, shipengine.RateOptions{})
	assert.ErrorIs(t, err, shipengine.ErrEmptyRateOptions)

	label, err := m.CreateLabel(ctx, shipengine.Shipment{CarrierID: "se-1"}, shipengine.LabelOptions{TestLabel: true})
	require.NoError(t, err)
	assert.NotEmpty(t, label.ID)
	assert.Equal(t, "se-1", label.CarrierID)
	assert.NotEqual(t, label.ID, label.ShipmentID)

	_, err = m.VoidLabel(ctx, "")
	assert.ErrorIs(t, err, shipengine.ErrIDRequired)

	assert.Equal(t, []string{"ValidateAddresses", "GetRates", "GetRates", "CreateLabel", "VoidLabel"}, m.CallLog())
}

func TestMockProvider_Funcs(t *testing.T) {
	boom := errors.New("carrier outage")
	m := &shipengine.MockProvider{
		ListCarriersFunc: func(ctx context.Context) ([]shipengine.Carrier, error) {
			return nil, boom
		},
		TrackLabelFunc: func(ctx context.Context, labelID string) (*shipengine.TrackingInfo, error) {
			return &shipengine.TrackingInfo{TrackingNumber: labelID, StatusCode: "DE"}, nil
		},
	}

	var p shipengine.Provider = m
	_, err := p.ListCarriers(context.Background())
	assert.ErrorIs(t, err, boom)

	info, err := p.TrackLabel(context.Background(), "se-9")
	require.NoError(t, err)
	assert.True(t, info.Delivered())
	assert.Equal(t, "se-9", info.TrackingNumber)
}

func TestMockProvider_DownloadLabel(t *testing.T) {
	m := shipengine.NewMockProvider()
	store := &memoryStore{objects: map[string][]byte{}, types: map[string]string{}}

	loc, err := m.DownloadLabel(context.Background(), &shipengine.Label{ID: "se-1"}, shipengine.LabelPNG, store)
	require.NoError(t, err)
	assert.Equal(t, "mem://labels/se-1.png", loc)
	assert.Equal(t, "image/png", store.types["labels/se-1.png"])
}
