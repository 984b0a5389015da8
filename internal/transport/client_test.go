package transport_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dukerupert/shipengine/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithTimeout(t *testing.T) {
	tests := []struct {
		name           string
		timeout        time.Duration
		wantHeaderWait time.Duration
	}{
		{"longer than header wait", 2 * time.Minute, 2 * time.Minute},
		{"shorter than header wait", 5 * time.Second, 20 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := transport.DefaultConfig().WithTimeout(tt.timeout)
			assert.Equal(t, tt.timeout, cfg.Timeout)
			assert.Equal(t, tt.wantHeaderWait, cfg.ResponseHeader)

			client := transport.NewHTTPClient(cfg)
			assert.Equal(t, tt.timeout, client.Timeout)
			tr, ok := client.Transport.(*http.Transport)
			require.True(t, ok)
			assert.Equal(t, tt.wantHeaderWait, tr.ResponseHeaderTimeout)
		})
	}
}

func TestConfig_WithTimeoutLeavesDefaultUntouched(t *testing.T) {
	_ = transport.DefaultConfig().WithTimeout(time.Hour)
	assert.Equal(t, 30*time.Second, transport.DefaultConfig().Timeout)
}
