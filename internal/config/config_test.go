package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse()
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.StoreBackend)
	require.Equal(t, "redis", cfg.LockBackend)
	require.Equal(t, "redis", cfg.NotifyBackend)
	require.Equal(t, 24*time.Hour, cfg.PaymentGrace)
	require.Equal(t, 10.0, cfg.FinePercent)
	require.Equal(t, "flag", cfg.OverdueAction)
	require.Equal(t, time.Minute, cfg.PaymentSweepInterval)
	require.Equal(t, 10*time.Second, cfg.LifecycleTickInterval)
	require.Equal(t, uint16(8085), cfg.HttpServerPort)
	require.True(t, cfg.UsesRedis())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOCK_BACKEND", "local")
	t.Setenv("NOTIFY_BACKEND", "log")
	t.Setenv("PAYMENT_GRACE", "48h")
	t.Setenv("FINE_PERCENT", "12.5")
	t.Setenv("FINE_MINIMUM", "20")
	t.Setenv("OVERDUE_ACTION", "cancel")

	cfg, err := parse()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.StoreBackend)
	require.Equal(t, 48*time.Hour, cfg.PaymentGrace)
	require.Equal(t, 12.5, cfg.FinePercent)
	require.Equal(t, 20.0, cfg.FineMinimum)
	require.Equal(t, "cancel", cfg.OverdueAction)
	require.False(t, cfg.UsesRedis())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown_store", "STORE_BACKEND", "mongo"},
		{"unknown_overdue_action", "OVERDUE_ACTION", "ignore"},
		{"fine_over_100", "FINE_PERCENT", "150"},
		{"zero_grace", "PAYMENT_GRACE", "0s"},
		{"low_port", "HTTP_SERVER_PORT", "80"},
		{"not_a_duration", "LOCK_TTL", "soon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := parse()
			require.Error(t, err)
		})
	}
}
