package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pngalemo/portfolio/internal/config"
)

func TestSelfAPIBase(t *testing.T) {
	tests := []struct {
		addr string
		tls  bool
		want string
	}{
		{":5001", false, "http://localhost:5001/api"},
		{"0.0.0.0:8080", false, "http://localhost:8080/api"},
		{"127.0.0.1:8443", true, "https://127.0.0.1:8443/api"},
		{"example.com", false, "http://example.com/api"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, selfAPIBase(tt.addr, tt.tls))
		})
	}
}

func TestOpenStores_RejectsUnknownScheme(t *testing.T) {
	_, err := openStores(context.Background(), config.DatabaseConfig{DSN: "redis://localhost:6379"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database scheme")
}
