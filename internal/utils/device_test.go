package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceSummary(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			"desktop chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Desktop - Chrome",
		},
		{
			"iphone safari",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			"Mobile - Safari",
		},
		{
			"empty user agent",
			"",
			"Desktop - Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceSummary(tt.ua))
		})
	}
}
