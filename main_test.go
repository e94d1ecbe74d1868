package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStagingAddr(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint32
		wantErr bool
	}{
		{"bare hex", "90000000", 0x90000000, false},
		{"0x prefix", "0x42000000", 0x42000000, false},
		{"uppercase", "0X9FF00000", 0x9ff00000, false},
		{"short", "8000", 0x8000, false},
		{"not hex", "stage-here", 0, true},
		{"too wide", "190000000", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStagingAddr(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
