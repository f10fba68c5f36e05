package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchList(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
	}{
		{"", nil},
		{"2244", []int{2244}},
		{"2244, 702,962", []int{2244, 702, 962}},
		// Kaputte Einträge werden übersprungen.
		{"2244,abc, ,702", []int{2244, 702}},
	}
	for _, tt := range tests {
		c := &Config{WatchCIDs: tt.raw}
		assert.Equal(t, tt.want, c.WatchList(), "WatchCIDs=%q", tt.raw)
	}
}
