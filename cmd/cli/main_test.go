package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrateArgs(t *testing.T) {
	tests := []struct {
		args      []string
		direction string
		steps     int
		wantErr   bool
	}{
		{args: nil, direction: "up"},
		{args: []string{"up"}, direction: "up"},
		{args: []string{"down"}, direction: "down", steps: 1},
		{args: []string{"down", "3"}, direction: "down", steps: 3},
		{args: []string{"down", "0"}, wantErr: true},
		{args: []string{"down", "x"}, wantErr: true},
		{args: []string{"sideways"}, wantErr: true},
	}

	for _, tt := range tests {
		direction, steps, err := parseMigrateArgs(tt.args)
		if tt.wantErr {
			assert.Error(t, err, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.direction, direction)
		assert.Equal(t, tt.steps, steps)
	}
}
