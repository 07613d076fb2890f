package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "directives"},
		{give: "config"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.False(t, tt.give.Known())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.give.Known())
			}
		})
	}
}

func TestHelp_usageIsFirstLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, UsageHelp.Write(&buf))
	assert.Equal(t, "USAGE: codemark [OPTIONS] PATTERN ...\n", buf.String())
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	var h Help
	require.NoError(t, h.Set("true"))
	assert.Equal(t, DefaultHelp, h)

	require.NoError(t, h.Set(" Directives "))
	assert.Equal(t, Help("directives"), h)
	assert.Equal(t, h, h.Get())
	assert.True(t, h.IsBoolFlag())
}
