package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePanel(t *testing.T) {
	tests := []struct {
		input   string
		want    Panel
		wantErr bool
	}{
		{input: "security", want: Security},
		{input: "SECURITY", want: Security},
		{input: "Cyber-Defense", want: Security},
		{input: "ai_engineer", want: AgentOrchestrator},
		{input: "agents", want: AgentOrchestrator},
		{input: "  builder ", want: Builder},
		{input: "voice relay", want: Voice},
		{input: "kernel", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePanel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPanel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPanels_RoundTrip(t *testing.T) {
	all := Panels()
	require.Len(t, all, 8)
	assert.Equal(t, Dashboard, all[0])

	for _, p := range all {
		assert.True(t, p.Valid())
		parsed, err := ParsePanel(p.Slug())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
		assert.NotEmpty(t, p.Label())
	}

	assert.False(t, Panel(-1).Valid())
	assert.Equal(t, "UNKNOWN", Panel(99).Code())
}

func TestSelector(t *testing.T) {
	s := NewSelector()
	assert.Equal(t, Dashboard, s.Current())

	require.NoError(t, s.Select(Vision))
	assert.Equal(t, Vision, s.Current())

	assert.ErrorIs(t, s.Select(Panel(8)), ErrUnknownPanel)
	assert.Equal(t, Vision, s.Current())

	require.NoError(t, s.Select(Memory))
	assert.Equal(t, Dashboard, s.Next())
	assert.Equal(t, Memory, s.Prev())
	assert.Equal(t, Voice, s.Prev())
}
