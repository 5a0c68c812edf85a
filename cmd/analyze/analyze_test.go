package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerchat/cmd/analyze"
)

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze", analyze.Cmd.Use)
	assert.Contains(t, analyze.Cmd.Short, "analytics snapshot")
	assert.NotNil(t, analyze.Cmd.RunE)
}

func TestAnalyzeCommand_FormatFlag(t *testing.T) {
	format := analyze.Cmd.Flags().Lookup("format")
	assert.NotNil(t, format)
	assert.Equal(t, "json", format.DefValue)
}
