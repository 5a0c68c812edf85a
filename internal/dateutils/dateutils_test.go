package dateutils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerchat/internal/dateutils"
)

func TestToISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"already iso", "2024-03-15", "2024-03-15", false},
		{"european", "15.03.2024", "2024-03-15", false},
		{"slash", "15/03/2024", "2024-03-15", false},
		{"dashed day first", "15-03-2024", "2024-03-15", false},
		{"short month name", "15-Mar-2024", "2024-03-15", false},
		{"whitespace", "  2024-03-15 ", "2024-03-15", false},
		{"garbage", "not a date", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dateutils.ToISO(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMonthTokens(t *testing.T) {
	byName := make(map[string]string, len(dateutils.MonthTokens))
	for _, tok := range dateutils.MonthTokens {
		require.NotEmpty(t, tok.Name)
		byName[tok.Name] = tok.Number
	}

	assert.Equal(t, "03", byName["march"])
	assert.Equal(t, "03", byName["mar"])
	assert.Equal(t, "05", byName["may"])
	assert.Equal(t, "12", byName["december"])

	// Full names precede abbreviations so a scan prefers them.
	assert.Equal(t, "january", dateutils.MonthTokens[0].Name)
	assert.Equal(t, "december", dateutils.MonthTokens[11].Name)
	assert.Equal(t, "jan", dateutils.MonthTokens[12].Name)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "March", dateutils.MonthName("03"))
	assert.Equal(t, "December", dateutils.MonthName("12"))
	assert.Equal(t, "13", dateutils.MonthName("13"), "invalid month is returned unchanged")
}

func TestElapsedDays(t *testing.T) {
	assert.Equal(t, 1, dateutils.ElapsedDays("2024-03-15", "2024-03-15"), "single day spans count as one")
	assert.Equal(t, 31, dateutils.ElapsedDays("2024-03-01", "2024-03-31"))
	assert.Equal(t, 366, dateutils.ElapsedDays("2024-01-01", "2024-12-31"), "2024 is a leap year")
	assert.Equal(t, 1, dateutils.ElapsedDays("bad", "2024-03-15"), "unparsable dates clamp to one day")
	assert.Equal(t, 1, dateutils.ElapsedDays("2024-03-15", "bad"), "unparsable dates clamp to one day")
}
