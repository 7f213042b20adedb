package tabparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) [][]string {
	t.Helper()

	var rows [][]string
	err := Parse(strings.NewReader(input), func(groups []string) {
		row := make([]string, len(groups))
		copy(row, groups)
		rows = append(rows, row)
	})
	require.NoError(t, err)
	return rows
}

func TestParseDerivesPatternFromHeader(t *testing.T) {
	input := strings.Join([]string{
		"!!-!!!",
		"ab cde",
	}, "\n")

	rows := collect(t, input)

	require.Len(t, rows, 1)
	assert.Equal(t, "ab", rows[0][1])
	assert.Equal(t, "cde", rows[0][2])
}

func TestParseSkipsCommentsBlanksAndPreHeaderLines(t *testing.T) {
	input := strings.Join([]string{
		"xx yyy",             // before any header
		"! column overview",  // comment
		"",                   // blank
		"!!-!!!",
		"! another comment",
		"ab cde",
		"",
	}, "\n")

	rows := collect(t, input)

	require.Len(t, rows, 1)
	assert.Equal(t, "ab", rows[0][1])
}

func TestParsePadsShortLines(t *testing.T) {
	// Second field is wider than the data line; padding has to fill it.
	input := strings.Join([]string{
		"!!-!!!!!!!!!!",
		"ab cd",
	}, "\n")

	rows := collect(t, input)

	require.Len(t, rows, 1)
	assert.Equal(t, "ab", rows[0][1])
	assert.Equal(t, "cd        ", rows[0][2])
}

func TestParseLaterHeaderReplacesPattern(t *testing.T) {
	input := strings.Join([]string{
		"!!-!!!",
		"ab cde",
		"!!!!-!!",
		"wxyz vw",
	}, "\n")

	rows := collect(t, input)

	require.Len(t, rows, 2)
	assert.Equal(t, "ab", rows[0][1])
	assert.Equal(t, "wxyz", rows[1][1])
	assert.Equal(t, "vw", rows[1][2])
}

func TestParseIsDeterministic(t *testing.T) {
	input := strings.Join([]string{
		"!!!!!-!!-!!",
		"AAAAA 01 XX",
		"BBBBB 02 YY",
	}, "\n")

	first := collect(t, input)
	second := collect(t, input)

	assert.Equal(t, first, second)
}

func TestParseFileReportsMissingFile(t *testing.T) {
	err := ParseFile(filepath.Join(t.TempDir(), "tab15.eng"), func([]string) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
