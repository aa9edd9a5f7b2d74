package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderFollowsHeaderOrder(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"ID", "Name", "Code"},
		Rows: []map[string]string{
			{"Code": "ADM", "ID": "1", "Name": "Admissions"},
			{"ID": "2", "Name": "Accounts"},
		},
	}

	raw, err := NewCSVExporter().Render(dataset)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Code", lines[0])
	assert.Equal(t, "1,Admissions,ADM", lines[1])
	assert.Equal(t, "2,Accounts,", lines[2])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	dataset := Dataset{
		Headers: []string{"Date", "Collection"},
		Rows: []map[string]string{
			{"Date": "2026-08-01", "Collection": "12500.00"},
		},
	}

	raw, err := NewPDFExporter().Render(dataset, "Daily Sales")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestFitCellTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 60)

	fitted := fitCell(long)

	assert.Len(t, []rune(fitted), maxCellRunes)
	assert.True(t, strings.HasSuffix(fitted, "..."))
	assert.Equal(t, "short", fitCell("short"))
}
