package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:    "Suggested days",
		Subtitle: "svc-oil x1",
		Columns: []Column{
			{Key: "date", Title: "Date", Width: 2},
			{Key: "start", Title: "Start"},
			{Key: "score", Title: "Score"},
		},
		Rows: []map[string]string{
			{"date": "2024-03-05", "start": "08:00", "score": "8.5"},
			{"date": "2024-03-05", "start": "10:00", "score": "7.0"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestCSVRenderer(t *testing.T) {
	out, err := RendererFor(FormatCSV).Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Date,Start,Score\n2024-03-05,08:00,8.5\n2024-03-05,10:00,7.0\n", string(out))
}

func TestPDFRenderer(t *testing.T) {
	out, err := RendererFor(FormatPDF).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderRequiresColumns(t *testing.T) {
	_, err := NewCSVRenderer().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFRenderer().Render(Dataset{})
	assert.Error(t, err)
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths(sampleDataset().Columns)
	assert.InDelta(t, pdfPageWidth/2, widths[0], 0.001)
	assert.InDelta(t, pdfPageWidth/4, widths[1], 0.001)
}
