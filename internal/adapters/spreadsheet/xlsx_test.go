package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXBuilder_Build(t *testing.T) {
	builder := NewXLSXBuilder()

	data, err := builder.Build("families - data", []string{"ID", "Nombre"}, [][]string{
		{"fam-1", "Ruiz"},
		{"fam-2", "Soto"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"families - data"}, f.GetSheetList())

	rows, err := f.GetRows("families - data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Nombre"}, rows[0])
	assert.Equal(t, []string{"fam-1", "Ruiz"}, rows[1])
	assert.Equal(t, []string{"fam-2", "Soto"}, rows[2])

	width, err := f.GetColWidth("families - data", "B")
	require.NoError(t, err)
	assert.InDelta(t, 18, width, 0.01)
}

func TestXLSXBuilder_Build_empty(t *testing.T) {
	builder := NewXLSXBuilder()

	data, err := builder.Build("invitations - data", []string{"ID"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("invitations - data")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"ID"}, rows[0])
}
