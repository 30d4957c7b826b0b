package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"event-rental/pkg/types"
)

func TestInventoryExport_WritesOneRowPerUnit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	equipment := f.equipmentService()

	first, err := equipment.CreateEquipment(ctx, []byte(`{"type": {"name": "Speaker"}, "brand": {"name": "JBL"}, "model": {"name": "PRX815"}, "number": 1, "serial_number": "SN-1"}`))
	require.NoError(t, err)
	_, err = equipment.CreateEquipment(ctx, []byte(`{"type": {"name": "Mixer"}, "brand": {"name": "Yamaha"}, "model": {"name": "CL5"}, "number": 1}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	svc := NewInventoryExportService(f.equipment, zap.NewNop())
	require.NoError(t, svc.WriteWorkbook(ctx, types.Filter{Limit: 1}, &buf))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(inventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus every unit, ignoring the page limit")
	assert.Equal(t, []string{"UID", "Type", "Brand", "Model", "Number", "Serial number"}, rows[0])

	var found bool
	for _, row := range rows[1:] {
		if row[0] == first.UID {
			found = true
			assert.Equal(t, []string{first.UID, "Speaker", "JBL", "PRX815", "1", "SN-1"}, row)
		}
	}
	assert.True(t, found)
}
