package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/repositories"
	"event-rental/pkg/types"
)

const inventorySheet = "Inventory"

var inventoryHeaders = []interface{}{"UID", "Type", "Brand", "Model", "Number", "Serial number"}

type InventoryExportServiceInterface interface {
	// WriteWorkbook streams every equipment row matching filter.Search as XLSX.
	WriteWorkbook(ctx context.Context, filter types.Filter, w io.Writer) error
}

type InventoryExportService struct {
	repo   repositories.EquipmentRepositoryInterface
	logger *zap.Logger
}

func NewInventoryExportService(repo repositories.EquipmentRepositoryInterface, logger *zap.Logger) InventoryExportServiceInterface {
	return &InventoryExportService{repo: repo, logger: logger}
}

func taxonomyName(item *entities.TaxonomyItem) string {
	if item == nil {
		return ""
	}
	return item.Name
}

func inventoryRow(e *entities.Equipment) []interface{} {
	return []interface{}{
		e.UID, taxonomyName(e.Type), taxonomyName(e.Brand), taxonomyName(e.Model),
		e.Number, e.SerialNumber.String,
	}
}

func (s *InventoryExportService) WriteWorkbook(ctx context.Context, filter types.Filter, w io.Writer) error {
	// no paging: the export carries the whole inventory
	filter.Limit, filter.Offset = 0, 0
	units, _, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load equipment for export", zap.Error(err))
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(inventorySheet, "A1", &inventoryHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(inventorySheet, "A1", "F1", style)
	}

	for i, e := range units {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := inventoryRow(e)
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(inventorySheet, "A", "A", 14)
	_ = f.SetColWidth(inventorySheet, "B", "D", 24)
	_ = f.SetColWidth(inventorySheet, "F", "F", 24)

	s.logger.Info("inventory exported", zap.Int("rows", len(units)))
	return f.Write(w)
}
