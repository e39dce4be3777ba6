package wallet

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/wallet/models"
)

const statementSheet = "Statement"

var statementHeader = []string{"ID", "Дата", "Тип", "Заказ", "Сумма", "Остаток"}

// ExportStatement формирует выписку кошелька в формате .xlsx.
// Остаток считается нарастающим итогом по записям периода.
func (s *Service) ExportStatement(ctx context.Context, principal domain.Principal, req *models.GetWalletRequest) (*bytes.Buffer, error) {
	s.logger.Info("ExportStatement: exporting wallet of staff=%d for user=%d", req.StaffID, principal.UserID)

	staff, err := s.authorize(ctx, "ExportStatement", principal, req)
	if err != nil {
		return nil, err
	}

	entries, err := s.walletRepo.ListByStaff(ctx, req.StaffID, req.From, req.To)
	if err != nil {
		s.logger.Error("ExportStatement: failed to list entries of staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ExportStatement - entries: %v", ErrInternal, err)
	}

	buf, err := buildStatement(staff, entries)
	if err != nil {
		s.logger.Error("ExportStatement: failed to build xlsx for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ExportStatement - build xlsx: %v", ErrInternal, err)
	}

	s.logger.Info("ExportStatement: staff=%d, rows=%d, size=%d bytes", req.StaffID, len(entries), buf.Len())
	return buf, nil
}

func buildStatement(staff *domain.Staff, entries []domain.WalletEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := f.SetCellValue(statementSheet, "A1", fmt.Sprintf("Мастер: %s (id=%d)", staff.Name, staff.ID)); err != nil {
		return nil, err
	}

	if err := writeRow(f, 2, toAny(statementHeader)); err != nil {
		return nil, err
	}

	var running int64
	for i, e := range entries {
		running += e.AmountMinor
		var orderID interface{} = ""
		if e.OrderID != nil {
			orderID = *e.OrderID
		}
		row := []interface{}{
			e.ID,
			e.CreatedAt.UTC().Format(time.RFC3339),
			string(e.Kind),
			orderID,
			minorToMajor(e.AmountMinor),
			minorToMajor(running),
		}
		if err := writeRow(f, i+3, row); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(statementSheet, "A2", "F2", style)
	}
	_ = f.SetColWidth(statementSheet, "B", "B", 22)
	_ = f.SetColWidth(statementSheet, "C", "C", 12)

	return f.WriteToBuffer()
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(statementSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(values []string) []interface{} {
	result := make([]interface{}, len(values))
	for i, v := range values {
		result[i] = v
	}
	return result
}

// minorToMajor переводит копейки в рубли для отображения в таблице
func minorToMajor(minor int64) float64 {
	return float64(minor) / 100
}
