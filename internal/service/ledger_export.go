package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportApartmentBills exports an apartment's bill ledger to an Excel file
func (s *ledgerService) ExportApartmentBills(apartmentID uint) ([]byte, string, error) {
	bills, err := s.store.Ledger().GetBillsByApartment(apartmentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get bills: %w", err)
	}

	residents, err := s.store.Residents().GetResidentsByApartment(apartmentID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get residents: %w", err)
	}
	residentNames := make(map[uint]string, len(residents))
	for _, resident := range residents {
		residentNames[resident.ID] = resident.Name
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Bills"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Resident", "Period", "Amount", "Status", "Last Operation", "Operation Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "G1", headerStyle)
	}

	for i, bill := range bills {
		row := i + 2

		lastOperation := ""
		lastOperationDate := ""
		if n := len(bill.Operations); n > 0 {
			lastOperation = string(bill.Operations[n-1].Operation)
			lastOperationDate = bill.Operations[n-1].Date
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), residentNames[bill.ResidentID])
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bill.Period)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), bill.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(bill.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), lastOperation)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), lastOperationDate)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("bills_apartment_%d_%s.xlsx", apartmentID, timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
