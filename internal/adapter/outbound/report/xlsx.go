package report

import (
	"fmt"
	"time"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported payments.
const SheetName = "Payments"

var headers = []string{
	"ID", "Reference", "User ID", "Listing ID", "Kind", "Boost Days",
	"Amount", "Currency", "Status", "Failure Reason", "Paid At", "Created At",
}

// xlsxReport renders payments as an Excel workbook.
type xlsxReport struct{}

// NewXLSXReport creates a new XLSX payment report renderer.
func NewXLSXReport() outbound.PaymentReportPort {
	return &xlsxReport{}
}

func (r *xlsxReport) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *xlsxReport) Extension() string { return "xlsx" }

func (r *xlsxReport) Render(payments []*model.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("open stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row(p)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func row(p *model.Payment) []interface{} {
	boostDays := ""
	if p.BoostDays != nil {
		boostDays = fmt.Sprint(*p.BoostDays)
	}
	reason := ""
	if p.FailureReason != nil {
		reason = *p.FailureReason
	}
	paidAt := ""
	if p.PaidAt != nil {
		paidAt = p.PaidAt.UTC().Format(time.RFC3339)
	}

	return []interface{}{
		p.ID.String(),
		p.Reference,
		p.UserID.String(),
		p.TargetID.String(),
		string(p.Kind),
		boostDays,
		p.Amount,
		p.Currency,
		string(p.Status),
		reason,
		paidAt,
		p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
