package services

import (
	"fmt"

	"membership-console/models"
	"membership-console/utils/logger"

	"github.com/xuri/excelize/v2"
)

// ExportService turns the base (unfiltered) entity list into a one-sheet
// spreadsheet for download.
type ExportService struct {
	logger logger.Logger
}

// NewExportService creates a new export service
func NewExportService(log logger.Logger) *ExportService {
	return &ExportService{logger: log}
}

// Workbook builds a single-sheet workbook of flat records for the given
// kind. Column set follows the canonical entity shape; the district column
// is omitted for state-level kinds.
func (s *ExportService) Workbook(kind models.EntityKind, entries []models.RegistrableEntity) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", kind.NameLabel, "State"}
	if kind.HasDistrict {
		headers = append(headers, "District")
	}
	headers = append(headers,
		"Mobile Number", "Email", "Society Certificate No",
		"Aadhar Number", "Certificate URL", "Address", "Approval Status",
	)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range entries {
		values := []interface{}{e.EntityID, e.Name, e.StateName}
		if kind.HasDistrict {
			values = append(values, e.DistrictName)
		}
		values = append(values,
			e.MobileNumber, e.Email, e.SocietyCertificateNumber,
			e.AadharNumber, e.CertificateURL, e.Address, string(e.ApprovalStatus),
		)

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	s.logger.Infof("Built %s export with %d rows", kind.Kind, len(entries))
	return f, nil
}
