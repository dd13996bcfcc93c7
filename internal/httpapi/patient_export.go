package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

var patientExportHeader = []string{
	"ID",
	"First Name",
	"Last Name",
	"Date Of Birth",
	"Contact",
}

// Export handles GET /api/patients/export: the full roster as xlsx.
func (h *PatientHandler) Export(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("export patients failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to export patients"))
		return
	}

	data, err := generatePatientExport(patients)
	if err != nil {
		h.logger.Error("generate patient export failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="patients.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func generatePatientExport(patients []domain.Patient) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Patients"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range patientExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, p := range patients {
		values := []any{p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Contact}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	_ = f.Close()
	return buf.Bytes(), nil
}
