package analytics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"gamecraft/internal/database"
)

const (
	sheetApplications    = "지원서 목록"
	sheetStatistics      = "통계 요약"
	sheetCompanyAnalysis = "회사별 분석"
)

// ExportFilename is the attachment name for a spreadsheet generated on
// the given day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("gamecraft_applications_%s.xlsx", now.Format("2006-01-02"))
}

// ExportExcel renders the full application set into a three-sheet
// workbook: the raw list, a textual statistics summary, and a
// per-company analysis table. Applications must have User preloaded.
func ExportExcel(apps []database.Application, totalUsers int64) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetApplications)
	if err := writeApplicationSheet(f, apps); err != nil {
		return nil, fmt.Errorf("application sheet: %w", err)
	}
	if err := writeStatisticsSheet(f, apps, totalUsers); err != nil {
		return nil, fmt.Errorf("statistics sheet: %w", err)
	}
	if err := writeCompanySheet(f, apps); err != nil {
		return nil, fmt.Errorf("company sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func writeApplicationSheet(f *excelize.File, apps []database.Application) error {
	headers := []string{
		"ID", "지원자명", "이메일", "회사", "포지션", "경력", "고용형태",
		"상태", "지원일", "수정일", "급여", "근무지", "시작가능일",
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#ADD8E6"}},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetApplications, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetApplications, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, app := range apps {
		row := []any{
			app.ID,
			app.User.Name,
			app.User.Email,
			app.Company,
			app.Position,
			string(app.ExperienceLevel),
			string(app.JobType),
			app.Status.Description(),
			app.CreatedAt.Format("2006-01-02 15:04:05"),
			app.UpdatedAt.Format("2006-01-02 15:04:05"),
			app.ExpectedSalary,
			app.WorkLocation,
			app.AvailableStartDate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetApplications, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetApplications, "A", "M", 18)
}

func writeStatisticsSheet(f *excelize.File, apps []database.Application, totalUsers int64) error {
	if _, err := f.NewSheet(sheetStatistics); err != nil {
		return err
	}

	rows := []string{
		"기본 통계",
		fmt.Sprintf("총 지원서 수: %d", len(apps)),
		fmt.Sprintf("총 지원자 수: %d", totalUsers),
		"",
		"상태별 통계",
	}
	r := 1
	for _, line := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetCellValue(sheetStatistics, cell, line); err != nil {
			return err
		}
		r++
	}

	for _, entry := range StatusAnalysis(apps) {
		if entry.Count == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, r)
		row := []any{entry.Description, entry.Count}
		if err := f.SetSheetRow(sheetStatistics, cell, &row); err != nil {
			return err
		}
		r++
	}

	r++
	cell, _ := excelize.CoordinatesToCellName(1, r)
	if err := f.SetCellValue(sheetStatistics, cell, "회사별 통계"); err != nil {
		return err
	}
	r++
	for _, entry := range CompanyAnalysis(apps) {
		cell, _ := excelize.CoordinatesToCellName(1, r)
		row := []any{entry.Company, entry.Count}
		if err := f.SetSheetRow(sheetStatistics, cell, &row); err != nil {
			return err
		}
		r++
	}

	return f.SetColWidth(sheetStatistics, "A", "B", 28)
}

func writeCompanySheet(f *excelize.File, apps []database.Application) error {
	if _, err := f.NewSheet(sheetCompanyAnalysis); err != nil {
		return err
	}

	header := []any{"회사명", "지원자 수", "합격자 수", "합격률 (%)", "평균 처리시간 (일)"}
	if err := f.SetSheetRow(sheetCompanyAnalysis, "A1", &header); err != nil {
		return err
	}

	for i, entry := range CompanyAnalysis(apps) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{entry.Company, entry.Count, entry.Accepted, entry.AcceptanceRate, entry.AvgProcessingDays}
		if err := f.SetSheetRow(sheetCompanyAnalysis, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetCompanyAnalysis, "A", "E", 18)
}
