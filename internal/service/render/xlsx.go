package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

const (
	xlsxReportSheet = "Report"
	xlsxChartsSheet = "Charts"
)

// renderXLSX lays the report out as a workbook: metadata and data tables on
// the Report sheet, chart images on a Charts sheet. Branding images only
// apply to the paginated formats.
func (r *Renderer) renderXLSX(report *models.Report, charts []models.RenderedChart) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxReportSheet); err != nil {
		return nil, fmt.Errorf("rename report sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	row := 1
	setRow := func(bold bool, cells ...string) error {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxReportSheet, cell, value); err != nil {
				return err
			}
			if bold {
				if err := f.SetCellStyle(xlsxReportSheet, cell, cell, boldStyle); err != nil {
					return err
				}
			}
		}
		row++
		return nil
	}

	if err := setRow(true, headerCountry); err != nil {
		return nil, fmt.Errorf("write workbook header: %w", err)
	}
	if err := setRow(true, headerMinistry); err != nil {
		return nil, fmt.Errorf("write workbook header: %w", err)
	}
	if err := setRow(true, report.Title); err != nil {
		return nil, fmt.Errorf("write workbook title: %w", err)
	}
	row++

	for _, meta := range metadataRows(report) {
		if err := setRow(false, meta.Key, meta.Value); err != nil {
			return nil, fmt.Errorf("write metadata row: %w", err)
		}
	}
	row++

	for _, table := range dataTables(report, report.Charts) {
		if err := setRow(true, table.Title); err != nil {
			return nil, fmt.Errorf("write table title: %w", err)
		}
		if err := setRow(true, table.Header...); err != nil {
			return nil, fmt.Errorf("write table header: %w", err)
		}
		for _, cells := range table.Rows {
			if err := setRow(false, cells...); err != nil {
				return nil, fmt.Errorf("write table row: %w", err)
			}
		}
		row++
	}

	if len(charts) > 0 {
		if _, err := f.NewSheet(xlsxChartsSheet); err != nil {
			return nil, fmt.Errorf("create charts sheet: %w", err)
		}
		// Roughly 28 rows per half-scale chart image.
		for i, chart := range charts {
			cell, err := excelize.CoordinatesToCellName(1, 1+i*28)
			if err != nil {
				return nil, fmt.Errorf("place chart %d: %w", i, err)
			}
			pic := &excelize.Picture{
				Extension: ".png",
				File:      chart.ImageBytes,
				Format:    &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5},
			}
			if err := f.AddPictureFromBytes(xlsxChartsSheet, cell, pic); err != nil {
				return nil, fmt.Errorf("%w: chart %q rejected by workbook writer", models.ErrCorruptChartData, chart.Spec.Title)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
