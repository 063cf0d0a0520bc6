// excel.go
package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"NTDAnalysis/src/processor"
	"NTDAnalysis/src/utils"
)

const (
	sheetSummary  = "Summary"
	sheetTrend    = "YearlyTrend"
	sheetRankings = "Rankings"
)

// WriteWorkbook 将统计结果汇总为Excel报表
// 三个工作表: 描述统计、年度趋势、国家排名
func WriteWorkbook(
	outputDir, filename string,
	sum processor.Summary,
	rep processor.CleanReport,
	years []processor.YearAggregate,
	top, bottom []processor.CountryTotal,
) error {
	if err := utils.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)
	writeSummarySheet(f, sum, rep)

	if _, err := f.NewSheet(sheetTrend); err != nil {
		return err
	}
	writeTrendSheet(f, years)

	if _, err := f.NewSheet(sheetRankings); err != nil {
		return err
	}
	writeRankingsSheet(f, top, bottom)

	path := filepath.Join(outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存Excel报表失败: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sum processor.Summary, rep processor.CleanReport) {
	rows := []struct {
		name  string
		value interface{}
	}{
		{"Count", sum.Count},
		{"Sum", sum.Sum},
		{"Minimum", sum.Min},
		{"Maximum", sum.Max},
		{"Average (Mean)", sum.Mean},
		{"Median", sum.Median},
		{"Mode", sum.Mode},
		{"Standard Deviation", sum.StdDev},
		{"Range", sum.Range},
		{"Rows Dropped in Cleaning", rep.Dropped()},
	}

	f.SetCellValue(sheetSummary, "A1", "Statistic")
	f.SetCellValue(sheetSummary, "B1", "Value")
	for i, row := range rows {
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", i+2), row.name)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", i+2), row.value)
	}
}

func writeTrendSheet(f *excelize.File, years []processor.YearAggregate) {
	f.SetCellValue(sheetTrend, "A1", "Year")
	f.SetCellValue(sheetTrend, "B1", "TotalCases")
	for i, ya := range years {
		f.SetCellValue(sheetTrend, fmt.Sprintf("A%d", i+2), ya.Year)
		f.SetCellValue(sheetTrend, fmt.Sprintf("B%d", i+2), ya.Value)
	}
}

func writeRankingsSheet(f *excelize.File, top, bottom []processor.CountryTotal) {
	f.SetCellValue(sheetRankings, "A1", "Top Location")
	f.SetCellValue(sheetRankings, "B1", "Total")
	f.SetCellValue(sheetRankings, "D1", "Bottom Location")
	f.SetCellValue(sheetRankings, "E1", "Total")

	for i, e := range top {
		f.SetCellValue(sheetRankings, fmt.Sprintf("A%d", i+2), e.Location)
		f.SetCellValue(sheetRankings, fmt.Sprintf("B%d", i+2), e.Total)
	}
	for i, e := range bottom {
		f.SetCellValue(sheetRankings, fmt.Sprintf("D%d", i+2), e.Location)
		f.SetCellValue(sheetRankings, fmt.Sprintf("E%d", i+2), e.Total)
	}
}
