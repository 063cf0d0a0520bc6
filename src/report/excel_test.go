package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"NTDAnalysis/src/processor"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()

	sum := processor.Summary{
		Count: 3, Sum: 350, Min: 50, Max: 200,
		Mean: 116.666, Median: 100, Mode: 50, StdDev: 76.3, Range: 150,
	}
	rep := processor.CleanReport{NonNumeric: 2, Duplicates: 1}

	err := WriteWorkbook(dir, "report.xlsx", sum, rep, testYears,
		testTop, []processor.CountryTotal{{Location: "Chad", Total: 5}})
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	path := filepath.Join(dir, "report.xlsx")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	// 三个工作表齐全
	sheets := f.GetSheetList()
	want := map[string]bool{sheetSummary: false, sheetTrend: false, sheetRankings: false}
	for _, s := range sheets {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing sheet %q", name)
		}
	}

	if got, _ := f.GetCellValue(sheetSummary, "A2"); got != "Count" {
		t.Errorf("Summary A2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheetSummary, "B2"); got != "3" {
		t.Errorf("Summary B2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheetTrend, "A2"); got != "2015" {
		t.Errorf("YearlyTrend A2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheetRankings, "A2"); got != "Nigeria" {
		t.Errorf("Rankings A2 = %q", got)
	}
	if got, _ := f.GetCellValue(sheetRankings, "D2"); got != "Chad" {
		t.Errorf("Rankings D2 = %q", got)
	}
}

func TestWriteWorkbookCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	err := WriteWorkbook(dir, "report.xlsx", processor.Summary{Count: 1},
		processor.CleanReport{}, testYears, testTop, testTop)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	if _, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx")); err != nil {
		t.Fatalf("workbook missing in created dir: %v", err)
	}
}
