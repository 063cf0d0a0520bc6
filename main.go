package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"NTDAnalysis/src/config"
	"NTDAnalysis/src/datasource/file"
	"NTDAnalysis/src/processor"
	"NTDAnalysis/src/report"
	"NTDAnalysis/src/storage"
	"NTDAnalysis/src/utils"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	dataJsonFile := "dataconfig.json"
	cfg, dcfg, err := config.LoadConfig(jsonFolder, jsonFile, dataJsonFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 命令行可覆盖输入文件路径: -data 标志或第一个位置参数
	dataFlag := flag.String("data", "", "输入数据文件路径，覆盖配置中的data_path")
	flag.Parse()

	dataPath := cfg.DataPath
	if *dataFlag != "" {
		dataPath = *dataFlag
	} else if flag.NArg() > 0 {
		dataPath = flag.Arg(0)
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	if err := run(cfg, dcfg, dataPath, logger); err != nil {
		logger.Fatal(err.Error())
		log.Fatal(err)
	}

	logger.CheckRotate(cfg.LogMaxSize)
}

// run 完整的单趟分析流程: 加载 -> 清洗 -> 统计/聚合/排名 -> 输出
// 只有加载和清洗失败是致命错误，图表和报表失败降级为日志告警
func run(cfg *config.Config, dcfg *config.DataConfig, dataPath string, logger *storage.Logger) error {
	logger.Info(fmt.Sprintf("开始分析: %s", dataPath))

	// 1. 加载数据
	df, err := file.ReadToDataFrame(dataPath, cfg.SheetName)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("数据加载完成: %d 行 %d 列", df.Nrow(), df.Ncol()))

	locCol := dcfg.GetColumn("location", processor.ColLocation)
	perCol := dcfg.GetColumn("period", processor.ColPeriod)
	valCol := dcfg.GetColumn("value", processor.ColValue)

	if err := file.CheckColumns(df, dataPath, []string{locCol, perCol, valCol}); err != nil {
		return err
	}

	// 2. 清洗
	cleaned, rep, err := processor.Clean(df, processor.CleanOptions{
		MinYear:     cfg.MinYear,
		MaxYear:     cfg.MaxYear,
		LocationCol: locCol,
		PeriodCol:   perCol,
		ValueCol:    valCol,
		Aliases:     dcfg.Aliases,
	})
	if err != nil {
		return err
	}
	if rep.Dropped() > 0 {
		logger.Warning(rep.String())
	}
	logger.Info(fmt.Sprintf("清洗完成: 保留 %d 行", cleaned.Nrow()))

	// 3. 统计与聚合
	summary, err := processor.Describe(cleaned)
	if err != nil {
		return fmt.Errorf("统计分析失败: %w", err)
	}

	years := processor.YearlyTotals(cleaned)
	totals := processor.CountryTotals(cleaned)
	top, bottom := processor.Rank(totals, cfg.TopN)

	latest := processor.LatestYear(cleaned)
	topLatest, bottomLatest := processor.RankForYear(cleaned, latest, cfg.TopN)

	printSummary(summary, rep, years, top, topLatest, latest)

	// 4. 输出报表和图表(非致命)
	if err := report.WriteWorkbook(cfg.OutputDir, "ntd_report.xlsx",
		summary, rep, years, top, bottom); err != nil {
		logger.Error(fmt.Sprintf("生成Excel报表失败: %v", err))
	}

	renderer := &report.ChartRenderer{
		OutputDir: cfg.OutputDir,
		Events:    dcfg.Events,
	}
	chartTop, chartBottom := topLatest, bottomLatest
	if len(chartTop) == 0 {
		chartTop, chartBottom = top, bottom
	}
	for _, err := range renderer.RenderAll(years, chartTop, chartBottom,
		cleaned.Col(processor.ColValue).Float(), latest) {
		logger.Error(fmt.Sprintf("图表渲染失败: %v", err))
	}

	if cfg.ExportCleaned {
		path := filepath.Join(cfg.OutputDir, "cleaned_dataset.xlsx")
		if err := utils.SaveToExcel(cleaned, path); err != nil {
			logger.Error(fmt.Sprintf("导出清洗数据失败: %v", err))
		}
	}

	logger.Info("分析完成")
	return nil
}

// printSummary 控制台输出，数值按英文习惯加千位分隔
func printSummary(
	sum processor.Summary,
	rep processor.CleanReport,
	years []processor.YearAggregate,
	top, topLatest []processor.CountryTotal,
	latest int,
) {
	p := message.NewPrinter(language.English)

	fmt.Println("\nPerforming statistical analysis on: FactValueNumeric")
	p.Printf("Count: %d\n", sum.Count)
	p.Printf("Sum: %.0f\n", sum.Sum)
	p.Printf("Minimum: %.0f\n", sum.Min)
	p.Printf("Maximum: %.0f\n", sum.Max)
	p.Printf("Average (Mean): %.2f\n", sum.Mean)
	p.Printf("Median: %.1f\n", sum.Median)
	p.Printf("Mode: %.0f\n", sum.Mode)
	p.Printf("Standard Deviation: %.2f\n", sum.StdDev)
	p.Printf("Range: %.0f\n", sum.Range)

	if rep.Dropped() > 0 {
		fmt.Fprintf(os.Stderr, "\nCleaning: %s\n", rep.String())
	}

	fmt.Println("\nYearly totals:")
	for _, ya := range years {
		// 年份不加千位分隔
		fmt.Printf("  %d: ", ya.Year)
		p.Printf("%.0f\n", ya.Value)
	}

	fmt.Println("\nTop countries (all years):")
	for i, e := range top {
		p.Printf("  %2d. %s: %.0f\n", i+1, e.Location, e.Total)
	}

	if len(topLatest) > 0 {
		fmt.Printf("\nTop countries in %d:\n", latest)
		for i, e := range topLatest {
			p.Printf("  %2d. %s: %.0f\n", i+1, e.Location, e.Total)
		}
	}
}
