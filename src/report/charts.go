// charts.go
package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"NTDAnalysis/src/processor"
	"NTDAnalysis/src/utils"
)

var (
	trendColor  = color.RGBA{R: 0, G: 0, B: 255, A: 255}     // blue
	topColor    = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	bottomColor = color.RGBA{R: 144, G: 238, B: 144, A: 255} // lightgreen
	histColor   = color.RGBA{R: 65, G: 105, B: 225, A: 255}  // royalblue
)

// ChartRenderer 将聚合结果渲染为PNG图表
// 渲染失败不影响已经算出的统计结果
type ChartRenderer struct {
	OutputDir string
	Events    map[string]string // 年份 -> 事件标注，画在趋势图对应年份上
}

// RenderAll 输出全部图表，返回每个失败图表的错误
func (r *ChartRenderer) RenderAll(
	years []processor.YearAggregate,
	top, bottom []processor.CountryTotal,
	values []float64,
	latestYear int,
) []error {
	var errs []error

	if err := utils.EnsureDir(r.OutputDir); err != nil {
		return []error{fmt.Errorf("创建输出目录失败: %w", err)}
	}

	if err := r.TrendLine(years, "ntd_trend.png"); err != nil {
		errs = append(errs, fmt.Errorf("趋势图: %w", err))
	}
	if err := r.RankingBars(top,
		fmt.Sprintf("Top Countries with Most NTD Cases in %d", latestYear),
		"ntd_top_countries.png", topColor); err != nil {
		errs = append(errs, fmt.Errorf("高位国家排名图: %w", err))
	}
	if err := r.RankingBars(bottom,
		fmt.Sprintf("Countries with Least NTD Cases in %d", latestYear),
		"ntd_bottom_countries.png", bottomColor); err != nil {
		errs = append(errs, fmt.Errorf("低位国家排名图: %w", err))
	}
	if err := r.Histogram(values, 30, "ntd_distribution.png"); err != nil {
		errs = append(errs, fmt.Errorf("分布直方图: %w", err))
	}

	return errs
}

// TrendLine 年度总病例数折线图，带数据点标记和事件标注
func (r *ChartRenderer) TrendLine(years []processor.YearAggregate, filename string) error {
	if len(years) == 0 {
		return fmt.Errorf("没有年度数据")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trend of NTD Cases (%d-%d)", years[0].Year, years[len(years)-1].Year)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total NTD Cases"

	pts := make(plotter.XYs, len(years))
	for i, ya := range years {
		pts[i].X = float64(ya.Year)
		pts[i].Y = ya.Value
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = trendColor
	line.Width = vg.Points(2)
	p.Add(line)

	markers, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	markers.GlyphStyle.Color = trendColor
	markers.GlyphStyle.Radius = vg.Points(3)
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(markers)

	if err := r.addEventLabels(p, years); err != nil {
		return err
	}

	p.Add(plotter.NewGrid())

	return p.Save(10*vg.Inch, 6*vg.Inch, filepath.Join(r.OutputDir, filename))
}

// addEventLabels 在趋势线上标注配置的年份事件
func (r *ChartRenderer) addEventLabels(p *plot.Plot, years []processor.YearAggregate) error {
	if len(r.Events) == 0 {
		return nil
	}

	byYear := make(map[int]float64, len(years))
	maxVal := 0.0
	for _, ya := range years {
		byYear[ya.Year] = ya.Value
		if ya.Value > maxVal {
			maxVal = ya.Value
		}
	}

	var xys plotter.XYs
	var texts []string
	for yearStr, label := range r.Events {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			continue
		}
		v, ok := byYear[year]
		if !ok {
			continue
		}
		// 标注放在数据点略上方
		xys = append(xys, plotter.XY{X: float64(year), Y: v + maxVal*0.02})
		texts = append(texts, label)
	}
	if len(xys) == 0 {
		return nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

// RankingBars 国家排名柱状图
func (r *ChartRenderer) RankingBars(entries []processor.CountryTotal, title, filename string, fill color.Color) error {
	if len(entries) == 0 {
		return fmt.Errorf("没有排名数据")
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "NTD Cases"

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Total
		labels[i] = e.Location
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = fill
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	return p.Save(10*vg.Inch, 6*vg.Inch, filepath.Join(r.OutputDir, filename))
}

// Histogram 病例数分布直方图
func (r *ChartRenderer) Histogram(values []float64, bins int, filename string) error {
	if len(values) == 0 {
		return fmt.Errorf("没有数据")
	}

	p := plot.New()
	p.Title.Text = "Distribution of NTD Cases"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "NTD Case Counts"
	p.Y.Label.Text = "Frequency"

	hist, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return err
	}
	hist.FillColor = histColor
	p.Add(hist)

	return p.Save(10*vg.Inch, 6*vg.Inch, filepath.Join(r.OutputDir, filename))
}
