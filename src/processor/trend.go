// trend.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// YearAggregate 单个年份的聚合结果
type YearAggregate struct {
	Year  int
	Value float64
}

// YearlyTotals 按年份分组求和，按年份升序返回
func YearlyTotals(df dataframe.DataFrame) []YearAggregate {
	sums, _ := groupByYear(df)
	return sortedAggregates(sums)
}

// YearlyMeans 按年份分组求均值，按年份升序返回
func YearlyMeans(df dataframe.DataFrame) []YearAggregate {
	sums, counts := groupByYear(df)
	means := make(map[int]float64, len(sums))
	for year, sum := range sums {
		means[year] = sum / float64(counts[year])
	}
	return sortedAggregates(means)
}

// LatestYear 数据集中出现的最大年份，空数据集返回0
func LatestYear(df dataframe.DataFrame) int {
	years, _ := yearColumn(df)
	latest := 0
	for _, y := range years {
		if y > latest {
			latest = y
		}
	}
	return latest
}

func groupByYear(df dataframe.DataFrame) (sums map[int]float64, counts map[int]int) {
	years, vals := yearColumn(df)
	sums = make(map[int]float64)
	counts = make(map[int]int)
	for i, y := range years {
		sums[y] += vals[i]
		counts[y]++
	}
	return sums, counts
}

func yearColumn(df dataframe.DataFrame) ([]int, []float64) {
	if df.Nrow() == 0 {
		return nil, nil
	}
	yearsF := df.Col(ColPeriod).Float()
	vals := df.Col(ColValue).Float()
	years := make([]int, len(yearsF))
	for i, f := range yearsF {
		years[i] = int(f)
	}
	return years, vals
}

func sortedAggregates(m map[int]float64) []YearAggregate {
	out := make([]YearAggregate, 0, len(m))
	for year, v := range m {
		out = append(out, YearAggregate{Year: year, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
