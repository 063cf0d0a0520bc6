// stats.go
package processor

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary FactValueNumeric列的描述性统计
type Summary struct {
	Count  int
	Sum    float64
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Mode   float64
	StdDev float64
	Range  float64
}

// Describe 计算清洗后数据集的描述性统计
// 纯函数，与行顺序无关
func Describe(df dataframe.DataFrame) (Summary, error) {
	vals := df.Col(ColValue).Float()
	if len(vals) == 0 {
		return Summary{}, fmt.Errorf("数据集为空，无法计算统计量")
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(vals),
		Sum:    floats.Sum(vals),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(vals, nil),
		Median: median(sorted),
		Mode:   mode(sorted),
		StdDev: stat.StdDev(vals, nil),
	}
	s.Range = s.Max - s.Min

	if len(vals) == 1 {
		// 单个样本的样本标准差无定义
		s.StdDev = 0
	}

	return s, nil
}

// median 输入必须已排序，偶数个样本取中间两数均值
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode 输入必须已排序，出现次数并列时取最小值
func mode(sorted []float64) float64 {
	best := sorted[0]
	bestCount := 0

	cur := sorted[0]
	curCount := 0
	for _, v := range sorted {
		if v == cur {
			curCount++
		} else {
			cur = v
			curCount = 1
		}
		if curCount > bestCount {
			best = cur
			bestCount = curCount
		}
	}
	return best
}
