// rank.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// CountryTotal 单个国家/地区的病例总数
type CountryTotal struct {
	Location string
	Total    float64
}

// CountryTotals 按国家分组求和
// 总数降序排列，总数相同时按国家名升序
func CountryTotals(df dataframe.DataFrame) []CountryTotal {
	if df.Nrow() == 0 {
		return nil
	}

	locs := df.Col(ColLocation).Records()
	vals := df.Col(ColValue).Float()

	sums := make(map[string]float64)
	for i, loc := range locs {
		sums[loc] += vals[i]
	}

	out := make([]CountryTotal, 0, len(sums))
	for loc, total := range sums {
		out = append(out, CountryTotal{Location: loc, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// Rank 取病例数最多和最少的各K个国家
// top取排序列表头部，bottom取尾部，2K不超过国家数时两者必然不相交
// top按总数降序，bottom按总数升序，并列时都按国家名升序
func Rank(totals []CountryTotal, k int) (top, bottom []CountryTotal) {
	if k <= 0 || len(totals) == 0 {
		return nil, nil
	}
	if k > len(totals) {
		k = len(totals)
	}

	top = append([]CountryTotal(nil), totals[:k]...)

	bottom = append([]CountryTotal(nil), totals[len(totals)-k:]...)
	sort.Slice(bottom, func(i, j int) bool {
		if bottom[i].Total != bottom[j].Total {
			return bottom[i].Total < bottom[j].Total
		}
		return bottom[i].Location < bottom[j].Location
	})

	return top, bottom
}

// RankForYear 只统计指定年份的行再排名
func RankForYear(df dataframe.DataFrame, year, k int) (top, bottom []CountryTotal) {
	if df.Nrow() == 0 {
		return nil, nil
	}

	filtered := df.Filter(
		dataframe.F{Colname: ColPeriod, Comparator: series.Eq, Comparando: year},
	)
	if filtered.Err != nil || filtered.Nrow() == 0 {
		return nil, nil
	}

	return Rank(CountryTotals(filtered), k)
}
