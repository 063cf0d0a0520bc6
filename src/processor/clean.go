// clean.go
package processor

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"NTDAnalysis/src/utils"
)

// 清洗后数据集的规范列名
const (
	ColLocation = "Location"
	ColPeriod   = "Period"
	ColValue    = "FactValueNumeric"
)

// CleanOptions 清洗规则参数
type CleanOptions struct {
	MinYear int
	MaxYear int

	// 逻辑列到输入文件实际列名的映射，为空时使用规范列名
	LocationCol string
	PeriodCol   string
	ValueCol    string

	// 国家名标准化映射(如 "Viet Nam" -> "Vietnam")
	Aliases map[string]string
}

// CleanReport 各清洗规则丢弃的行数统计
type CleanReport struct {
	EmptyLocation int // Location为空
	BadPeriod     int // Period无法解析或超出年份范围
	NonNumeric    int // FactValueNumeric无法转换为数值
	Negative      int // FactValueNumeric为负
	Duplicates    int // 完全重复的行
}

// Dropped 丢弃的总行数
func (r CleanReport) Dropped() int {
	return r.EmptyLocation + r.BadPeriod + r.NonNumeric + r.Negative + r.Duplicates
}

func (r CleanReport) String() string {
	return fmt.Sprintf("丢弃 %d 行(空国家名:%d 无效年份:%d 非数值:%d 负值:%d 重复:%d)",
		r.Dropped(), r.EmptyLocation, r.BadPeriod, r.NonNumeric, r.Negative, r.Duplicates)
}

// Clean 清洗原始DataFrame并生成规范三列数据集
// 规则顺序: 标准化国家名 -> 年份转换与范围过滤 -> 数值转换 -> 负值过滤 -> 去重
// 输入DataFrame不被修改，清洗是幂等的
func Clean(df dataframe.DataFrame, opts CleanOptions) (dataframe.DataFrame, CleanReport, error) {
	rep := CleanReport{}

	locCol := defaultCol(opts.LocationCol, ColLocation)
	perCol := defaultCol(opts.PeriodCol, ColPeriod)
	valCol := defaultCol(opts.ValueCol, ColValue)

	for _, col := range []string{locCol, perCol, valCol} {
		if !utils.HasColumn(df, col) {
			return dataframe.DataFrame{}, rep, fmt.Errorf("清洗失败: 缺少列 %s", col)
		}
	}

	locRecs := df.Col(locCol).Records()
	perRecs := df.Col(perCol).Records()
	valRecs := df.Col(valCol).Records()

	n := df.Nrow()
	locs := make([]string, 0, n)
	years := make([]int, 0, n)
	vals := make([]float64, 0, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		loc := strings.TrimSpace(locRecs[i])
		if alias, ok := opts.Aliases[loc]; ok {
			loc = alias
		}
		if loc == "" {
			rep.EmptyLocation++
			continue
		}

		year, ok := parseYear(perRecs[i])
		if !ok || year < opts.MinYear || year > opts.MaxYear {
			rep.BadPeriod++
			continue
		}

		v, ok := parseNumeric(valRecs[i])
		if !ok {
			rep.NonNumeric++
			continue
		}
		if v < 0 {
			rep.Negative++
			continue
		}

		key := rowKey(loc, year, v)
		if seen[key] {
			rep.Duplicates++
			continue
		}
		seen[key] = true

		locs = append(locs, loc)
		years = append(years, year)
		vals = append(vals, v)
	}

	cleaned := dataframe.New(
		series.New(locs, series.String, ColLocation),
		series.New(years, series.Int, ColPeriod),
		series.New(vals, series.Float, ColValue),
	)
	if cleaned.Err != nil {
		return dataframe.DataFrame{}, rep, fmt.Errorf("构建清洗结果失败: %w", cleaned.Err)
	}

	return cleaned, rep, nil
}

func defaultCol(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// parseYear 年份可能带小数形式("2015"或"2015.000000")
func parseYear(s string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	year := int(f)
	if f != float64(year) {
		return 0, false
	}
	return year, true
}

// parseNumeric 转换报告病例数，剥离格式化数字中的分隔符
// WHO导出的"Value"列带千位分隔符和窄空格
// 注意: 再次清洗时数值经过Records()的6位小数格式化，
// 超过6位小数的值会被截断; 病例数为整数，不受影响
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// rowKey 行去重键，取(国家,年份,数值)拼接串的MD5
func rowKey(loc string, year int, v float64) string {
	s := fmt.Sprintf("%s|%d|%g", loc, year, v)
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])
}
