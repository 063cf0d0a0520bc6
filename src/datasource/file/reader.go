// reader.go
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"

	"NTDAnalysis/src/utils"
)

// LoadError 输入文件缺失、不可读或缺少必需列时返回
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("加载数据文件 %s 失败: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ReadToDataFrame 按扩展名选择csv或xlsx读取
func ReadToDataFrame(filePath, sheetName string) (dataframe.DataFrame, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if utils.Contains([]string{".xlsx", ".xlsm"}, ext) {
		return ReadXLSXToDataFrame(filePath, sheetName)
	}
	return ReadCSVToDataFrame(filePath)
}

// ReadCSVToDataFrame 读取CSV文件为DataFrame
// 所有列保持字符串类型，数值转换留给清洗阶段处理
func ReadCSVToDataFrame(filePath string) (dataframe.DataFrame, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: err}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: df.Err}
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: fmt.Errorf("文件没有数据行")}
	}

	return df, nil
}

// ReadXLSXToDataFrame 读取xlsx工作表为DataFrame
func ReadXLSXToDataFrame(filePath, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: err}
	}

	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: fmt.Errorf("excel文件中没有工作表")}
	}

	sheet, ok := xlFile.Sheet[sheetName]
	if !ok {
		// 未配置工作表名时退回第一个工作表
		if sheetName != "" {
			return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: fmt.Errorf("工作表 %s 不存在", sheetName)}
		}
		sheet = xlFile.Sheets[0]
	}

	df, err := convertSheetToDataFrame(sheet)
	if err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: filePath, Err: err}
	}

	return df, nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
// 第一行是标题行，其余为数据行
func convertSheetToDataFrame(sheet *xlsx.Sheet) (dataframe.DataFrame, error) {
	if len(sheet.Rows) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("工作表没有数据行")
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.String())
	}
	if len(headers) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("工作表没有标题行")
	}

	// 准备数据列
	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			if i < len(row.Cells) {
				columns[i] = append(columns[i], row.Cells[i].String())
			} else {
				columns[i] = append(columns[i], "")
			}
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}

	df := dataframe.New(seriesList...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// CheckColumns 校验必需列是否齐全，缺列视为加载失败
func CheckColumns(df dataframe.DataFrame, filePath string, required []string) error {
	var missing []string
	for _, col := range required {
		if !utils.HasColumn(df, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &LoadError{
			Path: filePath,
			Err:  fmt.Errorf("缺少必需列: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
