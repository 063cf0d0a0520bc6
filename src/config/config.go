package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config 结构体定义了应用程序的配置结构
type Config struct {
	DataPath  string `json:"data_path"`  // 输入数据文件路径(csv或xlsx)
	SheetName string `json:"sheet_name"` // xlsx输入时使用的工作表名
	OutputDir string `json:"output_dir"` // 图表和报表的输出目录

	TopN    int `json:"top_n"`    // 排名取前N/后N个国家
	MinYear int `json:"min_year"` // 有效年份下限
	MaxYear int `json:"max_year"` // 有效年份上限

	ExportCleaned bool `json:"export_cleaned"` // 是否导出清洗后的数据集

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`
}

// DataConfig 分析相关配置：列名映射、年份事件标注、国家名别名
type DataConfig struct {
	Columns map[string]string `json:"columns"` // location/period/value -> 实际列名
	Events  map[string]string `json:"events"`  // 年份 -> 事件说明(画在趋势图上)
	Aliases map[string]string `json:"aliases"` // 国家名标准化映射
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
	mu                 sync.RWMutex
)

func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	var err error
	once.Do(func() {
		instance, dataConfigInstance, err = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, err
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	dataConfigFile := filepath.Join(jsonFolder, dataJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	dataConfigData, err := readFile(dataConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取数据配置文件失败: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	cfg, dcfg, err := waitForResults(cfgChan, dcfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	cfg.applyDefaults()
	return cfg, dcfg, nil
}

// applyDefaults 为缺省字段填充默认值
func (c *Config) applyDefaults() {
	if c.TopN <= 0 {
		c.TopN = 10
	}
	if c.MinYear == 0 {
		c.MinYear = 2010
	}
	if c.MaxYear == 0 {
		c.MaxYear = 2021
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.LogName == "" {
		c.LogName = "app.log"
	}
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("解析Config失败: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	var dcfg DataConfig
	if err := json.Unmarshal(data, &dcfg); err != nil {
		errChan <- fmt.Errorf("解析DataConfig失败: %w", err)
		return
	}
	resultChan <- &dcfg
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg    *Config
		dcfg   *DataConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("部分配置未加载成功")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "配置加载遇到多个错误:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// GetColumn 查找逻辑列对应的实际列名，未配置时返回默认值
func (dc *DataConfig) GetColumn(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()
	if name, ok := dc.Columns[key]; ok && name != "" {
		return name
	}
	return fallback
}
