package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config 结构体定义了应用程序的配置结构
type Config struct {
	Email struct {
		Server        string   `json:"server"`         // 邮件服务器地址
		Username      string   `json:"username"`       // 邮箱用户名
		Password      string   `json:"password"`       // 邮箱密码/授权码
		TargetSubject string   `json:"target_subject"` // 需要匹配的邮件主题关键词
		CheckInterval Duration `json:"check_interval"` // 检查新邮件的间隔时间
	} `json:"email"`

	DataDir    string `json:"data_dir"`   // 待校验数据文件目录（watch模式监控该目录）
	SheetName  string `json:"sheet_name"` // xlsx数据所在工作表
	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`

	SendEmail struct {
		Server   string `json:"server"`   // SMTP服务器地址
		Username string `json:"username"` // 发件邮箱
		Password string `json:"password"` // 发件密码/授权码
		To       string `json:"to"`       // 报告收件人
	} `json:"send_email"`

	Push struct {
		Webhook string `json:"webhook"` // 校验失败时推送的webhook地址
		Token   string `json:"token"`   // webhook访问令牌
	} `json:"push"`
}

// DataConfig 数据校验配置：各检查的阈值与列的声明类型
type DataConfig struct {
	MissingThreshold     float64           `json:"missing_threshold"`     // 缺失比例阈值，缺省0.05
	IQRMultiplier        float64           `json:"iqr_multiplier"`        // IQR倍数，缺省1.5
	CorrelationThreshold float64           `json:"correlation_threshold"` // 相关系数阈值，缺省0.95
	ColumnKinds          map[string]string `json:"columnkinds"`           // 列名→声明类型(numeric/textual/mixed)
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

	return cfg, dcfg, nil
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
	dcfg.applyDefaults()
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

// applyDefaults 未配置的阈值回落到默认值
func (dc *DataConfig) applyDefaults() {
	if dc.MissingThreshold == 0 {
		dc.MissingThreshold = 0.05
	}
	if dc.IQRMultiplier == 0 {
		dc.IQRMultiplier = 1.5
	}
	if dc.CorrelationThreshold == 0 {
		dc.CorrelationThreshold = 0.95
	}
	if dc.ColumnKinds == nil {
		dc.ColumnKinds = make(map[string]string)
	}
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
// 用于从JSON字符串解析Duration
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
// 用于将Duration序列化为JSON字符串
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (dc *DataConfig) GetColumnKind(colName string) string {
	mu.RLock()
	defer mu.RUnlock()
	return dc.ColumnKinds[colName]
}

func (dc *DataConfig) SetColumnKind(colName, kind string) {
	mu.Lock()
	defer mu.Unlock()
	dc.ColumnKinds[colName] = kind
}
