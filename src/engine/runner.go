// runner.go
package engine

import (
	"fmt"
	"sync"
	"time"
)

// 默认阈值
const (
	DefaultMissingThreshold     = 0.05
	DefaultIQRMultiplier        = 1.5
	DefaultCorrelationThreshold = 0.95
)

// CheckConfig 各检查的阈值配置，单次运行期间不可变
type CheckConfig struct {
	MissingThreshold     float64 `json:"missing_threshold"`     // 缺失比例阈值，[0,1]
	IQRMultiplier        float64 `json:"iqr_multiplier"`        // IQR倍数，>=0
	CorrelationThreshold float64 `json:"correlation_threshold"` // 相关系数阈值，[0,1]
}

// DefaultCheckConfig 返回默认阈值配置
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		MissingThreshold:     DefaultMissingThreshold,
		IQRMultiplier:        DefaultIQRMultiplier,
		CorrelationThreshold: DefaultCorrelationThreshold,
	}
}

// Validate 校验阈值范围
// 非法配置属于调用方契约违反，在构造期报错而不是在检查内部出意外
func (c CheckConfig) Validate() error {
	if c.MissingThreshold < 0 || c.MissingThreshold > 1 {
		return fmt.Errorf("missing_threshold 必须在[0,1]内: %v", c.MissingThreshold)
	}
	if c.IQRMultiplier < 0 {
		return fmt.Errorf("iqr_multiplier 不能为负: %v", c.IQRMultiplier)
	}
	if c.CorrelationThreshold < 0 || c.CorrelationThreshold > 1 {
		return fmt.Errorf("correlation_threshold 必须在[0,1]内: %v", c.CorrelationThreshold)
	}
	return nil
}

// Report 一次完整校验的聚合结果
// Results 按 AllCheckKinds 的固定顺序排列，逐检查、逐列保留细节
type Report struct {
	Rows      int
	Cols      int
	Results   []Result
	StartedAt time.Time
	Duration  time.Duration
}

// Passed 全部检查通过才算通过，细节仍在Results中
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Result 按检查类型取单个结果
func (r *Report) Result(kind CheckKind) (Result, bool) {
	for _, res := range r.Results {
		if res.Kind == kind {
			return res, true
		}
	}
	return Result{}, false
}

// Runner 校验执行器：对同一份只读数据集执行全部检查
type Runner struct {
	cfg CheckConfig
}

// NewRunner 创建执行器，配置非法时报错
func NewRunner(cfg CheckConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("检查配置非法: %w", err)
	}
	return &Runner{cfg: cfg}, nil
}

// Config 返回执行器的阈值配置
func (r *Runner) Config() CheckConfig { return r.cfg }

// Run 对数据集执行全部四项检查
// 检查之间相互独立且无共享可变状态，并发执行后按固定顺序汇总
// 数据集为nil属于调用方契约违反
func (r *Runner) Run(ds *Dataset) (*Report, error) {
	if ds == nil {
		return nil, fmt.Errorf("数据集不能为nil")
	}

	start := time.Now()
	checks := []func(*Dataset) Result{
		func(d *Dataset) Result { return CheckMissingValues(d, r.cfg.MissingThreshold) },
		func(d *Dataset) Result { return CheckDataTypes(d) },
		func(d *Dataset) Result { return CheckOutliers(d, r.cfg.IQRMultiplier) },
		func(d *Dataset) Result { return CheckCorrelations(d, r.cfg.CorrelationThreshold) },
	}

	results := make([]Result, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, check func(*Dataset) Result) {
			defer wg.Done()
			results[i] = check(ds)
		}(i, check)
	}
	wg.Wait()

	return &Report{
		Rows:      ds.NumRows(),
		Cols:      ds.NumCols(),
		Results:   results,
		StartedAt: start,
		Duration:  time.Since(start),
	}, nil
}
