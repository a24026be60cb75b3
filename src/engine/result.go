// result.go
package engine

// CheckKind 检查类型，固定的四种
type CheckKind int

const (
	MissingValue CheckKind = iota // 缺失值检查
	TypeConsistency               // 类型一致性检查
	Outlier                       // 离群值检查
	Correlation                   // 相关性检查
)

// AllCheckKinds 按固定顺序列出全部检查
var AllCheckKinds = []CheckKind{MissingValue, TypeConsistency, Outlier, Correlation}

// String 实现CheckKind的String方法
func (k CheckKind) String() string {
	switch k {
	case MissingValue:
		return "missing_values"
	case TypeConsistency:
		return "data_types"
	case Outlier:
		return "outliers"
	case Correlation:
		return "correlations"
	default:
		return "unknown"
	}
}

// OutlierStat 单列的离群值统计
type OutlierStat struct {
	Count int     // 离群值个数
	Ratio float64 // 离群值占总行数比例
	Lower float64 // IQR下界
	Upper float64 // IQR上界
}

// CorrelatedPair 一对高相关列，Left在数据集中的声明顺序先于Right
type CorrelatedPair struct {
	Left        string
	Right       string
	Coefficient float64 // 相关系数绝对值
}

// Result 单个检查的统一输出
// Passed 为 false 时，对应检查的 issue 字段非空，
// Recommendations 与 issue 顺序一一对应（类型检查除外，见 CheckDataTypes）
// Result 是 (dataset, config) 的纯函数结果，没有可变生命周期
type Result struct {
	Kind   CheckKind
	Passed bool

	// 各检查专属的issue载荷，仅对应Kind的字段会被填充
	MissingRatios   map[string]float64     // MissingValue: 问题列→缺失比例
	TypeIssues      []string               // TypeConsistency: 按列序的消息
	OutlierStats    map[string]OutlierStat // Outlier: 问题列→统计
	CorrelatedPairs []CorrelatedPair       // Correlation: 按索引升序的列对

	Recommendations []string
}

// IssueCount 返回该结果包含的问题条数
func (r Result) IssueCount() int {
	switch r.Kind {
	case MissingValue:
		return len(r.MissingRatios)
	case TypeConsistency:
		return len(r.TypeIssues)
	case Outlier:
		return len(r.OutlierStats)
	case Correlation:
		return len(r.CorrelatedPairs)
	}
	return 0
}
