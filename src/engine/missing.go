// missing.go
package engine

import "fmt"

// CheckMissingValues 缺失值检查
// 逐列计算缺失比例，严格大于threshold的列记为问题列
// 比例恰好等于threshold不算问题（比较用严格>）
// 空数据集(N=0)约定缺失比例为0，直接通过
func CheckMissingValues(ds *Dataset, threshold float64) Result {
	res := Result{
		Kind:          MissingValue,
		Passed:        true,
		MissingRatios: make(map[string]float64),
	}
	if ds == nil || ds.NumRows() == 0 {
		return res
	}

	n := float64(ds.NumRows())
	for _, col := range ds.Columns() {
		ratio := float64(col.nullCount()) / n
		if ratio > threshold {
			res.MissingRatios[col.Name] = ratio
			// 建议文案沿用固定的5%口径，与配置阈值无关
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"Column '%s' has %.1f%% missing values. Consider imputation or removal if >5%%.",
				col.Name, ratio*100))
		}
	}

	res.Passed = len(res.MissingRatios) == 0
	return res
}
