// outlier.go
package engine

import "fmt"

// outlierRatioThreshold 离群比例的显著性阈值
// 固定常量，与IQR倍数是两个独立的旋钮
const outlierRatioThreshold = 0.05

// CheckOutliers IQR离群值检查
// 仅处理数值列，按声明顺序逐列：
// Q1/Q3取线性插值分位数，边界为 Q1-k*IQR 与 Q3+k*IQR，
// 严格越界(< 或 >)才算离群，缺失值与不可转数值的元素不参与
// 离群比例按总行数N计算，超过5%的列被标记
// IQR=0时边界收敛到Q1=Q3，零方差列自然无离群值
func CheckOutliers(ds *Dataset, multiplier float64) Result {
	res := Result{
		Kind:         Outlier,
		Passed:       true,
		OutlierStats: make(map[string]OutlierStat),
	}
	if ds == nil || ds.NumRows() == 0 {
		return res
	}

	n := float64(ds.NumRows())
	for _, col := range ds.Columns() {
		if col.Kind != KindNumeric {
			continue
		}
		values := columnFloats(col)
		if len(values) == 0 {
			continue // 全缺失或全部无法转换，跳过
		}

		q1 := quantile(values, 0.25)
		q3 := quantile(values, 0.75)
		iqr := q3 - q1
		lower := q1 - multiplier*iqr
		upper := q3 + multiplier*iqr

		count := 0
		for _, v := range values {
			if v < lower || v > upper {
				count++
			}
		}

		ratio := float64(count) / n
		if ratio > outlierRatioThreshold {
			res.OutlierStats[col.Name] = OutlierStat{
				Count: count,
				Ratio: ratio,
				Lower: lower,
				Upper: upper,
			}
			res.Recommendations = append(res.Recommendations, fmt.Sprintf(
				"Column '%s' has %.1f%% outliers. Consider winsorization or investigation.",
				col.Name, ratio*100))
		}
	}

	res.Passed = len(res.OutlierStats) == 0
	return res
}
