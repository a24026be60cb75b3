// correlation.go
package engine

import (
	"fmt"
	"math"
)

// CheckCorrelations 两两相关性筛查
// 仅处理数值列，对每个无序对(i,j) i<j 计算pairwise complete的
// 皮尔逊相关系数绝对值，严格大于threshold的列对被记录
// 枚举顺序固定：外层i从0到M-1，内层j从i+1到M-1，不按系数大小排序
// 零方差列与任何列的相关系数为NaN，按不相关处理，绝不标记也绝不panic
// 数值列不足两列时直接通过
func CheckCorrelations(ds *Dataset, threshold float64) Result {
	res := Result{Kind: Correlation, Passed: true}
	if ds == nil {
		return res
	}

	var numeric []Column
	for _, col := range ds.Columns() {
		if col.Kind == KindNumeric {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) < 2 {
		return res
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			x, y := pairwiseComplete(numeric[i], numeric[j])
			r := pearson(x, y)
			if math.IsNaN(r) {
				continue
			}
			if abs := math.Abs(r); abs > threshold {
				res.CorrelatedPairs = append(res.CorrelatedPairs, CorrelatedPair{
					Left:        numeric[i].Name,
					Right:       numeric[j].Name,
					Coefficient: abs,
				})
				res.Recommendations = append(res.Recommendations, fmt.Sprintf(
					"Features '%s' and '%s' correlated at %.3f. Consider feature selection or dimensionality reduction.",
					numeric[i].Name, numeric[j].Name, abs))
			}
		}
	}

	res.Passed = len(res.CorrelatedPairs) == 0
	return res
}
