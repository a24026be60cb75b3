// stats.go
package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// coerceFloat 尝试把单元格的值转换为float64
// 字符串走strconv解析，bool按0/1处理，nil与不可解析的值返回false
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// columnFloats 提取一列中全部非缺失且可转数值的元素
func columnFloats(c Column) []float64 {
	out := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		if f, ok := coerceFloat(c.Value(i)); ok {
			out = append(out, f)
		}
	}
	return out
}

// pairwiseComplete 提取两列中都非缺失的行（pairwise complete语义）
func pairwiseComplete(a, b Column) (x, y []float64) {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if a.IsNull(i) || b.IsNull(i) {
			continue
		}
		fa, oka := coerceFloat(a.Value(i))
		fb, okb := coerceFloat(b.Value(i))
		if oka && okb {
			x = append(x, fa)
			y = append(y, fb)
		}
	}
	return x, y
}

// quantile 线性插值分位数，p取[0,1]
// 约定与numpy的linear方法一致：rank = p*(n-1)，
// 在相邻样本之间线性插值。整个引擎统一使用该约定。
func quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, values)
	sort.Float64s(cp)

	if p <= 0 {
		return cp[0]
	}
	if p >= 1 {
		return cp[n-1]
	}

	rank := p * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= n {
		return cp[lower]
	}
	weight := rank - float64(lower)
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// mean 算术平均
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// pearson 皮尔逊相关系数
// 任一列零方差时返回NaN，由调用方按"不相关"处理，绝不panic
func pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
