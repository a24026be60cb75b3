// types.go
package engine

import "fmt"

// typeName 单元格值的具体类型名，用于混合类型消息
func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int32, int64:
		return "int"
	case float32, float64:
		return "float"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// CheckDataTypes 类型一致性检查
// 文本/混合列：统计非缺失元素的具体类型，超过一种即为混合类型
// 数值列：逐元素尝试数值转换，存在转换失败即标记为含非数值
// 每列至多产生一条消息，消息顺序与列的声明顺序一致
// 建议只有一条通用文案，且仅在存在问题时出现
func CheckDataTypes(ds *Dataset) Result {
	res := Result{Kind: TypeConsistency, Passed: true}
	if ds == nil {
		return res
	}

	for _, col := range ds.Columns() {
		switch col.Kind {
		case KindTextual, KindMixed:
			var names []string
			seen := make(map[string]struct{})
			for i := 0; i < col.Len(); i++ {
				if col.IsNull(i) {
					continue
				}
				tn := typeName(col.Value(i))
				if _, ok := seen[tn]; !ok {
					seen[tn] = struct{}{}
					names = append(names, tn)
				}
			}
			if len(names) > 1 {
				res.TypeIssues = append(res.TypeIssues, fmt.Sprintf(
					"Column '%s' has mixed types: %v", col.Name, names))
			}
		case KindNumeric:
			for i := 0; i < col.Len(); i++ {
				if col.IsNull(i) {
					continue // 缺失值不算转换失败
				}
				if _, ok := coerceFloat(col.Value(i)); !ok {
					res.TypeIssues = append(res.TypeIssues, fmt.Sprintf(
						"Column '%s' contains non-numeric values", col.Name))
					break
				}
			}
		}
	}

	if len(res.TypeIssues) > 0 {
		res.Passed = false
		res.Recommendations = []string{"Consider explicit type conversion or data cleaning"}
	}
	return res
}
