// dataset.go
package engine

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind 列的声明类型
type Kind int

const (
	KindNumeric Kind = iota // 数值列
	KindTextual             // 文本列
	KindMixed               // 混合/未知类型列
)

// String 实现Kind的String方法
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTextual:
		return "textual"
	case KindMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ParseKind 从配置字符串解析列类型
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "float", "int":
		return KindNumeric, nil
	case "textual", "text", "string":
		return KindTextual, nil
	case "mixed", "object", "unknown":
		return KindMixed, nil
	}
	return KindMixed, fmt.Errorf("无法识别的列类型: %q", s)
}

// Column 数据集中的一列
// cells 中的 nil 表示缺失值，不参与任何统计
type Column struct {
	Name  string
	Kind  Kind
	cells []any
}

// NewColumn 创建一列数据
func NewColumn(name string, kind Kind, cells []any) Column {
	cp := make([]any, len(cells))
	copy(cp, cells)
	return Column{Name: name, Kind: kind, cells: cp}
}

// Len 返回行数
func (c Column) Len() int { return len(c.cells) }

// IsNull 判断第i行是否为缺失值
func (c Column) IsNull(i int) bool {
	return i < 0 || i >= len(c.cells) || c.cells[i] == nil
}

// Value 返回第i行的原始值，缺失值返回nil
func (c Column) Value(i int) any {
	if i < 0 || i >= len(c.cells) {
		return nil
	}
	return c.cells[i]
}

// nullCount 统计缺失值数量
func (c Column) nullCount() int {
	n := 0
	for _, v := range c.cells {
		if v == nil {
			n++
		}
	}
	return n
}

// Dataset 内存中的矩形数据集：若干等长的命名列
// 校验阶段只读，各检查之间不共享任何可变状态
type Dataset struct {
	cols []Column
	nrow int
}

// NewDataset 由列构造数据集
// 不变量：各列等长、列名唯一
func NewDataset(cols ...Column) (*Dataset, error) {
	nrow := 0
	if len(cols) > 0 {
		nrow = cols[0].Len()
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if c.Len() != nrow {
			return nil, fmt.Errorf("列 %q 行数 %d 与数据集行数 %d 不一致", c.Name, c.Len(), nrow)
		}
		if _, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("列名 %q 重复", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return &Dataset{cols: cols, nrow: nrow}, nil
}

// NumRows 返回行数
func (d *Dataset) NumRows() int { return d.nrow }

// NumCols 返回列数
func (d *Dataset) NumCols() int { return len(d.cols) }

// Columns 按声明顺序返回所有列
func (d *Dataset) Columns() []Column { return d.cols }

// Col 按列名查找
func (d *Dataset) Col(name string) (Column, bool) {
	for _, c := range d.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// SetKind 覆盖某列的声明类型（配置中指定时使用）
func (d *Dataset) SetKind(name string, kind Kind) bool {
	for i := range d.cols {
		if d.cols[i].Name == name {
			d.cols[i].Kind = kind
			return true
		}
	}
	return false
}

// FromDataFrame 将gota的DataFrame转换为Dataset
// series类型映射：Int/Float/Bool → numeric，String → textual
// NA元素一律转为nil
func FromDataFrame(df dataframe.DataFrame) (*Dataset, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataframe错误: %w", df.Err)
	}

	cols := make([]Column, 0, len(df.Names()))
	for _, name := range df.Names() {
		s := df.Col(name)
		cells := make([]any, s.Len())

		for i := 0; i < s.Len(); i++ {
			el := s.Elem(i)
			if el.IsNA() {
				continue // 保持nil
			}
			switch s.Type() {
			case series.Int:
				v, err := el.Int()
				if err != nil {
					continue
				}
				cells[i] = v
			case series.Float:
				cells[i] = el.Float()
			case series.Bool:
				v, err := el.Bool()
				if err != nil {
					continue
				}
				cells[i] = v
			default:
				cells[i] = el.String()
			}
		}

		kind := KindTextual
		switch s.Type() {
		case series.Int, series.Float, series.Bool:
			kind = KindNumeric
		}
		cols = append(cols, Column{Name: name, Kind: kind, cells: cells})
	}

	return NewDataset(cols...)
}
