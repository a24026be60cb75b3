// report.go
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"DataLint/src/engine"
)

// statusText 检查结果的中文描述
func statusText(passed bool) string {
	if passed {
		return "通过"
	}
	return "不通过"
}

// FormatText 将校验报告渲染为可直接展示的文本
// 每项检查一段，建议逐条列出，顺序与检查内部的issue顺序一致
func FormatText(rep *engine.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "数据质量校验报告: %s\n", statusText(rep.Passed()))
	fmt.Fprintf(&b, "数据集: %d 行 x %d 列, 耗时 %v\n", rep.Rows, rep.Cols, rep.Duration)

	for _, res := range rep.Results {
		fmt.Fprintf(&b, "[%s] %s", res.Kind, statusText(res.Passed))
		if n := res.IssueCount(); n > 0 {
			fmt.Fprintf(&b, " (%d 个问题)", n)
		}
		b.WriteString("\n")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	return b.String()
}

// SaveToExcel 将校验报告保存为xlsx工作簿
// Summary表汇总各检查的通过情况，建议表逐条列出整改建议
func SaveToExcel(rep *engine.Report, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	headers := []string{"检查项", "是否通过", "问题数"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}
	for rowIdx, res := range rep.Results {
		values := []any{res.Kind.String(), statusText(res.Passed), res.IssueCount()}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(summary, cell, v)
		}
	}

	recSheet := "建议"
	if _, err := f.NewSheet(recSheet); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}
	for i, h := range []string{"检查项", "整改建议"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(recSheet, cell, h)
	}
	row := 2
	for _, res := range rep.Results {
		for _, rec := range res.Recommendations {
			cellA, _ := excelize.CoordinatesToCellName(1, row)
			cellB, _ := excelize.CoordinatesToCellName(2, row)
			f.SetCellValue(recSheet, cellA, res.Kind.String())
			f.SetCellValue(recSheet, cellB, rec)
			row++
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("保存Excel报告失败: %w", err)
	}
	return nil
}
