package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"DataLint/src/engine"
)

func sampleReport() *engine.Report {
	return &engine.Report{
		Rows: 100,
		Cols: 3,
		Results: []engine.Result{
			{
				Kind:          engine.MissingValue,
				Passed:        false,
				MissingRatios: map[string]float64{"age": 0.06},
				Recommendations: []string{
					"Column 'age' has 6.0% missing values. Consider imputation or removal if >5%.",
				},
			},
			{Kind: engine.TypeConsistency, Passed: true},
			{Kind: engine.Outlier, Passed: true},
			{Kind: engine.Correlation, Passed: true},
		},
	}
}

func TestFormatText(t *testing.T) {
	text := FormatText(sampleReport())

	for _, want := range []string{
		"数据质量校验报告: 不通过",
		"100 行 x 3 列",
		"[missing_values] 不通过 (1 个问题)",
		"[data_types] 通过",
		"Column 'age' has 6.0% missing values",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("报告文本缺少 %q:\n%s", want, text)
		}
	}
}

func TestSaveToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := SaveToExcel(sampleReport(), path); err != nil {
		t.Fatalf("SaveToExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("打开报告失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	// 表头 + 四项检查
	if len(rows) != 5 {
		t.Fatalf("Summary 行数 = %d, 期望 5", len(rows))
	}
	if rows[1][0] != "missing_values" || rows[1][1] != "不通过" {
		t.Errorf("第一项检查行异常: %v", rows[1])
	}

	recRows, err := f.GetRows("建议")
	if err != nil {
		t.Fatal(err)
	}
	if len(recRows) != 2 {
		t.Fatalf("建议表行数 = %d, 期望 2", len(recRows))
	}
	if !strings.Contains(recRows[1][1], "missing values") {
		t.Errorf("建议内容异常: %v", recRows[1])
	}
}
