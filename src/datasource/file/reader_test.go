package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tealeg/xlsx"

	"DataLint/src/config"
	"DataLint/src/engine"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSVToDataset(t *testing.T) {
	path := writeCSV(t, "age,name,score\n20,alice,90.5\n30,bob,88.0\n25,carol,79.5\n")

	ds, err := ReadCSVToDataset(path)
	if err != nil {
		t.Fatalf("ReadCSVToDataset: %v", err)
	}
	if ds.NumRows() != 3 || ds.NumCols() != 3 {
		t.Fatalf("形状 = %dx%d, 期望 3x3", ds.NumRows(), ds.NumCols())
	}

	age, _ := ds.Col("age")
	if age.Kind != engine.KindNumeric {
		t.Errorf("age.Kind = %v, 期望 numeric", age.Kind)
	}
	name, _ := ds.Col("name")
	if name.Kind != engine.KindTextual {
		t.Errorf("name.Kind = %v, 期望 textual", name.Kind)
	}
}

func TestReadDatasetAppliesKinds(t *testing.T) {
	path := writeCSV(t, "code,qty\n001,5\n002,7\n003,2\n")

	dcfg := &config.DataConfig{ColumnKinds: map[string]string{
		"code":    "textual",
		"unknown": "numeric", // 不存在的列应被忽略
	}}
	ds, err := ReadDataset(path, "", dcfg)
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	code, _ := ds.Col("code")
	if code.Kind != engine.KindTextual {
		t.Errorf("code.Kind = %v, 期望 textual", code.Kind)
	}
}

func TestReadDatasetUnsupportedExt(t *testing.T) {
	if _, err := ReadDataset("data.parquet", "", nil); err == nil {
		t.Error("不支持的扩展名应报错")
	}
}

func writeXLSX(t *testing.T) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("明细")
	if err != nil {
		t.Fatal(err)
	}

	header := sheet.AddRow()
	for _, h := range []string{"id", "value"} {
		header.AddCell().Value = h
	}
	for _, rec := range [][]string{{"1", "10.5"}, {"2", "11.0"}, {"3", ""}} {
		row := sheet.AddRow()
		for _, v := range rec {
			row.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadXLSXToDataset(t *testing.T) {
	path := writeXLSX(t)

	ds, err := ReadXLSXToDataset(path, "明细")
	if err != nil {
		t.Fatalf("ReadXLSXToDataset: %v", err)
	}
	if ds.NumRows() != 3 || ds.NumCols() != 2 {
		t.Fatalf("形状 = %dx%d, 期望 3x2", ds.NumRows(), ds.NumCols())
	}

	if _, err := ReadXLSXToDataset(path, "不存在的表"); err == nil {
		t.Error("不存在的工作表应报错")
	}
}

func TestDatasetFromXLSXBytes(t *testing.T) {
	path := writeXLSX(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	ds, err := DatasetFromXLSXBytes(data, "")
	if err != nil {
		t.Fatalf("DatasetFromXLSXBytes: %v", err)
	}
	if ds.NumRows() != 3 {
		t.Errorf("行数 = %d, 期望 3", ds.NumRows())
	}
}
