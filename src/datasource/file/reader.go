// reader.go
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/tealeg/xlsx"

	"DataLint/src/config"
	"DataLint/src/engine"
)

// ReadDataset 按扩展名读取数据文件并应用配置中的列类型声明
// 支持 .csv 与 .xlsx
func ReadDataset(filePath, sheetName string, dcfg *config.DataConfig) (*engine.Dataset, error) {
	var (
		ds  *engine.Dataset
		err error
	)

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		ds, err = ReadCSVToDataset(filePath)
	case ".xlsx":
		ds, err = ReadXLSXToDataset(filePath, sheetName)
	default:
		return nil, fmt.Errorf("不支持的文件类型: %s", filePath)
	}
	if err != nil {
		return nil, err
	}

	if dcfg != nil {
		if err := ApplyColumnKinds(ds, dcfg); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// ReadCSVToDataset 读取CSV文件，列类型由gota自动推断
func ReadCSVToDataset(filePath string) (*engine.Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开CSV文件失败: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.DetectTypes(true), dataframe.HasHeader(true))
	ds, err := engine.FromDataFrame(df)
	if err != nil {
		return nil, fmt.Errorf("CSV转换为数据集失败: %w", err)
	}
	return ds, nil
}

// ReadXLSXToDataset 读取xlsx指定工作表
// sheetName为空时取第一个工作表
func ReadXLSXToDataset(filePath, sheetName string) (*engine.Dataset, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开xlsx文件失败: %w", err)
	}
	return datasetFromWorkbook(xlFile, sheetName)
}

// DatasetFromXLSXBytes 从xlsx二进制内容读取（邮件附件走这条路）
func DatasetFromXLSXBytes(data []byte, sheetName string) (*engine.Dataset, error) {
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("解析xlsx内容失败: %w", err)
	}
	return datasetFromWorkbook(xlFile, sheetName)
}

func datasetFromWorkbook(xlFile *xlsx.File, sheetName string) (*engine.Dataset, error) {
	if len(xlFile.Sheets) == 0 {
		return nil, fmt.Errorf("excel文件中没有工作表")
	}

	sheet := xlFile.Sheets[0]
	if sheetName != "" {
		s, ok := xlFile.Sheet[sheetName]
		if !ok {
			return nil, fmt.Errorf("工作表 %q 不存在", sheetName)
		}
		sheet = s
	}

	df, err := convertSheetToDataFrame(sheet)
	if err != nil {
		return nil, err
	}
	ds, err := engine.FromDataFrame(df)
	if err != nil {
		return nil, fmt.Errorf("xlsx转换为数据集失败: %w", err)
	}
	return ds, nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
// 第一行为标题行，其余为数据，列类型由gota推断
func convertSheetToDataFrame(sheet *xlsx.Sheet) (dataframe.DataFrame, error) {
	if len(sheet.Rows) < 1 {
		return dataframe.DataFrame{}, fmt.Errorf("工作表为空")
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.Value)
	}
	if len(headers) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("标题行为空")
	}

	records := [][]string{headers}
	for _, row := range sheet.Rows[1:] {
		record := make([]string, len(headers))
		for i, cell := range row.Cells {
			if i < len(headers) { // 确保不超出列数范围
				record[i] = cell.Value
			}
		}
		records = append(records, record)
	}

	df := dataframe.LoadRecords(records, dataframe.DetectTypes(true))
	if df.Err != nil {
		return df, fmt.Errorf("构建dataframe失败: %w", df.Err)
	}
	return df, nil
}

// ApplyColumnKinds 将配置中的列类型声明应用到数据集
// 声明里提到但数据集中不存在的列直接忽略
func ApplyColumnKinds(ds *engine.Dataset, dcfg *config.DataConfig) error {
	for name, kindStr := range dcfg.ColumnKinds {
		kind, err := engine.ParseKind(kindStr)
		if err != nil {
			return fmt.Errorf("列 %q 的类型声明非法: %w", name, err)
		}
		ds.SetKind(name, kind)
	}
	return nil
}
