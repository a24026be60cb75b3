package email

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tealeg/xlsx"

	"DataLint/src/storage"
)

func xlsxBytes(t *testing.T) []byte {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	header := sheet.AddRow()
	header.AddCell().Value = "v"
	row := sheet.AddRow()
	row.AddCell().Value = "1.5"

	path := filepath.Join(t.TempDir(), "tmp.xlsx")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDatasetWrapperLoadXLSX(t *testing.T) {
	var w DatasetWrapper
	if w.Get() != nil {
		t.Error("未加载时应返回nil")
	}

	if err := w.LoadXLSX(xlsxBytes(t), ""); err != nil {
		t.Fatalf("LoadXLSX: %v", err)
	}
	ds := w.Get()
	if ds == nil || ds.NumRows() != 1 || ds.NumCols() != 1 {
		t.Errorf("数据集形状异常: %v", ds)
	}

	if err := w.LoadXLSX([]byte("not an xlsx"), ""); err == nil {
		t.Error("非法内容应报错")
	}
}

func TestAttachmentHandler(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")
	logger, err := storage.NewLogger(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	dataDir := filepath.Join(dir, "data")
	h := NewAttachmentHandler(dataDir)

	e := &Email{
		UID: 7,
		Attachments: []*Attachment{
			{Filename: "报表.xlsx", Content: xlsxBytes(t)},
		},
	}
	saved, err := h.Handle(e, logger)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("保存文件数 = %d, 期望 1", len(saved))
	}
	if !strings.HasSuffix(saved[0], "报表.xlsx") {
		t.Errorf("保存路径 = %q", saved[0])
	}
	if _, err := os.Stat(saved[0]); err != nil {
		t.Errorf("文件未落盘: %v", err)
	}

	// 空邮件不报错
	if saved, err := h.Handle(nil, logger); err != nil || saved != nil {
		t.Errorf("nil邮件: saved=%v err=%v", saved, err)
	}
}
