// handler.go
package email

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"DataLint/src/datasource/file"
	"DataLint/src/engine"
	"DataLint/src/storage"
)

// DatasetWrapper 封装最近一次加载的数据集并提供线程安全访问
type DatasetWrapper struct {
	ds *engine.Dataset
	mu sync.RWMutex
}

// Get 获取当前数据集(线程安全)，尚未加载时返回nil
func (d *DatasetWrapper) Get() *engine.Dataset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ds
}

// Set 替换当前数据集(线程安全)
func (d *DatasetWrapper) Set(ds *engine.Dataset) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ds = ds
}

// LoadXLSX 从附件二进制内容加载数据集
func (d *DatasetWrapper) LoadXLSX(data []byte, sheetName string) error {
	ds, err := file.DatasetFromXLSXBytes(data, sheetName)
	if err != nil {
		return err
	}
	d.Set(ds)
	return nil
}

// AttachmentHandler 负责把数据附件落盘到数据目录
type AttachmentHandler struct {
	dataDir string
}

func NewAttachmentHandler(dataDir string) *AttachmentHandler {
	return &AttachmentHandler{dataDir: dataDir}
}

// Handle 将邮件的全部xlsx附件保存到数据目录
// 文件名加UID与时间戳前缀避免覆盖，返回保存路径
func (h *AttachmentHandler) Handle(e *Email, logger *storage.Logger) ([]string, error) {
	if e == nil || len(e.Attachments) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(h.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	var saved []string
	for _, att := range e.Attachments {
		name := fmt.Sprintf("%d_%s_%s",
			e.UID, time.Now().Format("20060102150405"), filepath.Base(att.Filename))
		path := filepath.Join(h.dataDir, name)

		if err := os.WriteFile(path, att.Content, 0644); err != nil {
			return saved, fmt.Errorf("保存附件 %s 失败: %w", att.Filename, err)
		}
		logger.Info(fmt.Sprintf("附件已保存: %s", path))
		saved = append(saved, path)
	}
	return saved, nil
}
