package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerWriteAndSubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	ch := logger.Subscribe()
	logger.Info("校验服务启动")
	logger.Error("读取数据失败")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "INFO: 校验服务启动") {
		t.Errorf("缺少INFO日志: %q", content)
	}
	if !strings.Contains(content, "ERROR: 读取数据失败") {
		t.Errorf("缺少ERROR日志: %q", content)
	}

	select {
	case msg := <-ch:
		if !strings.Contains(msg, "校验服务启动") {
			t.Errorf("订阅消息 = %q", msg)
		}
	case <-time.After(time.Second):
		t.Error("订阅者未收到日志")
	}
}

func TestLoggerRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	logger, err := NewLogger(path)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	for i := 0; i < 50; i++ {
		logger.Debug(strings.Repeat("x", 100))
	}
	// 上限1KB，应触发轮转
	if err := logger.CheckRotate("1 * 1024"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 2 {
		t.Errorf("轮转后应有新旧两个日志文件, 实际 %d", len(entries))
	}

	// 轮转后还能继续写
	logger.Info("轮转之后")
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "轮转之后") {
		t.Error("轮转后写入失败")
	}
}

func TestEval(t *testing.T) {
	if got := eval("10 * 1024 * 1024"); got != 10*1024*1024 {
		t.Errorf("eval = %d", got)
	}
	if got := eval("512"); got != 512 {
		t.Errorf("eval = %d", got)
	}
}
