// monitor.go
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// dataExts 监控的数据文件扩展名
var dataExts = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
}

// Monitor 监控数据目录，文件写入后触发回调
type Monitor struct {
	watchDir string
	watcher  *fsnotify.Watcher
	lastFile string
	lastMod  time.Time
	mu       sync.Mutex
}

func NewMonitor(dir string) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &Monitor{
		watchDir: dir,
		watcher:  watcher,
	}, nil
}

// Close 停止监控
func (m *Monitor) Close() error {
	return m.watcher.Close()
}

// Watch 阻塞监听，每个新写入的数据文件调用一次handler
// ctx取消后返回nil
func (m *Monitor) Watch(ctx context.Context, handler func(string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := dataExts[strings.ToLower(filepath.Ext(event.Name))]; !ok {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			fresh := event.Name != m.lastFile || info.ModTime().After(m.lastMod)
			if fresh {
				m.lastFile = event.Name
				m.lastMod = info.ModTime()
			}
			m.mu.Unlock()

			if fresh {
				go handler(event.Name)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
