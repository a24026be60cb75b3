// dingtalkpush.go
package datapush

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"DataLint/src/engine"
	"DataLint/src/report"
)

const (
	RetryTimes    = 3               // 推送失败重试次数
	RetryInterval = 2 * time.Second // 重试间隔
)

// DingTalkResponse 钉钉接口通用响应
type DingTalkResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Pusher 钉钉机器人推送客户端
// webhook为群机器人地址，token为自定义请求头凭证(可为空)
type Pusher struct {
	webhook string
	token   string
	client  *http.Client
}

func NewPusher(webhook, token string) *Pusher {
	return &Pusher{
		webhook: webhook,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PushText 推送文本消息，带重试
func (p *Pusher) PushText(content string) error {
	if p.webhook == "" {
		return fmt.Errorf("未配置webhook地址")
	}
	return retry(func() error {
		return p.sendText(content)
	}, RetryTimes, RetryInterval)
}

// PushReport 将校验报告推送到钉钉群
// 报告通过时不打扰，只推送失败的报告
func (p *Pusher) PushReport(rep *engine.Report) error {
	if rep.Passed() {
		return nil
	}
	return p.PushText(report.FormatText(rep))
}

// sendText 发送单条文本消息
func (p *Pusher) sendText(content string) error {
	payload := map[string]interface{}{
		"msgtype": "text",
		"text": map[string]string{
			"content": content,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %v", err)
	}

	req, err := http.NewRequest("POST", p.webhook, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("创建请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("x-acs-dingtalk-access-token", p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %v", err)
	}

	var result DingTalkResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}

	if result.ErrCode != 0 {
		return fmt.Errorf("发送消息失败: %s", result.ErrMsg)
	}

	return nil
}

// 重试函数
func retry(fn func() error, times int, interval time.Duration) error {
	var err error
	for i := 0; i < times; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < times-1 {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("重试 %d 次后失败: %v", times, err)
}
