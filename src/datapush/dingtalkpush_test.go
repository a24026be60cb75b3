package datapush

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DataLint/src/engine"
)

func TestPushText(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("请求体解析失败: %v", err)
		}
		w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer srv.Close()

	p := NewPusher(srv.URL, "tok")
	if err := p.PushText("数据质量告警"); err != nil {
		t.Fatalf("PushText: %v", err)
	}
	if gotBody["msgtype"] != "text" {
		t.Errorf("msgtype = %v", gotBody["msgtype"])
	}
}

func TestPushTextServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errcode":310000,"errmsg":"keywords not in content"}`))
	}))
	defer srv.Close()

	p := NewPusher(srv.URL, "")
	p.client.Timeout = time.Second
	if err := p.PushText("hello"); err == nil {
		t.Error("非零errcode应报错")
	}
}

func TestPushTextNoWebhook(t *testing.T) {
	p := NewPusher("", "")
	if err := p.PushText("x"); err == nil {
		t.Error("缺少webhook应报错")
	}
}

func TestPushReportSkipsPassed(t *testing.T) {
	// 没有服务器，通过的报告不应触发任何请求
	p := NewPusher("http://127.0.0.1:1", "")
	rep := &engine.Report{
		Rows: 10,
		Cols: 2,
		Results: []engine.Result{
			{Kind: engine.MissingValue, Passed: true},
		},
	}
	if err := p.PushReport(rep); err != nil {
		t.Errorf("通过的报告不应推送: %v", err)
	}
}
