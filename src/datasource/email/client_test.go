package email

import (
	"testing"
	"time"
)

func TestFilterLatestTargetEmail(t *testing.T) {
	att := []*Attachment{{Filename: "数据.xlsx", Content: []byte{1}}}
	old := &Email{UID: 1, Subject: "质量数据 0101", Date: time.Now().Add(-2 * time.Hour), Attachments: att}
	latest := &Email{UID: 2, Subject: "质量数据 0102", Date: time.Now(), Attachments: att}
	noAtt := &Email{UID: 3, Subject: "质量数据 0103", Date: time.Now().Add(time.Hour)}
	other := &Email{UID: 4, Subject: "会议通知", Date: time.Now(), Attachments: att}

	got := filterLatestTargetEmail([]*Email{old, latest, noAtt, other}, "质量数据")
	if got == nil || got.UID != 2 {
		t.Fatalf("应选中UID=2的最新目标邮件, got=%v", got)
	}

	if filterLatestTargetEmail([]*Email{other}, "质量数据") != nil {
		t.Error("主题不匹配时应返回nil")
	}
	if filterLatestTargetEmail(nil, "质量数据") != nil {
		t.Error("空列表应返回nil")
	}
}

func TestDecodeHeader(t *testing.T) {
	// UTF-8 B编码: "质量数据"
	encoded := "=?utf-8?B?6LSo6YeP5pWw5o2u?="
	if got := decodeHeader(encoded); got != "质量数据" {
		t.Errorf("decodeHeader = %q", got)
	}

	// 普通文本原样返回
	if got := decodeHeader("plain subject"); got != "plain subject" {
		t.Errorf("decodeHeader = %q", got)
	}
}
