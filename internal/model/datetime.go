package model

import "time"

// DateTimeLayout API 上日期時間的格式 (query 參數與 JSON 回應皆同)
const DateTimeLayout = "2006-01-02 15:04:05"

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeLayout, s)
}
