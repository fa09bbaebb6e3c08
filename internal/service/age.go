package service

import (
	"time"
)

// dateLayouts 支持的日期格式：完整日期或只有年份
var dateLayouts = []string{"2006-01-02", "2006"}

// parseFlexibleDate 解析YYYY-MM-DD或YYYY格式的日期
func parseFlexibleDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ageBetween 计算出生日期到截止日期之间的整年数
//
// 截止日期的月/日尚未到出生日的周年时减一，结果不小于零。
// 出生日期缺失或无法解析时返回false。
func ageBetween(birthDate, endDate string, now time.Time) (int, bool) {
	if birthDate == "" {
		return 0, false
	}
	start, ok := parseFlexibleDate(birthDate)
	if !ok {
		return 0, false
	}
	end := now
	if endDate != "" {
		parsed, ok := parseFlexibleDate(endDate)
		if !ok {
			return 0, false
		}
		end = parsed
	}

	age := end.Year() - start.Year()
	if end.Month() < start.Month() || (end.Month() == start.Month() && end.Day() < start.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age, true
}
