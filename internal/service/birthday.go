package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"familytree_go/internal/model"
)

// BirthdaysInMonth 列出指定月份过生日的在世成员
//
// 只有出生日期带月份（YYYY-MM-DD）的成员才可能命中；
// 纯年份（YYYY）无法判断月份，直接跳过。结果按全名排序。
func BirthdaysInMonth(people model.People, month time.Month) []*model.Person {
	results := make([]*model.Person, 0)
	for _, p := range people {
		if p.IsDeceased() || p.BirthDate == "" {
			continue
		}
		parts := strings.Split(p.BirthDate, "-")
		if len(parts) < 2 {
			continue
		}
		birthMonth, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if time.Month(birthMonth) == month {
			results = append(results, p)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].FullName() != results[j].FullName() {
			return results[i].FullName() < results[j].FullName()
		}
		return results[i].ID < results[j].ID
	})
	return results
}
