package service

import (
	"sort"
	"strings"

	"familytree_go/internal/model"
)

// SearchPeople 在全部成员中按关键词检索
//
// 大小写不敏感地匹配全名、简介、邮箱和地址；电话按原始关键词匹配，
// 避免大小写转换弄脏号码。空白关键词返回空结果。
// 结果按全名、ID排序，保证检索结果稳定。
func SearchPeople(people model.People, query string) []*model.Person {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []*model.Person{}
	}
	lower := strings.ToLower(trimmed)

	results := make([]*model.Person, 0)
	for _, p := range people {
		fullName := strings.ToLower(p.FullName())
		bio := strings.ToLower(p.Bio)
		phone, email, address := "", "", ""
		if p.ContactInfo != nil {
			phone = p.ContactInfo.Phone
			email = strings.ToLower(p.ContactInfo.Email)
			address = strings.ToLower(p.ContactInfo.Address)
		}

		if strings.Contains(fullName, lower) ||
			strings.Contains(bio, lower) ||
			strings.Contains(phone, trimmed) ||
			strings.Contains(email, lower) ||
			strings.Contains(address, lower) {
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
