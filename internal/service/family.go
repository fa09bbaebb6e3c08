package service

import (
	"sort"

	"familytree_go/internal/model"
)

// FamilyUnit 根据被点击的连线两端计算需要高亮的核心家庭成员集合
//
// 判定顺序：双方为配偶 → 甲为乙的父/母 → 乙为甲的父/母。
// 命中时集合为"父母（含配偶）∪ 该父/母的全部子女"；
// 无直接配偶或亲子关系（如兄弟姐妹连线、过期数据）时只返回两端。
// 纯读取操作，返回排序后的ID列表。
func FamilyUnit(people model.People, id1, id2 string) []string {
	p1, ok1 := people[id1]
	p2, ok2 := people[id2]
	if !ok1 || !ok2 {
		return sortedSet(id1, id2)
	}

	set := map[string]struct{}{}
	addParentUnit := func(parent *model.Person) {
		set[parent.ID] = struct{}{}
		if parent.SpouseID != "" {
			if _, ok := people[parent.SpouseID]; ok {
				set[parent.SpouseID] = struct{}{}
			}
		}
		for _, childID := range parent.Children {
			if _, ok := people[childID]; ok {
				set[childID] = struct{}{}
			}
		}
	}

	switch {
	case p1.SpouseID == id2:
		set[id1] = struct{}{}
		set[id2] = struct{}{}
		for _, childID := range p1.Children {
			if _, ok := people[childID]; ok {
				set[childID] = struct{}{}
			}
		}
	case containsID(p1.Children, id2):
		addParentUnit(p1)
	case containsID(p2.Children, id1):
		addParentUnit(p2)
	default:
		return sortedSet(id1, id2)
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Connections 返回成员悬停时需要高亮的直接关联集合：本人、配偶、父母、子女
func Connections(people model.People, id string) []string {
	person, ok := people[id]
	if !ok {
		return nil
	}
	set := map[string]struct{}{id: {}}
	if person.SpouseID != "" {
		set[person.SpouseID] = struct{}{}
	}
	for _, parentID := range person.ParentIDs {
		set[parentID] = struct{}{}
	}
	for _, childID := range person.Children {
		set[childID] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for connectedID := range set {
		out = append(out, connectedID)
	}
	sort.Strings(out)
	return out
}

// containsID 判断列表是否包含ID
func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// sortedSet 构造去重排序后的ID列表
func sortedSet(ids ...string) []string {
	set := map[string]struct{}{}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
