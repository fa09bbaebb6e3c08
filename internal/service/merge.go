package service

import (
	"familytree_go/internal/model"
)

// pickNonEmpty 非空才覆盖：导入值非空时取导入值，否则保留现有值
func pickNonEmpty(incoming, current string) string {
	if incoming != "" {
		return incoming
	}
	return current
}

// unionIDs 合并ID列表：保留现有顺序，去重追加导入的新ID
func unionIDs(current, incoming []string) []string {
	out := append([]string{}, current...)
	for _, id := range incoming {
		out = appendUnique(out, id)
	}
	return out
}

// mergeContact 按字段合并联系方式，两侧均为空时返回nil
func mergeContact(current, incoming *model.ContactInfo) *model.ContactInfo {
	if current == nil && incoming == nil {
		return nil
	}
	cur, inc := current, incoming
	if cur == nil {
		cur = &model.ContactInfo{}
	}
	if inc == nil {
		inc = &model.ContactInfo{}
	}
	merged := &model.ContactInfo{
		Phone:   pickNonEmpty(inc.Phone, cur.Phone),
		Email:   pickNonEmpty(inc.Email, cur.Email),
		Address: pickNonEmpty(inc.Address, cur.Address),
	}
	if merged.IsEmpty() {
		return nil
	}
	return merged
}

// mergePerson 按字段合并两条成员记录
//
// 标量字段遵循"非空才覆盖"，空值永远不会清掉已有数据；
// 关系ID列表取并集；现任配偶为覆盖语义（一个人至多一位现任配偶）。
func mergePerson(current, incoming *model.Person) *model.Person {
	merged := current.Clone()
	merged.FirstName = pickNonEmpty(incoming.FirstName, current.FirstName)
	merged.LastName = pickNonEmpty(incoming.LastName, current.LastName)
	merged.Gender = model.Gender(pickNonEmpty(string(incoming.Gender), string(current.Gender)))
	merged.BirthDate = pickNonEmpty(incoming.BirthDate, current.BirthDate)
	merged.DeathDate = pickNonEmpty(incoming.DeathDate, current.DeathDate)
	merged.ImageURL = pickNonEmpty(incoming.ImageURL, current.ImageURL)
	merged.Bio = pickNonEmpty(incoming.Bio, current.Bio)
	merged.CemeteryAddress = pickNonEmpty(incoming.CemeteryAddress, current.CemeteryAddress)
	merged.ContactInfo = mergeContact(current.ContactInfo, incoming.ContactInfo)
	merged.SpouseID = pickNonEmpty(incoming.SpouseID, current.SpouseID)
	merged.Children = unionIDs(current.Children, incoming.Children)
	merged.ParentIDs = unionIDs(current.ParentIDs, incoming.ParentIDs)
	merged.ExSpouseIDs = unionIDs(current.ExSpouseIDs, incoming.ExSpouseIDs)
	return merged
}

// MergeTrees 将导入的家族树合并进当前快照
//
// 导入中的新成员原样插入；两侧都存在的成员按mergePerson规则合并。
// 当前导航栈保持不变。合并本身不做跨记录一致性校验，
// 调用方应在合并前用ValidateTreeData把关导入文档。
func MergeTrees(current, incoming *model.TreeData) *model.TreeData {
	next := current.Clone()
	for id, incomingPerson := range incoming.People {
		if currentPerson, ok := next.People[id]; ok {
			next.People[id] = mergePerson(currentPerson, incomingPerson)
		} else {
			next.People[id] = incomingPerson.Clone()
		}
	}
	return next
}
