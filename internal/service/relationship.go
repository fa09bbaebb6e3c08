package service

import (
	"fmt"
	"time"

	"familytree_go/internal/model"
)

// AddResult 添加关系操作的附带结果
type AddResult struct {
	NewPersonID  string `json:"newPersonId,omitempty"`  // 新建成员的ID，关联已有成员时为空
	NavigateToID string `json:"navigateToId,omitempty"` // 添加兄弟姐妹后建议切换的显示根
}

// newPersonID 生成新的成员ID：毫秒时间戳，冲突时追加递增序号
func newPersonID(people model.People, now time.Time) string {
	base := fmt.Sprintf("person_%d", now.UnixMilli())
	id := base
	for n := 1; ; n++ {
		if _, exists := people[id]; !exists {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// newPerson 根据表单和详细信息构造新的成员记录
func newPerson(id string, form *model.PersonForm, details *model.PersonDetails) *model.Person {
	p := &model.Person{
		ID:          id,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Gender:      form.Gender,
		ExSpouseIDs: []string{},
		ParentIDs:   []string{},
		Children:    []string{},
	}
	applyDetails(p, details)
	return p
}

// applyDetails 覆盖成员详细信息，空值会清除对应字段
func applyDetails(p *model.Person, details *model.PersonDetails) {
	if details == nil {
		return
	}
	p.BirthDate = details.BirthDate
	p.DeathDate = details.DeathDate
	p.ImageURL = details.ImageURL
	p.Bio = details.Bio
	p.CemeteryAddress = details.CemeteryAddress
	p.ContactInfo = details.NormalizedContact()
}

// appendUnique 向列表追加ID，已存在时保持原样
func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// removeID 从列表中删除ID
func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// dissolveMarriage 解除成员的现任婚姻，双方互相记入前配偶列表
func dissolveMarriage(people model.People, id string) {
	p, ok := people[id]
	if !ok || p.SpouseID == "" {
		return
	}
	spouseID := p.SpouseID
	p.SpouseID = ""
	spouse, ok := people[spouseID]
	if !ok {
		// 悬空的配偶引用直接清除，不产生新的无效引用
		return
	}
	p.ExSpouseIDs = appendUnique(p.ExSpouseIDs, spouseID)
	spouse.SpouseID = ""
	spouse.ExSpouseIDs = appendUnique(spouse.ExSpouseIDs, id)
}

// marry 建立双向配偶关系
//
// 双方已有的婚姻先解除并记入前配偶列表，再互相从前配偶列表中移除
// （与前配偶复婚的场景），保证配偶对称性在操作完成后始终成立。
func marry(people model.People, aID, bID string) {
	a, okA := people[aID]
	b, okB := people[bID]
	if !okA || !okB {
		return
	}
	if a.SpouseID != bID {
		dissolveMarriage(people, aID)
	}
	if b.SpouseID != aID {
		dissolveMarriage(people, bID)
	}
	a.SpouseID = bID
	b.SpouseID = aID
	a.ExSpouseIDs = removeID(a.ExSpouseIDs, bID)
	b.ExSpouseIDs = removeID(b.ExSpouseIDs, aID)
}

// AddRelationship 为锚点成员添加一条新的亲属关系
//
// 纯函数：基于当前快照计算并返回全新的快照，原快照不被修改。
// 锚点不存在时返回ErrNotFound且不产生任何变更。
func AddRelationship(data *model.TreeData, anchorID string, kind model.Relationship, form *model.PersonForm, details *model.PersonDetails, existingPersonID string) (*model.TreeData, *AddResult, error) {
	if _, ok := data.People[anchorID]; !ok {
		return nil, nil, NewErrorf(ErrNotFound, "person %s not found", anchorID)
	}
	// 关联已有成员只对配偶关系有意义，其余关系总是新建成员
	if existingPersonID != "" && kind != model.RelationshipSpouse {
		return nil, nil, NewErrorf(ErrPrecondition, "existing person can only be linked as a spouse, not %s", kind)
	}
	if existingPersonID == anchorID {
		return nil, nil, NewError(ErrPrecondition, "a person cannot marry themselves", nil)
	}
	if existingPersonID == "" && form == nil {
		return nil, nil, NewError(ErrPrecondition, "form is required when creating a new person", nil)
	}

	next := data.Clone()
	people := next.People
	result := &AddResult{}

	switch kind {
	case model.RelationshipSpouse:
		if existingPersonID != "" {
			// 关联两个已有成员为配偶
			if _, ok := people[existingPersonID]; !ok {
				return nil, nil, NewErrorf(ErrNotFound, "person %s not found", existingPersonID)
			}
			marry(people, anchorID, existingPersonID)
		} else {
			id := newPersonID(people, time.Now())
			people[id] = newPerson(id, form, details)
			marry(people, anchorID, id)
			result.NewPersonID = id
		}

	case model.RelationshipChild:
		anchor := people[anchorID]
		id := newPersonID(people, time.Now())
		child := newPerson(id, form, details)
		child.ParentIDs = []string{anchorID}
		if anchor.SpouseID != "" {
			child.ParentIDs = append(child.ParentIDs, anchor.SpouseID)
		}
		people[id] = child
		anchor.Children = append(anchor.Children, id)
		if anchor.SpouseID != "" {
			if spouse, ok := people[anchor.SpouseID]; ok {
				spouse.Children = append(spouse.Children, id)
			}
		}
		result.NewPersonID = id

	case model.RelationshipParent:
		anchor := people[anchorID]
		id := newPersonID(people, time.Now())
		parent := newPerson(id, form, details)
		parent.Children = []string{anchorID}
		people[id] = parent

		// 恰好已有一位父/母时自动结为配偶，体现"一个孩子至多一对父母"
		// 的约定；已有两位及以上时仅追加，不再自动联姻。
		autoSpouseID := ""
		if len(anchor.ParentIDs) == 1 {
			autoSpouseID = anchor.ParentIDs[0]
		}
		anchor.ParentIDs = append([]string{id}, anchor.ParentIDs...)
		if autoSpouseID != "" {
			marry(people, autoSpouseID, id)
		}
		result.NewPersonID = id

	case model.RelationshipSibling:
		anchor := people[anchorID]
		id := newPersonID(people, time.Now())
		sibling := newPerson(id, form, details)
		sibling.ParentIDs = append([]string(nil), anchor.ParentIDs...)
		people[id] = sibling
		for _, parentID := range anchor.ParentIDs {
			if parent, ok := people[parentID]; ok {
				parent.Children = append(parent.Children, id)
			}
		}
		if len(anchor.ParentIDs) > 0 {
			// 切换显示根到第一位共同父母，让新成员立即可见
			result.NavigateToID = anchor.ParentIDs[0]
		}
		result.NewPersonID = id

	default:
		return nil, nil, NewErrorf(ErrPrecondition, "unknown relationship kind %q", kind)
	}

	return next, result, nil
}

// EditPerson 编辑成员基本信息和详细信息
//
// 表单字段整体覆盖，详细信息中的空值会清除已有字段（与合并规则不同）。
func EditPerson(data *model.TreeData, id string, form *model.PersonForm, details *model.PersonDetails) (*model.TreeData, error) {
	if _, ok := data.People[id]; !ok {
		return nil, NewErrorf(ErrNotFound, "person %s not found", id)
	}

	next := data.Clone()
	p := next.People[id]
	p.FirstName = form.FirstName
	p.LastName = form.LastName
	p.Gender = form.Gender
	applyDetails(p, details)
	return next, nil
}
