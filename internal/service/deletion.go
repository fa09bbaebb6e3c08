package service

import (
	"familytree_go/internal/model"
)

// DeletePerson 删除成员并修复所有指向该成员的引用
//
// 创始人（RootID）不可删除。删除只解除关联，不级联删除后代：
// 被删除者的子女仅失去一条父母引用。导航栈中出现的该ID一并清除，
// 栈清空后回退到["root"]；整棵树被删空时回到未创建状态。
func DeletePerson(data *model.TreeData, id string) (*model.TreeData, error) {
	if id == model.RootID {
		return nil, NewErrorf(ErrPrecondition, "the tree founder cannot be deleted")
	}
	if _, ok := data.People[id]; !ok {
		return nil, NewErrorf(ErrNotFound, "person %s not found", id)
	}

	next := data.Clone()
	delete(next.People, id)

	// 全量扫描剩余成员，清除每一处指向被删除者的引用，
	// 即使输入数据不对称也能保证删除后无残留引用
	for _, p := range next.People {
		if p.SpouseID == id {
			p.SpouseID = ""
		}
		p.ExSpouseIDs = removeID(p.ExSpouseIDs, id)
		p.ParentIDs = removeID(p.ParentIDs, id)
		p.Children = removeID(p.Children, id)
	}

	next.RootIDStack = removeID(next.RootIDStack, id)
	if len(next.People) == 0 {
		next.RootIDStack = []string{}
	} else if len(next.RootIDStack) == 0 {
		next.RootIDStack = []string{model.RootID}
	}
	return next, nil
}
