package service

import (
	"familytree_go/internal/model"
)

// PushRoot 下钻：把成员压入导航栈使其成为当前显示根
//
// 目标已是栈顶时不产生新快照。
func PushRoot(data *model.TreeData, id string) (*model.TreeData, error) {
	if _, ok := data.People[id]; !ok {
		return nil, NewErrorf(ErrNotFound, "person %s not found", id)
	}
	if data.CurrentRootID() == id {
		return data, nil
	}
	next := data.Clone()
	next.RootIDStack = append(next.RootIDStack, id)
	return next, nil
}

// PopRoot 返回上一级显示根，栈只剩一个元素时保持不变
func PopRoot(data *model.TreeData) *model.TreeData {
	if len(data.RootIDStack) <= 1 {
		return data
	}
	next := data.Clone()
	next.RootIDStack = next.RootIDStack[:len(next.RootIDStack)-1]
	return next
}

// ResetRootHome 回到创始人视角，导航栈重置为["root"]
func ResetRootHome(data *model.TreeData) (*model.TreeData, error) {
	if _, ok := data.People[model.RootID]; !ok {
		return nil, NewErrorf(ErrNotFound, "person %s not found", model.RootID)
	}
	next := data.Clone()
	next.RootIDStack = []string{model.RootID}
	return next, nil
}
