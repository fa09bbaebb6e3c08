package service

import (
	"familytree_go/internal/model"
)

// newTestPerson 构造测试用成员记录
func newTestPerson(id, firstName string, gender model.Gender) *model.Person {
	return &model.Person{
		ID:          id,
		FirstName:   firstName,
		LastName:    "Smith",
		Gender:      gender,
		ExSpouseIDs: []string{},
		ParentIDs:   []string{},
		Children:    []string{},
	}
}

// newTestTree 构造只含创始人的初始家族树
func newTestTree() *model.TreeData {
	founder := newTestPerson(model.RootID, "Adam", model.GenderMale)
	return &model.TreeData{
		People:      model.People{model.RootID: founder},
		RootIDStack: []string{model.RootID},
	}
}

// testForm 构造测试用表单
func testForm(firstName string, gender model.Gender) *model.PersonForm {
	return &model.PersonForm{FirstName: firstName, LastName: "Smith", Gender: gender}
}
