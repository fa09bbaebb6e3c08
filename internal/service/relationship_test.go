package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familytree_go/internal/model"
)

func TestAddRelationship_SpouseNew(t *testing.T) {
	data := newTestTree()

	next, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, result.NewPersonID)

	spouseID := result.NewPersonID
	assert.Equal(t, spouseID, next.People[model.RootID].SpouseID)
	assert.Equal(t, model.RootID, next.People[spouseID].SpouseID)

	// 原快照不被修改
	assert.Empty(t, data.People[model.RootID].SpouseID)
	assert.Len(t, data.People, 1)
}

func TestAddRelationship_SpouseReplacesExisting(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	firstSpouse := result.NewPersonID

	// 再婚：现任进入前配偶，两侧对称
	next, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Lily", model.GenderFemale), nil, "")
	require.NoError(t, err)
	secondSpouse := result.NewPersonID

	assert.Equal(t, secondSpouse, next.People[model.RootID].SpouseID)
	assert.Equal(t, model.RootID, next.People[secondSpouse].SpouseID)
	assert.Contains(t, next.People[model.RootID].ExSpouseIDs, firstSpouse)
	assert.Contains(t, next.People[firstSpouse].ExSpouseIDs, model.RootID)
	assert.Empty(t, next.People[firstSpouse].SpouseID)
}

func TestAddRelationship_SpouseExistingPerson(t *testing.T) {
	data := newTestTree()
	data.People["p2"] = newTestPerson("p2", "Eva", model.GenderFemale)

	next, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, nil, nil, "p2")
	require.NoError(t, err)
	assert.Empty(t, result.NewPersonID)
	assert.Equal(t, "p2", next.People[model.RootID].SpouseID)
	assert.Equal(t, model.RootID, next.People["p2"].SpouseID)
}

func TestAddRelationship_RemarryExSpouse(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	exID := result.NewPersonID
	data, _, err = AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Lily", model.GenderFemale), nil, "")
	require.NoError(t, err)

	// 与前配偶复婚后不应同时出现在前配偶列表
	next, _, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, nil, nil, exID)
	require.NoError(t, err)
	assert.Equal(t, exID, next.People[model.RootID].SpouseID)
	assert.Equal(t, model.RootID, next.People[exID].SpouseID)
	assert.NotContains(t, next.People[model.RootID].ExSpouseIDs, exID)
	assert.NotContains(t, next.People[exID].ExSpouseIDs, model.RootID)
}

func TestAddRelationship_ChildWithSpouse(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	spouseID := result.NewPersonID

	next, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID

	// 子女挂到双方名下，父母列表含双亲
	assert.ElementsMatch(t, []string{model.RootID, spouseID}, next.People[childID].ParentIDs)
	assert.Contains(t, next.People[model.RootID].Children, childID)
	assert.Contains(t, next.People[spouseID].Children, childID)
}

func TestAddRelationship_ChildWithoutSpouse(t *testing.T) {
	data := newTestTree()

	next, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID

	assert.Equal(t, []string{model.RootID}, next.People[childID].ParentIDs)
	assert.Equal(t, []string{childID}, next.People[model.RootID].Children)
}

func TestAddRelationship_ParentAutoMarriesSingleParent(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID

	// 孩子已有一位父/母，新加的父/母与其自动结为配偶
	next, result, err := AddRelationship(data, childID, model.RelationshipParent, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	parentID := result.NewPersonID

	assert.Equal(t, []string{parentID, model.RootID}, next.People[childID].ParentIDs, "new parent id goes to the front")
	assert.Contains(t, next.People[parentID].Children, childID)
	assert.Equal(t, parentID, next.People[model.RootID].SpouseID)
	assert.Equal(t, model.RootID, next.People[parentID].SpouseID)
}

func TestAddRelationship_ThirdParentNoAutoMarriage(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID
	data, _, err = AddRelationship(data, childID, model.RelationshipParent, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)

	// 已有两位父母时继续添加只追加引用，不再自动联姻
	next, result, err := AddRelationship(data, childID, model.RelationshipParent, testForm("Mia", model.GenderFemale), nil, "")
	require.NoError(t, err)
	thirdID := result.NewPersonID

	assert.Len(t, next.People[childID].ParentIDs, 3)
	assert.Equal(t, thirdID, next.People[childID].ParentIDs[0])
	assert.Empty(t, next.People[thirdID].SpouseID)
}

func TestAddRelationship_SiblingSharesParentsAndNavigates(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID

	next, result, err := AddRelationship(data, childID, model.RelationshipSibling, testForm("Ana", model.GenderFemale), nil, "")
	require.NoError(t, err)
	siblingID := result.NewPersonID

	assert.Equal(t, []string{model.RootID}, next.People[siblingID].ParentIDs)
	assert.Contains(t, next.People[model.RootID].Children, siblingID)
	assert.Equal(t, model.RootID, result.NavigateToID)
}

func TestAddRelationship_SiblingOfOrphanHasNoNavigation(t *testing.T) {
	data := newTestTree()

	next, result, err := AddRelationship(data, model.RootID, model.RelationshipSibling, testForm("Ana", model.GenderFemale), nil, "")
	require.NoError(t, err)

	assert.Empty(t, result.NavigateToID)
	assert.Empty(t, next.People[result.NewPersonID].ParentIDs)
}

func TestAddRelationship_AnchorNotFound(t *testing.T) {
	data := newTestTree()

	next, _, err := AddRelationship(data, "ghost", model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	assert.Nil(t, next)
	assert.True(t, IsCode(err, ErrNotFound))
	assert.Len(t, data.People, 1, "failed operation must not change the snapshot")
}

func TestAddRelationship_ExistingSpouseNotFound(t *testing.T) {
	data := newTestTree()

	_, _, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, nil, nil, "ghost")
	assert.True(t, IsCode(err, ErrNotFound))
}

func TestAddRelationship_MissingForm(t *testing.T) {
	data := newTestTree()

	_, _, err := AddRelationship(data, model.RootID, model.RelationshipChild, nil, nil, "")
	assert.True(t, IsCode(err, ErrPrecondition))
}

func TestAddRelationship_ExistingPersonOnlyForSpouse(t *testing.T) {
	data := newTestTree()
	data.People["p2"] = newTestPerson("p2", "Eva", model.GenderFemale)

	// 非配偶关系带existingPersonId必须拒绝，即使没有表单也不能崩溃
	for _, kind := range []model.Relationship{model.RelationshipChild, model.RelationshipParent, model.RelationshipSibling} {
		next, _, err := AddRelationship(data, model.RootID, kind, nil, nil, "p2")
		assert.Nil(t, next, string(kind))
		assert.True(t, IsCode(err, ErrPrecondition), string(kind))
	}
	assert.Len(t, data.People, 2, "failed operations must not change the snapshot")
}

func TestAddRelationship_SelfMarriageRejected(t *testing.T) {
	data := newTestTree()

	_, _, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, nil, nil, model.RootID)
	assert.True(t, IsCode(err, ErrPrecondition))
	assert.Empty(t, data.People[model.RootID].SpouseID)
}

func TestAddRelationship_SpouseSymmetryAfterLinkingMarriedPeople(t *testing.T) {
	data := newTestTree()
	data.People["a"] = newTestPerson("a", "Al", model.GenderMale)
	data.People["b"] = newTestPerson("b", "Bea", model.GenderFemale)
	data.People["a"].SpouseID = "b"
	data.People["b"].SpouseID = "a"

	// 把已婚成员与创始人关联为配偶：旧婚姻解除，对称性保持
	next, _, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, nil, nil, "a")
	require.NoError(t, err)

	for id, p := range next.People {
		if p.SpouseID == "" {
			continue
		}
		spouse := next.People[p.SpouseID]
		require.NotNil(t, spouse)
		assert.Equal(t, id, spouse.SpouseID, "spouse links must stay mutual")
	}
	assert.Contains(t, next.People["b"].ExSpouseIDs, "a")
}

func TestNewPersonID_CollisionSuffix(t *testing.T) {
	now := time.Now()
	people := model.People{}
	first := newPersonID(people, now)
	people[first] = newTestPerson(first, "A", model.GenderMale)

	second := newPersonID(people, now)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first+"_1", second)
}

func TestEditPerson_ClearsEmptyDetails(t *testing.T) {
	data := newTestTree()
	data.People[model.RootID].Bio = "old bio"
	data.People[model.RootID].BirthDate = "1950-01-01"

	next, err := EditPerson(data, model.RootID, testForm("Adam", model.GenderMale), &model.PersonDetails{BirthDate: "1951"})
	require.NoError(t, err)

	assert.Equal(t, "1951", next.People[model.RootID].BirthDate)
	assert.Empty(t, next.People[model.RootID].Bio, "empty detail values clear existing fields")
	assert.Equal(t, "old bio", data.People[model.RootID].Bio, "original snapshot untouched")
}

func TestEditPerson_NotFound(t *testing.T) {
	data := newTestTree()

	_, err := EditPerson(data, "ghost", testForm("X", model.GenderMale), nil)
	assert.True(t, IsCode(err, ErrNotFound))
}
