package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familytree_go/internal/model"
)

func TestDeletePerson_RepairsAllReferences(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	spouseID := result.NewPersonID
	data, result, err = AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID

	next, err := DeletePerson(data, spouseID)
	require.NoError(t, err)

	assert.NotContains(t, next.People, spouseID)
	assert.Empty(t, next.People[model.RootID].SpouseID)
	assert.Equal(t, []string{model.RootID}, next.People[childID].ParentIDs)
	// 子女不被级联删除
	assert.Contains(t, next.People, childID)
	assert.Contains(t, next.People[model.RootID].Children, childID)
}

func TestDeletePerson_ClearsExSpouseReferences(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Eva", model.GenderFemale), nil, "")
	require.NoError(t, err)
	exID := result.NewPersonID
	data, _, err = AddRelationship(data, model.RootID, model.RelationshipSpouse, testForm("Lily", model.GenderFemale), nil, "")
	require.NoError(t, err)

	next, err := DeletePerson(data, exID)
	require.NoError(t, err)
	assert.NotContains(t, next.People[model.RootID].ExSpouseIDs, exID)
}

func TestDeletePerson_RepairsAsymmetricInput(t *testing.T) {
	// 即使输入引用不对称，删除后也不能残留任何指向被删除者的引用
	data := newTestTree()
	data.People["x"] = newTestPerson("x", "X", model.GenderMale)
	data.People[model.RootID].SpouseID = "x"
	data.People[model.RootID].Children = []string{"x"}
	data.People[model.RootID].ParentIDs = []string{"x"}
	data.People[model.RootID].ExSpouseIDs = []string{"x"}

	next, err := DeletePerson(data, "x")
	require.NoError(t, err)

	root := next.People[model.RootID]
	assert.Empty(t, root.SpouseID)
	assert.Empty(t, root.Children)
	assert.Empty(t, root.ParentIDs)
	assert.Empty(t, root.ExSpouseIDs)
}

func TestDeletePerson_FounderRejected(t *testing.T) {
	data := newTestTree()

	next, err := DeletePerson(data, model.RootID)
	assert.Nil(t, next)
	assert.True(t, IsCode(err, ErrPrecondition))
	assert.Contains(t, data.People, model.RootID)
}

func TestDeletePerson_NotFound(t *testing.T) {
	data := newTestTree()

	_, err := DeletePerson(data, "ghost")
	assert.True(t, IsCode(err, ErrNotFound))
}

func TestDeletePerson_ScrubsNavigationStack(t *testing.T) {
	data := newTestTree()
	data, result, err := AddRelationship(data, model.RootID, model.RelationshipChild, testForm("Ben", model.GenderMale), nil, "")
	require.NoError(t, err)
	childID := result.NewPersonID
	data, err = PushRoot(data, childID)
	require.NoError(t, err)

	next, err := DeletePerson(data, childID)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RootID}, next.RootIDStack)
}

func TestDeletePerson_EmptyStackFallsBackToRoot(t *testing.T) {
	data := newTestTree()
	data.People["only"] = newTestPerson("only", "Solo", model.GenderMale)
	data.RootIDStack = []string{"only"}

	next, err := DeletePerson(data, "only")
	require.NoError(t, err)
	assert.Equal(t, []string{model.RootID}, next.RootIDStack)
}

func TestDeletePerson_LastPersonResetsTree(t *testing.T) {
	data := &model.TreeData{
		People:      model.People{"solo": newTestPerson("solo", "Solo", model.GenderMale)},
		RootIDStack: []string{"solo"},
	}

	next, err := DeletePerson(data, "solo")
	require.NoError(t, err)
	assert.Empty(t, next.People)
	assert.Empty(t, next.RootIDStack)
}
