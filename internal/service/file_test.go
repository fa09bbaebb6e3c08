package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familytree_go/internal/model"
)

var exportDay = time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

func TestExportFileName(t *testing.T) {
	doc := newTestTree()
	assert.Equal(t, "genealogy-Smith-2026-03-05.json", ExportFileName(doc, exportDay))
}

func TestExportFileName_PlaceholderSurnameOmitted(t *testing.T) {
	doc := newTestTree()
	doc.People[model.RootID].LastName = model.FounderLastName
	assert.Equal(t, "genealogy-2026-03-05.json", ExportFileName(doc, exportDay))

	doc.People[model.RootID].LastName = ""
	assert.Equal(t, "genealogy-2026-03-05.json", ExportFileName(doc, exportDay))
}

func TestExportFileName_NoFounder(t *testing.T) {
	doc := &model.TreeData{People: model.People{}, RootIDStack: []string{}}
	assert.Equal(t, "genealogy-2026-03-05.json", ExportFileName(doc, exportDay))
}

func TestEncodeDecodeDocument(t *testing.T) {
	doc := newTestTree()
	doc.People[model.RootID].ContactInfo = &model.ContactInfo{Email: "a@b.c"}
	// exSpouseIds为空时不参与序列化
	doc.People[model.RootID].ExSpouseIDs = nil

	raw, err := EncodeDocument(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"people\""), "export uses two-space indentation")

	decoded, err := DecodeDocument(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestEncodeDocument_WireFieldNames(t *testing.T) {
	doc := newTestTree()
	raw, err := EncodeDocument(doc)
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Contains(t, generic, "people")
	assert.Contains(t, generic, "rootIdStack")

	assert.Contains(t, string(raw), "\"firstName\"")
	assert.NotContains(t, string(raw), "\"spouseId\"", "empty optional fields are omitted")
}

func TestDecodeDocument_InvalidJSON(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader("not json"))
	assert.True(t, IsCode(err, ErrStructural))
}
