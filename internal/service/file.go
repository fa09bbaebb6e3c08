package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"familytree_go/internal/model"
)

// ExportFileName 生成导出文件名：genealogy-<姓氏>-<日期>.json
//
// 创始人姓氏未填写或仍是占位值时省略姓氏段。
func ExportFileName(doc *model.TreeData, now time.Time) string {
	date := now.Format("2006-01-02")
	if root, ok := doc.People[model.RootID]; ok && root.LastName != "" && root.LastName != model.FounderLastName {
		return fmt.Sprintf("genealogy-%s-%s.json", root.LastName, date)
	}
	return fmt.Sprintf("genealogy-%s.json", date)
}

// EncodeDocument 把家族树文档序列化为两空格缩进的JSON
func EncodeDocument(doc *model.TreeData) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, NewError(ErrInternal, "failed to encode the tree document", err)
	}
	return raw, nil
}

// DecodeDocument 从读取器解析家族树文档
//
// 先完整读入再解析，读取或解析失败都不会产生部分文档；
// 引用完整性校验由调用方（ImportReplace/MergeImport）负责。
func DecodeDocument(r io.Reader) (*model.TreeData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError(ErrIO, "failed to read the tree document", err)
	}
	var doc model.TreeData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, NewError(ErrStructural, "the file has an invalid structure", err)
	}
	return &doc, nil
}
