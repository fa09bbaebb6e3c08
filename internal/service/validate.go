package service

import (
	"fmt"
	"sort"
	"strings"

	"familytree_go/internal/model"
)

// ValidationResult 文档校验结果
type ValidationResult struct {
	IsValid bool   `json:"isValid"`         // 是否通过
	Error   string `json:"error,omitempty"` // 失败原因

	code ErrorCode // 失败类别
}

// ValidateTreeData 校验外部文档的结构完整性
//
// 按顺序短路检查：文档结构 → 导航栈引用 → 每位成员的关系引用。
// 同一成员的全部引用错误收集后合并返回，但在第一位出错的成员处停止。
// 只保证引用完整性，不校验配偶/亲子对称性（引用有效但不对称的文档
// 会被放行，应用内的变更操作会按构造保证对称）。
func ValidateTreeData(doc *model.TreeData) *ValidationResult {
	if doc == nil || doc.People == nil || doc.RootIDStack == nil {
		return &ValidationResult{IsValid: false, Error: "the file has an invalid structure", code: ErrStructural}
	}

	for _, id := range doc.RootIDStack {
		if _, ok := doc.People[id]; !ok {
			return &ValidationResult{
				IsValid: false,
				Error:   fmt.Sprintf("the file is corrupted: rootIdStack references unknown person %s", id),
				code:    ErrDanglingReference,
			}
		}
	}

	// 按ID排序遍历，保证"第一位出错成员"的判定是确定性的
	ids := make([]string, 0, len(doc.People))
	for id := range doc.People {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		person := doc.People[id]
		var errs []string

		checkID := func(refID, relation string) {
			if refID == "" {
				return
			}
			if _, ok := doc.People[refID]; !ok {
				errs = append(errs, fmt.Sprintf("person %s has an invalid %s ID: %s", person.FullName(), relation, refID))
			}
		}

		checkID(person.SpouseID, "spouse")
		for _, childID := range person.Children {
			checkID(childID, "child")
		}
		for _, parentID := range person.ParentIDs {
			checkID(parentID, "parent")
		}
		for _, exID := range person.ExSpouseIDs {
			checkID(exID, "ex-spouse")
		}

		if len(errs) > 0 {
			return &ValidationResult{IsValid: false, Error: strings.Join(errs, "\n"), code: ErrDanglingReference}
		}
	}

	return &ValidationResult{IsValid: true}
}

// validationError 将校验结果转换为带错误码的AppError
func validationError(result *ValidationResult) error {
	if result.IsValid {
		return nil
	}
	return NewError(result.code, result.Error, nil)
}
