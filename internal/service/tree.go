package service

import (
	"log/slog"
	"sync"
	"time"

	"familytree_go/internal/model"
)

// TreeService 家族树图存储
//
// 持有唯一的权威快照{people, rootIdStack}。每个变更操作都基于
// 当前快照计算一份完整的替换快照并原子换入，调用方永远观察不到
// 中间状态。读取方得到的快照指针视为只读。
type TreeService struct {
	mu          sync.RWMutex
	data        *model.TreeData
	version     uint64
	lastUpdated time.Time
	cache       *DerivedCache
	history     *HistoryService
	logger      *slog.Logger
}

// NewTreeService 创建家族树存储实例
func NewTreeService(logger *slog.Logger, history *HistoryService) *TreeService {
	if history == nil {
		history = NewHistoryService(nil)
	}
	svc := &TreeService{
		data:    emptyTree(),
		cache:   NewDerivedCache(),
		history: history,
		logger:  logger,
	}
	// 初始空状态也入历史，首次变更即可撤销回来
	history.Record(svc.data)
	return svc
}

// emptyTree 返回未创建状态的空文档
func emptyTree() *model.TreeData {
	return &model.TreeData{People: model.People{}, RootIDStack: []string{}}
}

// Snapshot 返回当前快照，调用方不得修改
func (s *TreeService) Snapshot() *model.TreeData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Version 返回当前快照版本号
func (s *TreeService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastUpdated 返回最后一次变更时间，从未变更时为零值
func (s *TreeService) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// applyLocked 原子换入新快照，调用方必须持有写锁
func (s *TreeService) applyLocked(next *model.TreeData, op string) *model.TreeData {
	s.data = next
	s.version++
	s.lastUpdated = time.Now()
	s.history.Record(next)
	if s.logger != nil {
		s.logger.Info("tree updated", "op", op, "version", s.version, "people", len(next.People))
	}
	return next
}

// swapLocked 换入历史快照，不再写入历史（撤销/重做专用）
func (s *TreeService) swapLocked(next *model.TreeData, op string) *model.TreeData {
	s.data = next
	s.version++
	s.lastUpdated = time.Now()
	if s.logger != nil {
		s.logger.Info("tree updated", "op", op, "version", s.version, "people", len(next.People))
	}
	return next
}

// CreateInitialTree 引导创建只含创始人的初始家族树
func (s *TreeService) CreateInitialTree() (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data.People) > 0 {
		return nil, NewErrorf(ErrPrecondition, "the tree has already been created")
	}
	founder := &model.Person{
		ID:          model.RootID,
		FirstName:   model.FounderFirstName,
		LastName:    model.FounderLastName,
		Gender:      model.GenderMale,
		ExSpouseIDs: []string{},
		ParentIDs:   []string{},
		Children:    []string{},
		BirthDate:   model.FounderBirthDate,
		Bio:         model.FounderBio,
		ImageURL:    model.FounderImageURL,
	}
	next := &model.TreeData{
		People:      model.People{model.RootID: founder},
		RootIDStack: []string{model.RootID},
	}
	return s.applyLocked(next, "create"), nil
}

// AddRelationship 为锚点成员添加亲属关系并换入新快照
//
// 添加兄弟姐妹产生的导航提示会在同一次换入中应用到导航栈，
// 外部只看到一次完整的状态切换。
func (s *TreeService) AddRelationship(anchorID string, kind model.Relationship, form *model.PersonForm, details *model.PersonDetails, existingPersonID string) (*model.TreeData, *AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, result, err := AddRelationship(s.data, anchorID, kind, form, details, existingPersonID)
	if err != nil {
		return nil, nil, err
	}
	if result.NavigateToID != "" {
		if pushed, err := PushRoot(next, result.NavigateToID); err == nil {
			next = pushed
		}
	}
	return s.applyLocked(next, "add_"+string(kind)), result, nil
}

// EditPerson 编辑成员信息并换入新快照
func (s *TreeService) EditPerson(id string, form *model.PersonForm, details *model.PersonDetails) (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := EditPerson(s.data, id, form, details)
	if err != nil {
		return nil, err
	}
	return s.applyLocked(next, "edit"), nil
}

// DeletePerson 删除成员并换入新快照
func (s *TreeService) DeletePerson(id string) (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := DeletePerson(s.data, id)
	if err != nil {
		return nil, err
	}
	return s.applyLocked(next, "delete"), nil
}

// PushRoot 下钻到指定成员
func (s *TreeService) PushRoot(id string) (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := PushRoot(s.data, id)
	if err != nil {
		return nil, err
	}
	if next == s.data {
		return s.data, nil
	}
	return s.applyLocked(next, "nav_push"), nil
}

// PopRoot 返回上一级显示根
func (s *TreeService) PopRoot() *model.TreeData {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := PopRoot(s.data)
	if next == s.data {
		return s.data
	}
	return s.applyLocked(next, "nav_pop")
}

// ResetRootHome 回到创始人视角
func (s *TreeService) ResetRootHome() (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := ResetRootHome(s.data)
	if err != nil {
		return nil, err
	}
	return s.applyLocked(next, "nav_home"), nil
}

// normalizeImportedStack 补全导入文档的空导航栈
//
// 成员非空而导航栈为空时回退到["root"]，保持"有成员则栈非空"的
// 不变式；创始人也不存在时无法选定显示根，按结构错误拒绝。
func normalizeImportedStack(doc *model.TreeData) error {
	if len(doc.People) == 0 || len(doc.RootIDStack) > 0 {
		return nil
	}
	if _, ok := doc.People[model.RootID]; !ok {
		return NewError(ErrStructural, "the file has an empty rootIdStack and no founder to fall back to", nil)
	}
	doc.RootIDStack = []string{model.RootID}
	return nil
}

// ImportReplace 校验导入文档并整体替换当前家族树
//
// 校验失败不产生任何变更；Validator是外部文档唯一的准入口。
func (s *TreeService) ImportReplace(doc *model.TreeData) (*model.TreeData, error) {
	if err := validationError(ValidateTreeData(doc)); err != nil {
		return nil, err
	}
	next := doc.Clone()
	if err := normalizeImportedStack(next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(next, "import"), nil
}

// MergeImport 校验导入文档并合并进当前家族树
//
// 当前树尚未创建时退化为整体替换。
func (s *TreeService) MergeImport(doc *model.TreeData) (*model.TreeData, error) {
	if err := validationError(ValidateTreeData(doc)); err != nil {
		return nil, err
	}
	next := doc.Clone()
	if err := normalizeImportedStack(next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data.People) == 0 {
		return s.applyLocked(next, "import"), nil
	}
	return s.applyLocked(MergeTrees(s.data, next), "merge"), nil
}

// Undo 撤销到上一份快照
func (s *TreeService) Undo() (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.history.Undo()
	if !ok {
		return nil, NewErrorf(ErrPrecondition, "nothing to undo")
	}
	return s.swapLocked(snapshot, "undo"), nil
}

// Redo 重做到下一份快照
func (s *TreeService) Redo() (*model.TreeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.history.Redo()
	if !ok {
		return nil, NewErrorf(ErrPrecondition, "nothing to redo")
	}
	return s.swapLocked(snapshot, "redo"), nil
}

// Statistics 返回当前快照的统计汇总（按版本缓存）
func (s *TreeService) Statistics() *Statistics {
	s.mu.RLock()
	data, version := s.data, s.version
	s.mu.RUnlock()
	return s.cache.Statistics(version, data.People, time.Now())
}

// Generations 返回当前快照的代际映射（按版本缓存）
func (s *TreeService) Generations() map[string]int {
	s.mu.RLock()
	data, version := s.data, s.version
	s.mu.RUnlock()
	return s.cache.Generations(version, data.People)
}

// FamilyUnit 计算连线两端对应的核心家庭集合
func (s *TreeService) FamilyUnit(id1, id2 string) []string {
	return FamilyUnit(s.Snapshot().People, id1, id2)
}

// Connections 返回成员的直接关联集合
func (s *TreeService) Connections(id string) []string {
	return Connections(s.Snapshot().People, id)
}

// Search 按关键词检索成员
func (s *TreeService) Search(query string) []*model.Person {
	return SearchPeople(s.Snapshot().People, query)
}

// Birthdays 列出指定月份过生日的在世成员
func (s *TreeService) Birthdays(month time.Month) []*model.Person {
	return BirthdaysInMonth(s.Snapshot().People, month)
}
