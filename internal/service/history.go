package service

import (
	"sync"

	"familytree_go/internal/model"
)

// DefaultHistoryLimit 默认保留的历史快照数
const DefaultHistoryLimit = 50

// HistoryConfig 历史记录配置
type HistoryConfig struct {
	Limit int // 最大快照数，0表示使用默认值
}

// HistoryService 快照历史服务
//
// 每次成功的变更落盘一份完整快照，支持撤销/重做。
// 撤销后发生新变更时丢弃重做分支。超出上限时淘汰最早的快照。
type HistoryService struct {
	config  *HistoryConfig
	mu      sync.Mutex
	entries []*model.TreeData
	index   int // 当前快照在entries中的下标
}

// NewHistoryService 创建历史记录服务实例
func NewHistoryService(config *HistoryConfig) *HistoryService {
	if config == nil {
		config = &HistoryConfig{}
	}
	if config.Limit <= 0 {
		config.Limit = DefaultHistoryLimit
	}
	return &HistoryService{
		config:  config,
		entries: make([]*model.TreeData, 0, config.Limit),
		index:   -1,
	}
}

// Record 记录一份新的当前快照，截断重做分支
func (h *HistoryService) Record(snapshot *model.TreeData) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.index+1], snapshot.Clone())
	if len(h.entries) > h.config.Limit {
		h.entries = h.entries[len(h.entries)-h.config.Limit:]
	}
	h.index = len(h.entries) - 1
}

// Undo 回退到上一份快照
func (h *HistoryService) Undo() (*model.TreeData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo 前进到下一份快照
func (h *HistoryService) Redo() (*model.TreeData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 || h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// CanUndo 判断是否可以撤销
func (h *HistoryService) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanRedo 判断是否可以重做
func (h *HistoryService) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index >= 0 && h.index < len(h.entries)-1
}
