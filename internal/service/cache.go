package service

import (
	"sync"
	"time"

	"familytree_go/internal/model"
)

// DerivedCache 派生视图缓存
//
// 统计汇总和代际映射都是快照的纯函数，按快照版本号记忆化：
// 版本命中直接复用，未命中时重新计算并整体替换。
// 同步的快照替换模型下不存在跨版本的陈旧读。
type DerivedCache struct {
	mu          sync.RWMutex
	version     uint64
	stats       *Statistics
	generations map[string]int
}

// NewDerivedCache 创建派生视图缓存实例
func NewDerivedCache() *DerivedCache {
	return &DerivedCache{}
}

// Statistics 返回指定版本快照的统计汇总，必要时重新计算
func (c *DerivedCache) Statistics(version uint64, people model.People, now time.Time) *Statistics {
	c.mu.RLock()
	if c.version == version && c.stats != nil {
		defer c.mu.RUnlock()
		return c.stats
	}
	c.mu.RUnlock()

	stats := ComputeStatistics(people, now)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		c.version = version
		c.generations = nil
	}
	c.stats = stats
	return stats
}

// Generations 返回指定版本快照的代际映射，必要时重新计算
func (c *DerivedCache) Generations(version uint64, people model.People) map[string]int {
	c.mu.RLock()
	if c.version == version && c.generations != nil {
		defer c.mu.RUnlock()
		return c.generations
	}
	c.mu.RUnlock()

	generations := GenerationMap(people)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		c.version = version
		c.stats = nil
	}
	c.generations = generations
	return generations
}
