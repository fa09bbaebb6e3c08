package service

import (
	"familytree_go/internal/model"
)

// generationItem 广度优先遍历的队列元素
type generationItem struct {
	id    string
	level int
}

// GenerationMap 从创始人出发为每位可达成员分配代际层级
//
// 显式队列的层序遍历：子女在下一层；未访问过的配偶与伴侣同层，
// 且配偶的子女同样进入下一层。每个ID至多访问一次，层级先写先得
// （广度优先保证写入的是按上述扩展规则的最短路层级）。
// 从"root"不可达的成员不会出现在结果中。
func GenerationMap(people model.People) map[string]int {
	generations := make(map[string]int)
	if _, ok := people[model.RootID]; !ok {
		return generations
	}

	queue := []generationItem{{id: model.RootID, level: 0}}
	visited := map[string]struct{}{model.RootID: {}}
	generations[model.RootID] = 0

	enqueueChildren := func(p *model.Person, level int) {
		for _, childID := range p.Children {
			if _, seen := visited[childID]; seen {
				continue
			}
			if _, ok := people[childID]; !ok {
				continue
			}
			visited[childID] = struct{}{}
			generations[childID] = level + 1
			queue = append(queue, generationItem{id: childID, level: level + 1})
		}
	}

	for head := 0; head < len(queue); head++ {
		item := queue[head]
		person, ok := people[item.id]
		if !ok {
			continue
		}

		enqueueChildren(person, item.level)

		if person.SpouseID != "" {
			if _, seen := visited[person.SpouseID]; !seen {
				if spouse, ok := people[person.SpouseID]; ok {
					visited[person.SpouseID] = struct{}{}
					generations[person.SpouseID] = item.level
					enqueueChildren(spouse, item.level)
				}
			}
		}
	}
	return generations
}
