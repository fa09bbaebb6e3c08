package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"familytree_go/internal/model"
)

// GenderCounts 性别统计
type GenderCounts struct {
	Male   int `json:"male"`   // 男性人数
	Female int `json:"female"` // 女性人数
}

// StatusCounts 在世/已故统计
type StatusCounts struct {
	Living   int `json:"living"`   // 在世人数
	Deceased int `json:"deceased"` // 已故人数
}

// AgeGroups 在世成员年龄段分布
type AgeGroups struct {
	Young  int `json:"0-18"`  // 0-18岁
	Adult  int `json:"19-35"` // 19-35岁
	Middle int `json:"36-60"` // 36-60岁
	Senior int `json:"60+"`   // 60岁以上
}

// GenerationSeries 按代际的人口序列
type GenerationSeries struct {
	Labels []string `json:"labels"` // 代际标签
	Data   []int    `json:"data"`   // 每代人数
}

// BirthRateSeries 按代际的母亲平均子女数序列
type BirthRateSeries struct {
	Labels []string  `json:"labels"` // 代际标签
	Data   []float64 `json:"data"`   // 平均子女数（保留一位小数）
}

// NameCount 名字出现次数
type NameCount struct {
	Name  string `json:"name"`  // 名字
	Count int    `json:"count"` // 次数
}

// OldestPerson 最年长在世成员
type OldestPerson struct {
	Name string `json:"name"` // 全名
	Age  int    `json:"age"`  // 年龄
}

// AddressCount 地址出现次数
type AddressCount struct {
	Address string `json:"address"` // 地址
	Count   int    `json:"count"`   // 次数
}

// Statistics 家族树人口统计汇总
type Statistics struct {
	TotalPeople        int              `json:"totalPeople"`        // 总人数
	GenderData         GenderCounts     `json:"genderData"`         // 性别分布
	StatusData         StatusCounts     `json:"statusData"`         // 在世/已故
	AgeGroupData       AgeGroups        `json:"ageGroupData"`       // 年龄段分布
	GenerationData     GenerationSeries `json:"generationData"`     // 代际人口
	BirthRateData      BirthRateSeries  `json:"birthRateData"`      // 代际生育率
	TopMaleNames       []NameCount      `json:"topMaleNames"`       // 男性高频名字
	TopFemaleNames     []NameCount      `json:"topFemaleNames"`     // 女性高频名字
	OldestLivingPerson *OldestPerson    `json:"oldestLivingPerson"` // 最年长在世成员
	AverageLifespan    int              `json:"averageLifespan"`    // 已故成员平均寿命
	MostCommonAddress  *AddressCount    `json:"mostCommonAddress"`  // 最常见地址
}

// emptyStatistics 返回空树对应的零值统计
func emptyStatistics() *Statistics {
	return &Statistics{
		GenerationData: GenerationSeries{Labels: []string{}, Data: []int{}},
		BirthRateData:  BirthRateSeries{Labels: []string{}, Data: []float64{}},
		TopMaleNames:   []NameCount{},
		TopFemaleNames: []NameCount{},
	}
}

// sortedPersonIDs 返回排序后的成员ID列表，保证统计结果与遍历顺序无关
func sortedPersonIDs(people model.People) []string {
	ids := make([]string, 0, len(people))
	for id := range people {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// generationLabel 代际的人类可读标签，层级从0起而标签从1起
func generationLabel(level int) string {
	return fmt.Sprintf("Generation %d", level+1)
}

// ComputeStatistics 对整棵家族树计算人口统计汇总
//
// 对快照的纯函数，适合按快照版本做缓存复用。
func ComputeStatistics(people model.People, now time.Time) *Statistics {
	if len(people) == 0 {
		return emptyStatistics()
	}

	stats := emptyStatistics()
	stats.TotalPeople = len(people)

	ids := sortedPersonIDs(people)
	generations := GenerationMap(people)

	nameCounts := map[model.Gender]map[string]int{
		model.GenderMale:   {},
		model.GenderFemale: {},
	}
	addressCounts := map[string]int{}
	generationCounts := map[int]int{}
	birthRateByGen := map[int]*birthRateBucket{}
	totalLifespan, deceasedWithAge := 0, 0

	for _, id := range ids {
		p := people[id]

		switch p.Gender {
		case model.GenderMale:
			stats.GenderData.Male++
		case model.GenderFemale:
			stats.GenderData.Female++
		}

		if p.IsDeceased() {
			stats.StatusData.Deceased++
			if age, ok := ageBetween(p.BirthDate, p.DeathDate, now); ok {
				totalLifespan += age
				deceasedWithAge++
			}
		} else {
			stats.StatusData.Living++
			if age, ok := ageBetween(p.BirthDate, "", now); ok {
				switch {
				case age <= 18:
					stats.AgeGroupData.Young++
				case age <= 35:
					stats.AgeGroupData.Adult++
				case age <= 60:
					stats.AgeGroupData.Middle++
				default:
					stats.AgeGroupData.Senior++
				}
				if stats.OldestLivingPerson == nil || age > stats.OldestLivingPerson.Age {
					stats.OldestLivingPerson = &OldestPerson{Name: p.FullName(), Age: age}
				}
			}
		}

		// 创始人占位名字不参与名字排行
		if p.FirstName != model.FounderFirstName {
			if counts, ok := nameCounts[p.Gender]; ok {
				counts[p.FirstName]++
			}
		}

		if p.ContactInfo != nil {
			if address := strings.TrimSpace(p.ContactInfo.Address); address != "" {
				addressCounts[address]++
			}
		}

		// 代际生育率：只统计有层级且有子女的母亲
		if p.Gender == model.GenderFemale && len(p.Children) > 0 {
			if level, ok := generations[id]; ok {
				bucket := birthRateByGen[level]
				if bucket == nil {
					bucket = &birthRateBucket{}
					birthRateByGen[level] = bucket
				}
				bucket.mothers++
				bucket.children += len(p.Children)
			}
		}
	}

	for _, level := range generations {
		generationCounts[level]++
	}

	stats.GenerationData = generationSeries(generationCounts)
	stats.BirthRateData = birthRateSeries(birthRateByGen)
	stats.TopMaleNames = topNames(nameCounts[model.GenderMale])
	stats.TopFemaleNames = topNames(nameCounts[model.GenderFemale])
	if deceasedWithAge > 0 {
		stats.AverageLifespan = int(math.Round(float64(totalLifespan) / float64(deceasedWithAge)))
	}
	stats.MostCommonAddress = mostCommonAddress(addressCounts)
	return stats
}

// generationSeries 把层级计数整理为按层排序的序列
func generationSeries(counts map[int]int) GenerationSeries {
	levels := make([]int, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	series := GenerationSeries{Labels: []string{}, Data: []int{}}
	for _, level := range levels {
		series.Labels = append(series.Labels, generationLabel(level))
		series.Data = append(series.Data, counts[level])
	}
	return series
}

// birthRateBucket 某一代的母亲与子女累计
type birthRateBucket struct {
	children int // 子女总数
	mothers  int // 母亲人数
}

// birthRateSeries 计算每代母亲的平均子女数，保留一位小数
func birthRateSeries(buckets map[int]*birthRateBucket) BirthRateSeries {
	levels := make([]int, 0, len(buckets))
	for level := range buckets {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	series := BirthRateSeries{Labels: []string{}, Data: []float64{}}
	for _, level := range levels {
		bucket := buckets[level]
		average := 0.0
		if bucket.mothers > 0 {
			average = float64(bucket.children) / float64(bucket.mothers)
		}
		series.Labels = append(series.Labels, generationLabel(level))
		series.Data = append(series.Data, math.Round(average*10)/10)
	}
	return series
}

// topNames 取出现次数最多的前五个名字，次数相同时按字典序
func topNames(counts map[string]int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// mostCommonAddress 取出现次数最多的地址，次数相同时按字典序
func mostCommonAddress(counts map[string]int) *AddressCount {
	var result *AddressCount
	for address, count := range counts {
		if result == nil || count > result.Count || (count == result.Count && address < result.Address) {
			result = &AddressCount{Address: address, Count: count}
		}
	}
	return result
}
