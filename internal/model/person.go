package model

// Gender 性别
type Gender string

const (
	GenderMale   Gender = "male"   // 男性
	GenderFemale Gender = "female" // 女性
)

// Relationship 亲属关系类型
type Relationship string

const (
	RelationshipSpouse  Relationship = "spouse"  // 配偶
	RelationshipChild   Relationship = "child"   // 子女
	RelationshipParent  Relationship = "parent"  // 父母
	RelationshipSibling Relationship = "sibling" // 兄弟姐妹
)

// RootID 家族树创始人的固定ID，该成员永远不能被删除
const RootID = "root"

// 创始人占位信息，统计时需要排除占位名字
const (
	FounderFirstName = "Founder"
	FounderLastName  = "Family"
	FounderBirthDate = "1950-01-01"
	FounderBio       = "The starting point of this family tree."
	FounderImageURL  = "https://avatar.iran.liara.run/public/boy?username=Founder"
)

// ContactInfo 联系方式
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`   // 电话
	Email   string `json:"email,omitempty"`   // 邮箱
	Address string `json:"address,omitempty"` // 地址
}

// IsEmpty 判断联系方式是否全部为空
func (c *ContactInfo) IsEmpty() bool {
	return c == nil || (c.Phone == "" && c.Email == "" && c.Address == "")
}

// Person 家族成员记录
//
// 除ID和姓名外所有字段均为可选。关系字段始终双向维护：
// spouseId对称、parentIds与children互为镜像，exSpouseIds尽力对称。
type Person struct {
	ID              string       `json:"id"`                        // 唯一标识，创建后不可变
	FirstName       string       `json:"firstName"`                 // 名
	LastName        string       `json:"lastName"`                  // 姓
	Gender          Gender       `json:"gender"`                    // 性别
	SpouseID        string       `json:"spouseId,omitempty"`        // 现任配偶ID
	ExSpouseIDs     []string     `json:"exSpouseIds,omitempty"`     // 前配偶ID列表
	ParentIDs       []string     `json:"parentIds"`                 // 父母ID列表（通常0-2个）
	Children        []string     `json:"children"`                  // 子女ID列表（插入顺序）
	BirthDate       string       `json:"birthDate,omitempty"`       // 出生日期 YYYY-MM-DD 或 YYYY
	DeathDate       string       `json:"deathDate,omitempty"`       // 去世日期
	ImageURL        string       `json:"imageUrl,omitempty"`        // 头像地址
	Bio             string       `json:"bio,omitempty"`             // 简介
	CemeteryAddress string       `json:"cemeteryAddress,omitempty"` // 墓地地址
	ContactInfo     *ContactInfo `json:"contactInfo,omitempty"`     // 联系方式
}

// FullName 返回成员全名
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// IsDeceased 判断成员是否已去世
func (p *Person) IsDeceased() bool {
	return p.DeathDate != ""
}

// Clone 深拷贝成员记录
func (p *Person) Clone() *Person {
	cp := *p
	cp.ExSpouseIDs = append([]string(nil), p.ExSpouseIDs...)
	cp.ParentIDs = append([]string(nil), p.ParentIDs...)
	cp.Children = append([]string(nil), p.Children...)
	if p.ContactInfo != nil {
		ci := *p.ContactInfo
		cp.ContactInfo = &ci
	}
	return &cp
}

// People 成员ID到成员记录的映射
type People map[string]*Person

// Clone 深拷贝整个成员映射
func (ps People) Clone() People {
	cp := make(People, len(ps))
	for id, p := range ps {
		cp[id] = p.Clone()
	}
	return cp
}

// TreeData 家族树文档，既是内存快照也是导入/导出的交换格式
type TreeData struct {
	People      People   `json:"people"`      // 全部成员
	RootIDStack []string `json:"rootIdStack"` // 导航栈，末位为当前显示根
}

// Clone 深拷贝家族树文档
func (t *TreeData) Clone() *TreeData {
	return &TreeData{
		People:      t.People.Clone(),
		RootIDStack: append([]string(nil), t.RootIDStack...),
	}
}

// CurrentRootID 返回当前显示根的ID，栈为空时返回空字符串
func (t *TreeData) CurrentRootID() string {
	if len(t.RootIDStack) == 0 {
		return ""
	}
	return t.RootIDStack[len(t.RootIDStack)-1]
}
