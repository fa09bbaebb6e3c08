package model

// PersonForm 成员基本信息表单
type PersonForm struct {
	FirstName string `json:"firstName" binding:"required,max=100"`        // 名
	LastName  string `json:"lastName" binding:"max=100"`                  // 姓
	Gender    Gender `json:"gender" binding:"required,oneof=male female"` // 性别
}

// PersonDetails 成员详细信息表单
//
// 编辑时空值会清除对应字段，这与合并的"非空才覆盖"规则不同。
type PersonDetails struct {
	BirthDate       string       `json:"birthDate" binding:"omitempty,max=10,flexdate"` // 出生日期
	DeathDate       string       `json:"deathDate" binding:"omitempty,max=10,flexdate"` // 去世日期
	ImageURL        string       `json:"imageUrl" binding:"max=500"`                    // 头像地址
	Bio             string       `json:"bio"`                                           // 简介
	CemeteryAddress string       `json:"cemeteryAddress"`                               // 墓地地址
	ContactInfo     *ContactInfo `json:"contactInfo"`                                   // 联系方式
}

// NormalizedContact 返回去除空白后的联系方式，全部为空时返回nil
func (d *PersonDetails) NormalizedContact() *ContactInfo {
	if d.ContactInfo == nil || d.ContactInfo.IsEmpty() {
		return nil
	}
	ci := *d.ContactInfo
	return &ci
}
