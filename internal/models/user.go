package models

import "time"

// 角色取值与上游一致
const (
	RoleOwner    = "owner"
	RolePBXAdmin = "pbx_admin"
	RolePBXUser  = "pbx_user"
	RoleReporter = "reporter"
)

// Extension 用户关联的内线
type Extension struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`
}

// User 用户
type User struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	Country   string     `json:"country,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Extension *Extension `json:"extension,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CanManage 是否可见增删改入口
func (u *User) CanManage() bool {
	return u != nil && (u.Role == RoleOwner || u.Role == RolePBXAdmin)
}

// UserInput 创建/更新用户的表单载荷
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ExtensionID uint   `json:"extension_id,omitempty"`
}
