package models

type User struct {
	ID        string  `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Account   string  `gorm:"column:account;type:varchar(100);uniqueIndex;not null" json:"account"`
	Password  string  `gorm:"column:password;type:varchar(128);not null" json:"-"`
	Name      string  `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email     string  `gorm:"column:email;type:varchar(254);uniqueIndex;not null" json:"email"`
	Birthday  string  `gorm:"column:birthday;type:varchar(10)" json:"birthday"`
	IsEnabled int32   `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
	AvatarID  *string `gorm:"column:avatar_id;type:varchar(36)" json:"avatarId"`
}

func (User) TableName() string {
	return "users"
}
