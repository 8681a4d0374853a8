package models

type Menu struct {
	ID         string  `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	PID        *string `gorm:"column:pid;type:varchar(36)" json:"pid"`
	Code       string  `gorm:"column:code;type:varchar(50);not null" json:"code"`
	Seq        int32   `gorm:"column:seq;not null" json:"seq"`
	Icon       string  `gorm:"column:icon;type:varchar(50)" json:"icon"`
	Controller string  `gorm:"column:controller;type:varchar(50)" json:"controller"`
	Action     string  `gorm:"column:action;type:varchar(50)" json:"action"`
	IsEnabled  int32   `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`

	// Joined from menu_translations for the current culture.
	Name        string `gorm:"-" json:"name"`
	Description string `gorm:"-" json:"description"`
}

func (Menu) TableName() string {
	return "menus"
}

type MenuTranslation struct {
	MenuID      string `gorm:"primaryKey;column:menu_id;type:varchar(36)" json:"menuId"`
	LanguageID  string `gorm:"primaryKey;column:language_id;type:varchar(10)" json:"languageId"`
	Name        string `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string `gorm:"column:description;type:varchar(254)" json:"description"`
}

func (MenuTranslation) TableName() string {
	return "menu_translations"
}

type Language struct {
	ID        string `gorm:"primaryKey;column:id;type:varchar(10)" json:"id"`
	Name      string `gorm:"column:name;type:varchar(50)" json:"name"`
	Seq       int32  `gorm:"column:seq;not null" json:"seq"`
	IsEnabled int32  `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
}

func (Language) TableName() string {
	return "languages"
}
