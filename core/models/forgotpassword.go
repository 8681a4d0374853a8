package models

// ForgotPassword is a one-time reset token. Deleted in cascade when the
// owning user is deleted.
type ForgotPassword struct {
	ID             string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID         string `gorm:"column:user_id;type:varchar(36);index;not null" json:"userId"`
	IsReseted      int32  `gorm:"column:is_reseted;not null;default:0" json:"isReseted"`
	ExpiryDateTime string `gorm:"column:expiry_datetime;type:varchar(23);not null" json:"expiryDateTime"`
}

func (ForgotPassword) TableName() string {
	return "forgot_passwords"
}
