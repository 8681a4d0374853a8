package models

// Card is a physical attendance badge. UserID is nil while the card is
// unassigned, which happens both for factory-fresh cards and after the
// owning user is deleted.
type Card struct {
	ID     string  `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	CardNo string  `gorm:"column:card_no;type:varchar(50);uniqueIndex;not null" json:"cardNo"`
	UserID *string `gorm:"column:user_id;type:varchar(36)" json:"userId"`
}

func (Card) TableName() string {
	return "cards"
}

// CardHistory is one swipe of a card. Rows are immutable; the timestamp is
// stored as a sortable "2006-01-02 15:04:05.000" string and the date and
// time-of-day parts are sliced out of it by fixed offsets.
type CardHistory struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	CardID          string `gorm:"column:card_id;type:varchar(36);index;not null" json:"cardId"`
	PunchInDateTime string `gorm:"column:punch_in_datetime;type:varchar(23);not null" json:"punchInDateTime"`
}

func (CardHistory) TableName() string {
	return "card_histories"
}
