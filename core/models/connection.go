package models

// Connection tracks one live websocket connection so that targeted
// notifications can resolve a user to connection ids. Rows are wiped at
// startup and removed again on disconnect.
type Connection struct {
	ID        string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID    string `gorm:"column:user_id;type:varchar(36);index" json:"userId"`
	IP        string `gorm:"column:ip;type:varchar(45)" json:"ip"`
	ConnectDT string `gorm:"column:connect_dt;type:varchar(23)" json:"connectDt"`
}

func (Connection) TableName() string {
	return "connections"
}
