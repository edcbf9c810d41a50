package model

import (
	"time"
)

// DefaultRedirectTable is the default name of the redirect rule table
const DefaultRedirectTable = "redirect"

// Redirect is a source => target rule.
// Rows are only inserted; CreatedAt is filled by the store at insert time.
type Redirect struct {
	Source    string    `gorm:"type:varchar(512);primaryKey" json:"source"`
	Target    string    `gorm:"type:varchar(512);not null;index" json:"target"`
	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index" json:"createdAt"`
}

// TableName specifies the default table name for Redirect model
func (Redirect) TableName() string {
	return DefaultRedirectTable
}
