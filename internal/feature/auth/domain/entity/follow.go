package entity

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
// The composite primary key makes each ordered pair unique, and both ends
// reference users so that an edge cannot outlive either account.
type Follow struct {
	FollowerID  string `gorm:"primaryKey;size:36"`
	FollowingID string `gorm:"primaryKey;size:36;index"`
	CreatedAt   time.Time

	Follower  *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
