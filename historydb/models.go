// Package historydb persists a queryable read-model of per-epoch stake
// history and redemption activity. It is an analytics side table: the
// authoritative per-epoch aggregate still lives in stakehistory.History,
// and nothing in package stake or account depends on this package.
package historydb

import (
	"time"

	"gorm.io/gorm"
)

// EpochEntry mirrors a stakehistory.Entry at a point in time, for querying
// historical warmup/cooldown totals without replaying the chain.
type EpochEntry struct {
	Epoch        uint64 `gorm:"primaryKey"`
	Effective    uint64 `gorm:"not null"`
	Activating   uint64 `gorm:"not null"`
	Deactivating uint64 `gorm:"not null"`
	RecordedAt   time.Time
}

// Redemption records one successful redeem_vote_credits call for later
// reporting (validator payout history, commission audits).
type Redemption struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement"`
	StakeAccount    string `gorm:"size:40;index"`
	VoterAccount    string `gorm:"size:40;index"`
	Epoch           uint64 `gorm:"index"`
	VoterReward     uint64
	StakerReward    uint64
	CreditsObserved uint64
	CreatedAt       time.Time
}

// AutoMigrate creates or updates the tables this package owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&EpochEntry{}, &Redemption{})
}
