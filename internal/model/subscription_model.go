package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName   string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DurationDays  int       `gorm:"default:30"`
	MaxPatients   int       `gorm:"default:3"` // -1 = unlimited
	PriceCents    int64     `gorm:"default:0"`
	IsTrial       bool      `gorm:"default:false"`
	StripePriceId *string   `gorm:"type:varchar(255);index"`
	IsActive      bool      `gorm:"default:true"`
	SortOrder     int       `gorm:"default:0"`
}

func (Plan) TableName() string {
	return "plans"
}

type Subscription struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	PlanId               uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status               string     `gorm:"type:varchar(50);not null"`
	TrialStart           *time.Time `gorm:""`
	TrialEnd             *time.Time `gorm:""`
	CurrentPeriodStart   *time.Time `gorm:""`
	CurrentPeriodEnd     *time.Time `gorm:""`
	CancelAtPeriodEnd    bool       `gorm:"default:false"`
	CanceledAt           *time.Time `gorm:""`
	StripeSubscriptionId *string    `gorm:"type:varchar(255);uniqueIndex"`
	StripeCustomerId     *string    `gorm:"type:varchar(255);index"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
