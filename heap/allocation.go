package heap

import "time"

type Kind string

const (
	KindSingle = Kind("single")
	KindArray  = Kind("array")
)

// Allocation is the ledger row written for every Box and Array.
type Allocation struct {
	ID         string `gorm:"primaryKey"`
	Kind       Kind
	Length     int
	Released   bool
	CreatedAt  time.Time
	ReleasedAt *time.Time
}

type Stats struct {
	Allocated int
	Released  int
	Live      int
}
