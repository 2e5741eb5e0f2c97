package domain

import (
	"errors"
	"time"
)

// ErrOptimisticLock means the inventory row changed since it was read.
var ErrOptimisticLock = errors.New("optimistic lock conflict")

type Inventory struct {
	ProductID int
	Stock     int
	Version   int // optimistic locking
	CreatedAt time.Time
	UpdatedAt time.Time
}
