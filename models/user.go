package models

import (
	"time"
)

// User represents a player account keyed by Discord ID
type User struct {
	ID         int64     `db:"id"`
	Balance    int64     `db:"balance"`
	LastPackAt time.Time `db:"last_pack_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
