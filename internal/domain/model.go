package domain

import "time"

type User struct {
	ID           int64
	Login        string
	Password     string
	RegisteredAt time.Time
}
