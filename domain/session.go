package domain

import "time"

type Session struct {
	ID        string    `json:"id"`
	Selection Selection `json:"selection"`
	UpdatedAt time.Time `json:"updated_at"`
}
