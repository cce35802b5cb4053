package models

import "time"

type AutoReply struct {
	ID        string    `db:"id" json:"id"`
	Comment   string    `db:"comment" json:"comment"`
	Reply     string    `db:"reply" json:"reply"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
