package sqlc

import (
	"database/sql"
)

type Collection struct {
	ID          string
	Name        string
	Type        string
	Description sql.NullString
	CreatedAt   int64
	UpdatedAt   int64
}

type CollectionGame struct {
	CollectionID string
	GameID       int64
	AddedAt      int64
}
