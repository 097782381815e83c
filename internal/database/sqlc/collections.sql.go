package sqlc

import (
	"context"
	"database/sql"
)

const countGamesByCollection = `-- name: CountGamesByCollection :many
SELECT c.id, COUNT(cg.game_id) AS game_count
FROM collections c
LEFT JOIN collection_game cg ON cg.collection_id = c.id
GROUP BY c.id
`

type CountGamesByCollectionRow struct {
	ID        string
	GameCount int64
}

func (q *Queries) CountGamesByCollection(ctx context.Context) ([]CountGamesByCollectionRow, error) {
	rows, err := q.db.QueryContext(ctx, countGamesByCollection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountGamesByCollectionRow
	for rows.Next() {
		var i CountGamesByCollectionRow
		if err := rows.Scan(&i.ID, &i.GameCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCollectionByID = `-- name: DeleteCollectionByID :execrows
DELETE FROM collections
WHERE id = ?
`

func (q *Queries) DeleteCollectionByID(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteCollectionByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMembership = `-- name: DeleteMembership :execrows
DELETE FROM collection_game
WHERE collection_id = ? AND game_id = ?
`

type DeleteMembershipParams struct {
	CollectionID string
	GameID       int64
}

func (q *Queries) DeleteMembership(ctx context.Context, arg DeleteMembershipParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMembership, arg.CollectionID, arg.GameID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getCollectionByID = `-- name: GetCollectionByID :one
SELECT id, name, type, description, created_at, updated_at
FROM collections
WHERE id = ?
`

func (q *Queries) GetCollectionByID(ctx context.Context, id string) (Collection, error) {
	row := q.db.QueryRowContext(ctx, getCollectionByID, id)
	var i Collection
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCollectionByName = `-- name: GetCollectionByName :one
SELECT id, name, type, description, created_at, updated_at
FROM collections
WHERE name = ?
`

func (q *Queries) GetCollectionByName(ctx context.Context, name string) (Collection, error) {
	row := q.db.QueryRowContext(ctx, getCollectionByName, name)
	var i Collection
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertCollection = `-- name: InsertCollection :exec
INSERT INTO collections (id, name, type, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type InsertCollectionParams struct {
	ID          string
	Name        string
	Type        string
	Description sql.NullString
	CreatedAt   int64
	UpdatedAt   int64
}

func (q *Queries) InsertCollection(ctx context.Context, arg InsertCollectionParams) error {
	_, err := q.db.ExecContext(ctx, insertCollection,
		arg.ID,
		arg.Name,
		arg.Type,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const insertMembership = `-- name: InsertMembership :exec
INSERT INTO collection_game (collection_id, game_id, added_at)
VALUES (?, ?, ?)
`

type InsertMembershipParams struct {
	CollectionID string
	GameID       int64
	AddedAt      int64
}

func (q *Queries) InsertMembership(ctx context.Context, arg InsertMembershipParams) error {
	_, err := q.db.ExecContext(ctx, insertMembership, arg.CollectionID, arg.GameID, arg.AddedAt)
	return err
}

const listCollections = `-- name: ListCollections :many
SELECT id, name, type, description, created_at, updated_at
FROM collections
ORDER BY created_at, rowid
`

func (q *Queries) ListCollections(ctx context.Context) ([]Collection, error) {
	rows, err := q.db.QueryContext(ctx, listCollections)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Collection
	for rows.Next() {
		var i Collection
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listGameIDsByCollection = `-- name: ListGameIDsByCollection :many
SELECT game_id
FROM collection_game
WHERE collection_id = ?
ORDER BY added_at, rowid
`

func (q *Queries) ListGameIDsByCollection(ctx context.Context, collectionID string) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listGameIDsByCollection, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []int64
	for rows.Next() {
		var game_id int64
		if err := rows.Scan(&game_id); err != nil {
			return nil, err
		}
		items = append(items, game_id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMembershipsByCollection = `-- name: ListMembershipsByCollection :many
SELECT collection_id, game_id, added_at
FROM collection_game
WHERE collection_id = ?
ORDER BY added_at, rowid
`

func (q *Queries) ListMembershipsByCollection(ctx context.Context, collectionID string) ([]CollectionGame, error) {
	rows, err := q.db.QueryContext(ctx, listMembershipsByCollection, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CollectionGame
	for rows.Next() {
		var i CollectionGame
		if err := rows.Scan(&i.CollectionID, &i.GameID, &i.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const touchCollection = `-- name: TouchCollection :execrows
UPDATE collections
SET updated_at = ?
WHERE id = ?
`

type TouchCollectionParams struct {
	UpdatedAt int64
	ID        string
}

func (q *Queries) TouchCollection(ctx context.Context, arg TouchCollectionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, touchCollection, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateCollection = `-- name: UpdateCollection :execrows
UPDATE collections
SET name = ?, description = ?, updated_at = ?
WHERE id = ?
`

type UpdateCollectionParams struct {
	Name        string
	Description sql.NullString
	UpdatedAt   int64
	ID          string
}

func (q *Queries) UpdateCollection(ctx context.Context, arg UpdateCollectionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateCollection,
		arg.Name,
		arg.Description,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
