package roster

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListQuery filters rosters by a case-insensitive name substring.
// Limit < 0 means no limit.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

func (r *Repo) Create(ctx context.Context, name string) (*models.Roster, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO rosters (name) VALUES (?)`, name)
	if err != nil {
		return nil, pkgerrors.Storage("insert roster", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, pkgerrors.Storage("roster id", err)
	}

	created, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, pkgerrors.Storage("reload roster", fmt.Errorf("roster %d vanished after insert", id))
	}
	return created, nil
}

// Get returns the roster with members in position order, or nil if the
// roster does not exist.
func (r *Repo) Get(ctx context.Context, id int64) (*models.Roster, error) {
	return getRoster(ctx, r.DB, id)
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Roster, error) {
	limit := q.Limit
	if limit < 0 {
		limit = -1
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		rows *sql.Rows
		err  error
	)
	if search := strings.TrimSpace(q.Search); search == "" {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT id, name, created_at, updated_at
			FROM rosters
			ORDER BY id ASC
			LIMIT ? OFFSET ?
		`, limit, offset)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT id, name, created_at, updated_at
			FROM rosters
			WHERE instr(casefold(name), casefold(?)) > 0
			ORDER BY id ASC
			LIMIT ? OFFSET ?
		`, search, limit, offset)
	}
	if err != nil {
		return nil, pkgerrors.Storage("list rosters", err)
	}
	defer rows.Close()

	out := make([]models.Roster, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var ro models.Roster
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.CreatedAt, &ro.UpdatedAt); err != nil {
			return nil, pkgerrors.Storage("scan roster", err)
		}
		ro.Members = []models.RosterMember{}
		index[ro.ID] = len(out)
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Storage("rows err", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(out))
	for _, ro := range out {
		ids = append(ids, ro.ID)
	}
	mrows, err := r.DB.QueryContext(ctx, `
		SELECT roster_id, position, record_id
		FROM roster_members
		WHERE roster_id IN (`+placeholders(len(ids))+`)
		ORDER BY roster_id ASC, position ASC
	`, ids...)
	if err != nil {
		return nil, pkgerrors.Storage("list roster members", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var (
			rosterID int64
			m        models.RosterMember
		)
		if err := mrows.Scan(&rosterID, &m.Position, &m.RecordID); err != nil {
			return nil, pkgerrors.Storage("scan roster member", err)
		}
		i := index[rosterID]
		out[i].Members = append(out[i].Members, m)
	}
	if err := mrows.Err(); err != nil {
		return nil, pkgerrors.Storage("rows err", err)
	}
	return out, nil
}

// SetMembers replaces the whole membership of a roster in one transaction.
// The connection DSN begins transactions IMMEDIATE, so the existence
// checks and the replacement hold the write lock together.
func (r *Repo) SetMembers(ctx context.Context, rosterID int64, recordIDs []int) (*models.Roster, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Storage("begin set members", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM rosters WHERE id = ?)`, rosterID,
	).Scan(&exists); err != nil {
		return nil, pkgerrors.Storage("check roster exists", err)
	}
	if !exists {
		return nil, pkgerrors.NewNotFoundError("roster", rosterID)
	}

	if distinct := distinctIDs(recordIDs); len(distinct) > 0 {
		var found int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM catalog_records WHERE id IN (`+placeholders(len(distinct))+`)`,
			distinct...,
		).Scan(&found); err != nil {
			return nil, pkgerrors.Storage("check member records", err)
		}
		if found != len(distinct) {
			return nil, &pkgerrors.NotFoundError{Resource: "record", Message: "one or more referenced records not found"}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_members WHERE roster_id = ?`, rosterID); err != nil {
		return nil, pkgerrors.Storage("clear roster members", err)
	}

	if len(recordIDs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO roster_members (roster_id, position, record_id)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return nil, pkgerrors.Storage("prepare member insert", err)
		}
		defer stmt.Close()

		for i, id := range recordIDs {
			if _, err := stmt.ExecContext(ctx, rosterID, i+1, id); err != nil {
				return nil, pkgerrors.Storage(fmt.Sprintf("insert member %d", i+1), err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rosters SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, rosterID,
	); err != nil {
		return nil, pkgerrors.Storage("touch roster", err)
	}

	updated, err := getRoster(ctx, tx, rosterID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, pkgerrors.Storage("commit set members", err)
	}
	return updated, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getRoster(ctx context.Context, q querier, id int64) (*models.Roster, error) {
	var ro models.Roster
	err := q.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM rosters
		WHERE id = ?
	`, id).Scan(&ro.ID, &ro.Name, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, pkgerrors.Storage("get roster", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT position, record_id
		FROM roster_members
		WHERE roster_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, pkgerrors.Storage("get roster members", err)
	}
	defer rows.Close()

	ro.Members = []models.RosterMember{}
	for rows.Next() {
		var m models.RosterMember
		if err := rows.Scan(&m.Position, &m.RecordID); err != nil {
			return nil, pkgerrors.Storage("scan roster member", err)
		}
		ro.Members = append(ro.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Storage("rows err", err)
	}
	return &ro, nil
}

func distinctIDs(ids []int) []any {
	seen := make(map[int]struct{}, len(ids))
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
