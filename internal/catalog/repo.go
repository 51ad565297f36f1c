package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListQuery is the store-level page request. Limit < 0 means no limit.
type ListQuery struct {
	Sort   SortKey
	Limit  int
	Offset int
}

const upsertSQL = `
	INSERT INTO catalog_records (
		id, name, categories, height_units, weight_units, order_rank,
		lineage_name, variant_name, assets, attributes, traits, learnable_actions, updated_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		categories = excluded.categories,
		height_units = excluded.height_units,
		weight_units = excluded.weight_units,
		order_rank = excluded.order_rank,
		lineage_name = excluded.lineage_name,
		variant_name = excluded.variant_name,
		assets = excluded.assets,
		attributes = excluded.attributes,
		traits = excluded.traits,
		learnable_actions = excluded.learnable_actions,
		updated_at = CURRENT_TIMESTAMP
`

// Upsert writes rec as a full overwrite of any existing row with the same
// id. It reports whether the row was newly created.
func (r *Repo) Upsert(ctx context.Context, rec models.CatalogRecord) (bool, error) {
	cols, err := encodeColumns(rec)
	if err != nil {
		return false, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, pkgerrors.Storage("begin upsert", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM catalog_records WHERE id = ?)`, rec.ID,
	).Scan(&exists); err != nil {
		return false, pkgerrors.Storage("check record exists", err)
	}

	if _, err := tx.ExecContext(ctx, upsertSQL, cols.args(rec)...); err != nil {
		return false, pkgerrors.Storage(fmt.Sprintf("upsert record %d", rec.ID), err)
	}

	if err := tx.Commit(); err != nil {
		return false, pkgerrors.Storage("commit upsert", err)
	}
	return !exists, nil
}

// Reseed clears roster memberships, then all records, then inserts recs
// one statement at a time. It is deliberately not wrapped in a single
// transaction: a failure part-way leaves a partially seeded catalog.
// progress, when non-nil, is called after each insert.
func (r *Repo) Reseed(ctx context.Context, recs []models.CatalogRecord, progress func(done, total int)) (int, error) {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM roster_members`); err != nil {
		return 0, pkgerrors.Storage("clear roster members", err)
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM catalog_records`); err != nil {
		return 0, pkgerrors.Storage("clear catalog records", err)
	}

	stmt, err := r.DB.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return 0, pkgerrors.Storage("prepare insert", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		cols, err := encodeColumns(rec)
		if err != nil {
			return i, err
		}
		if _, err := stmt.ExecContext(ctx, cols.args(rec)...); err != nil {
			return i, pkgerrors.Storage(fmt.Sprintf("insert record %d", rec.ID), err)
		}
		if progress != nil {
			progress(i+1, len(recs))
		}
	}
	return len(recs), nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (*models.CatalogRecord, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, categories, height_units, weight_units, order_rank,
		       lineage_name, variant_name, assets, attributes, traits, learnable_actions
		FROM catalog_records
		WHERE id = ?
	`, id)

	var (
		rec                       models.CatalogRecord
		lineage, variant          sql.NullString
		categoriesJSON, assetsRaw string
		attributesJSON, traitsRaw string
		actionsJSON               string
	)
	if err := row.Scan(
		&rec.ID, &rec.Name, &categoriesJSON, &rec.HeightUnits, &rec.WeightUnits, &rec.OrderRank,
		&lineage, &variant, &assetsRaw, &attributesJSON, &traitsRaw, &actionsJSON,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, pkgerrors.Storage("scan record", err)
	}

	rec.LineageName = nullStringPtr(lineage)
	rec.VariantName = nullStringPtr(variant)

	if err := decodeJSON("categories", categoriesJSON, &rec.Categories); err != nil {
		return nil, err
	}
	if err := decodeJSON("assets", assetsRaw, &rec.Assets); err != nil {
		return nil, err
	}
	if err := decodeJSON("attributes", attributesJSON, &rec.Attributes); err != nil {
		return nil, err
	}
	if err := decodeJSON("traits", traitsRaw, &rec.Traits); err != nil {
		return nil, err
	}
	if err := decodeJSON("learnable_actions", actionsJSON, &rec.LearnableActions); err != nil {
		return nil, err
	}
	rec.Assets = completeAssets(rec.Assets)
	return &rec, nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_records`).Scan(&total); err != nil {
		return 0, pkgerrors.Storage("count records", err)
	}
	return total, nil
}

// List returns one page of summaries in the requested order.
func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.CatalogRecordSummary, error) {
	limit := q.Limit
	if limit < 0 {
		limit = -1 // sqlite: no limit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	return r.querySummaries(ctx, `
		SELECT id, name, categories, assets
		FROM catalog_records
		ORDER BY `+q.Sort.orderBy()+`
		LIMIT ? OFFSET ?
	`, limit, offset)
}

// ListAll returns every summary ordered by ascending id.
func (r *Repo) ListAll(ctx context.Context) ([]models.CatalogRecordSummary, error) {
	return r.querySummaries(ctx, `
		SELECT id, name, categories, assets
		FROM catalog_records
		ORDER BY id ASC
	`)
}

func (r *Repo) querySummaries(ctx context.Context, query string, args ...any) ([]models.CatalogRecordSummary, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Storage("list records", err)
	}
	defer rows.Close()

	out := make([]models.CatalogRecordSummary, 0)
	for rows.Next() {
		var (
			s              models.CatalogRecordSummary
			categoriesJSON string
			assetsJSON     string
			assets         models.Assets
		)
		if err := rows.Scan(&s.ID, &s.Name, &categoriesJSON, &assetsJSON); err != nil {
			return nil, pkgerrors.Storage("scan summary", err)
		}
		if err := decodeJSON("categories", categoriesJSON, &s.Categories); err != nil {
			return nil, err
		}
		if err := decodeJSON("assets", assetsJSON, &assets); err != nil {
			return nil, err
		}
		if s.Categories == nil {
			s.Categories = []models.Category{}
		}
		s.Sprites.FrontDefault = assets.Get(models.FrontDefault)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Storage("rows err", err)
	}
	return out, nil
}

// encodedColumns holds the JSON text columns of one record.
type encodedColumns struct {
	categories, assets, attributes, traits, actions string
}

func encodeColumns(rec models.CatalogRecord) (encodedColumns, error) {
	var cols encodedColumns
	var err error
	if cols.categories, err = encodeJSON(rec.ID, "categories", nonNil(rec.Categories)); err != nil {
		return cols, err
	}
	if cols.assets, err = encodeJSON(rec.ID, "assets", completeAssets(rec.Assets)); err != nil {
		return cols, err
	}
	if cols.attributes, err = encodeJSON(rec.ID, "attributes", nonNil(rec.Attributes)); err != nil {
		return cols, err
	}
	if cols.traits, err = encodeJSON(rec.ID, "traits", nonNil(rec.Traits)); err != nil {
		return cols, err
	}
	if cols.actions, err = encodeJSON(rec.ID, "learnable_actions", nonNil(rec.LearnableActions)); err != nil {
		return cols, err
	}
	return cols, nil
}

func (c encodedColumns) args(rec models.CatalogRecord) []any {
	return []any{
		rec.ID, rec.Name, c.categories, rec.HeightUnits, rec.WeightUnits, rec.OrderRank,
		ptrNullString(rec.LineageName), ptrNullString(rec.VariantName),
		c.assets, c.attributes, c.traits, c.actions,
	}
}

func encodeJSON(id int, field string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", pkgerrors.Storage(fmt.Sprintf("marshal %s for %d", field, id), err)
	}
	return string(b), nil
}

func decodeJSON(field, raw string, dst any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return pkgerrors.Storage("decode "+field, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// completeAssets returns a copy of a with every known slot present.
func completeAssets(a models.Assets) models.Assets {
	out := models.NewAssets()
	for _, slot := range models.AssetSlots {
		out[slot] = a.Get(slot)
	}
	return out
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrNullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
