package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const targetColumns = "id, audience_id, base_audience_id, brand_id, created, creator, name, instagram_placement, latest_profile_id"

// TargetPostgres is a PostgreSQL implementation of repository.CRUD[model.Target].
type TargetPostgres struct {
	db *sql.DB
}

func NewTargetPostgres(db *sql.DB) *TargetPostgres {
	return &TargetPostgres{db: db}
}

var _ repository.CRUD[model.Target] = (*TargetPostgres)(nil)

func scanTarget(row scannable) (*model.Target, error) {
	var t model.Target
	if err := row.Scan(
		&t.ID,
		&t.AudienceID,
		&t.BaseAudienceID,
		&t.BrandID,
		&t.Created,
		&t.Creator,
		&t.Name,
		&t.InstagramPlacement,
		&t.LatestProfile,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TargetPostgres) Create(ctx context.Context, t *model.Target) (*model.Target, error) {
	const q = `
		INSERT INTO targets (audience_id, base_audience_id, brand_id, creator, name, instagram_placement, latest_profile_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + targetColumns
	out, err := scanTarget(r.db.QueryRowContext(ctx, q,
		t.AudienceID,
		t.BaseAudienceID,
		t.BrandID,
		t.Creator,
		t.Name,
		t.InstagramPlacement,
		t.LatestProfile,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *TargetPostgres) FindByID(ctx context.Context, id int64) (*model.Target, error) {
	const q = `SELECT ` + targetColumns + ` FROM targets WHERE id = $1`
	return scanTarget(r.db.QueryRowContext(ctx, q, id))
}

func (r *TargetPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Target], error) {
	return listPage(ctx, r.db, "targets", targetColumns, pq, scanTarget)
}

func (r *TargetPostgres) Update(ctx context.Context, id int64, t *model.Target) (*model.Target, error) {
	const q = `
		UPDATE targets SET
			audience_id = $1, base_audience_id = $2, brand_id = $3, creator = $4,
			name = $5, instagram_placement = $6, latest_profile_id = $7
		WHERE id = $8
		RETURNING ` + targetColumns
	out, err := scanTarget(r.db.QueryRowContext(ctx, q,
		t.AudienceID,
		t.BaseAudienceID,
		t.BrandID,
		t.Creator,
		t.Name,
		t.InstagramPlacement,
		t.LatestProfile,
		id,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Delete removes a target and all of its profiles.
func (r *TargetPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "targets", id)
}
