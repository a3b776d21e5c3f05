package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const profileDatumColumns = "id, category_id, biased_index, unbiased_index, opportunity_score, reach_audience, reach_base, created_time"

// ProfileDatumPostgres is a PostgreSQL implementation of repository.CRUD[model.ProfileDatum].
// created_time is refreshed on every write.
type ProfileDatumPostgres struct {
	db *sql.DB
}

func NewProfileDatumPostgres(db *sql.DB) *ProfileDatumPostgres {
	return &ProfileDatumPostgres{db: db}
}

var _ repository.CRUD[model.ProfileDatum] = (*ProfileDatumPostgres)(nil)

func scanProfileDatum(row scannable) (*model.ProfileDatum, error) {
	var d model.ProfileDatum
	if err := row.Scan(
		&d.ID,
		&d.Category,
		&d.BiasedIndex,
		&d.UnbiasedIndex,
		&d.OpportunityScore,
		&d.ReachAudience,
		&d.ReachBase,
		&d.CreatedTime,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ProfileDatumPostgres) Create(ctx context.Context, d *model.ProfileDatum) (*model.ProfileDatum, error) {
	const q = `
		INSERT INTO profile_data (category_id, biased_index, unbiased_index, opportunity_score, reach_audience, reach_base)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileDatumColumns
	out, err := scanProfileDatum(r.db.QueryRowContext(ctx, q,
		d.Category,
		d.BiasedIndex,
		d.UnbiasedIndex,
		d.OpportunityScore,
		d.ReachAudience,
		d.ReachBase,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ProfileDatumPostgres) FindByID(ctx context.Context, id int64) (*model.ProfileDatum, error) {
	const q = `SELECT ` + profileDatumColumns + ` FROM profile_data WHERE id = $1`
	return scanProfileDatum(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProfileDatumPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ProfileDatum], error) {
	return listPage(ctx, r.db, "profile_data", profileDatumColumns, pq, scanProfileDatum)
}

func (r *ProfileDatumPostgres) Update(ctx context.Context, id int64, d *model.ProfileDatum) (*model.ProfileDatum, error) {
	const q = `
		UPDATE profile_data SET
			category_id = $1, biased_index = $2, unbiased_index = $3, opportunity_score = $4,
			reach_audience = $5, reach_base = $6, created_time = now()
		WHERE id = $7
		RETURNING ` + profileDatumColumns
	out, err := scanProfileDatum(r.db.QueryRowContext(ctx, q,
		d.Category,
		d.BiasedIndex,
		d.UnbiasedIndex,
		d.OpportunityScore,
		d.ReachAudience,
		d.ReachBase,
		id,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ProfileDatumPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "profile_data", id)
}
