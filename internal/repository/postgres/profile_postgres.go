package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const profileColumns = "id, target_id, created, audience_reach, base_audience_reach, bias_normalizer"

// ProfilePostgres is a PostgreSQL implementation of repository.CRUD[model.Profile].
type ProfilePostgres struct {
	db *sql.DB
}

func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.CRUD[model.Profile] = (*ProfilePostgres)(nil)

func scanProfile(row scannable) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(&p.ID, &p.Target, &p.Created, &p.AudienceReach, &p.BaseAudienceReach, &p.BiasNormalizer); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a profile and points its target's latest_profile_id at it.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const (
		qInsert = `
			INSERT INTO profiles (target_id, audience_reach, base_audience_reach, bias_normalizer)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + profileColumns
		qLatest = `UPDATE targets SET latest_profile_id = $1 WHERE id = $2`
	)

	var out *model.Profile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stored, err := scanProfile(tx.QueryRowContext(ctx, qInsert,
			p.Target,
			p.AudienceReach,
			p.BaseAudienceReach,
			p.BiasNormalizer,
		))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, qLatest, stored.ID, stored.Target); err != nil {
			return err
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ProfilePostgres) FindByID(ctx context.Context, id int64) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProfilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Profile], error) {
	return listPage(ctx, r.db, "profiles", profileColumns, pq, scanProfile)
}

// Update rewrites a profile. When the profile moves to another target, the old
// target's latest_profile_id is recomputed from the profiles it still owns.
func (r *ProfilePostgres) Update(ctx context.Context, id int64, p *model.Profile) (*model.Profile, error) {
	const (
		qCurrent = `SELECT target_id FROM profiles WHERE id = $1 FOR UPDATE`
		qUpdate  = `
			UPDATE profiles SET target_id = $1, audience_reach = $2, base_audience_reach = $3, bias_normalizer = $4
			WHERE id = $5
			RETURNING ` + profileColumns
		qRelatest = `
			UPDATE targets SET latest_profile_id = (
				SELECT id FROM profiles WHERE target_id = $1 ORDER BY created DESC, id DESC LIMIT 1
			)
			WHERE id = $1 AND latest_profile_id = $2`
	)

	var out *model.Profile
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var oldTarget int64
		if err := tx.QueryRowContext(ctx, qCurrent, id).Scan(&oldTarget); err != nil {
			return err
		}
		stored, err := scanProfile(tx.QueryRowContext(ctx, qUpdate,
			p.Target,
			p.AudienceReach,
			p.BaseAudienceReach,
			p.BiasNormalizer,
			id,
		))
		if err != nil {
			return err
		}
		if stored.Target != oldTarget {
			if _, err := tx.ExecContext(ctx, qRelatest, oldTarget, id); err != nil {
				return err
			}
		}
		out = stored
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Delete removes a profile. A target pointing at it gets a NULL latest_profile_id.
func (r *ProfilePostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "profiles", id)
}
