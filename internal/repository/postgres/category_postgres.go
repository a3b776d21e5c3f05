package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const categoryColumns = "id, audience_type, platform_id, name, description, path, last_updated"

// CategoryPostgres is a PostgreSQL implementation of
// repository.CRUD[model.FacebookAdTargetingCategory]. last_updated is set to
// the current date on every write.
type CategoryPostgres struct {
	db *sql.DB
}

func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CRUD[model.FacebookAdTargetingCategory] = (*CategoryPostgres)(nil)

func scanCategory(row scannable) (*model.FacebookAdTargetingCategory, error) {
	var c model.FacebookAdTargetingCategory
	if err := row.Scan(&c.ID, &c.AudienceType, &c.PlatformID, &c.Name, &c.Description, &c.Path, &c.LastUpdated); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryPostgres) Create(ctx context.Context, c *model.FacebookAdTargetingCategory) (*model.FacebookAdTargetingCategory, error) {
	const q = `
		INSERT INTO facebook_ad_targeting_categories (audience_type, platform_id, name, description, path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns
	return mapped(scanCategory(r.db.QueryRowContext(ctx, q, c.AudienceType, c.PlatformID, c.Name, c.Description, c.Path)))
}

func (r *CategoryPostgres) FindByID(ctx context.Context, id int64) (*model.FacebookAdTargetingCategory, error) {
	const q = `SELECT ` + categoryColumns + ` FROM facebook_ad_targeting_categories WHERE id = $1`
	return scanCategory(r.db.QueryRowContext(ctx, q, id))
}

func (r *CategoryPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.FacebookAdTargetingCategory], error) {
	return listPage(ctx, r.db, "facebook_ad_targeting_categories", categoryColumns, pq, scanCategory)
}

func (r *CategoryPostgres) Update(ctx context.Context, id int64, c *model.FacebookAdTargetingCategory) (*model.FacebookAdTargetingCategory, error) {
	const q = `
		UPDATE facebook_ad_targeting_categories SET
			audience_type = $1, platform_id = $2, name = $3, description = $4, path = $5,
			last_updated = CURRENT_DATE
		WHERE id = $6
		RETURNING ` + categoryColumns
	return mapped(scanCategory(r.db.QueryRowContext(ctx, q, c.AudienceType, c.PlatformID, c.Name, c.Description, c.Path, id)))
}

// Delete removes a category and every datum scored against it.
func (r *CategoryPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "facebook_ad_targeting_categories", id)
}
