package postgres

import (
	"context"
	"database/sql"
	"sort"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const entryColumns = "id, blog_id, headline, body_text, pub_date, mod_date, n_comments, n_pingbacks, rating, created_at, modified_at"

// EntryPostgres is a PostgreSQL implementation of repository.CRUD[model.Entry].
// The many-to-many authors live in entry_authors and are written in the same
// transaction as the entry row.
type EntryPostgres struct {
	db *sql.DB
}

func NewEntryPostgres(db *sql.DB) *EntryPostgres {
	return &EntryPostgres{db: db}
}

var _ repository.CRUD[model.Entry] = (*EntryPostgres)(nil)

func scanEntry(row scannable) (*model.Entry, error) {
	var e model.Entry
	if err := row.Scan(
		&e.ID,
		&e.Blog,
		&e.Headline,
		&e.BodyText,
		&e.PubDate,
		&e.ModDate,
		&e.NComments,
		&e.NPingbacks,
		&e.Rating,
		&e.CreatedAt,
		&e.ModifiedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryPostgres) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	const q = `
		INSERT INTO entries (blog_id, headline, body_text, pub_date, mod_date, n_comments, n_pingbacks, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + entryColumns

	var out *model.Entry
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stored, err := scanEntry(tx.QueryRowContext(ctx, q,
			e.Blog,
			e.Headline,
			e.BodyText,
			e.PubDate,
			e.ModDate,
			e.NComments,
			e.NPingbacks,
			e.Rating,
		))
		if err != nil {
			return err
		}
		if stored.Authors, err = replaceEntryAuthors(ctx, tx, stored.ID, e.Authors); err != nil {
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

func (r *EntryPostgres) FindByID(ctx context.Context, id int64) (*model.Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	e, err := scanEntry(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if e.Authors, err = loadEntryAuthors(ctx, r.db, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EntryPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Entry], error) {
	res, err := listPage(ctx, r.db, "entries", entryColumns, pq, scanEntry)
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return res, nil
	}

	ids := make([]int64, len(res.Items))
	for i, e := range res.Items {
		ids[i] = e.ID
	}
	byEntry, err := loadAuthorsByEntry(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range res.Items {
		if authors, ok := byEntry[res.Items[i].ID]; ok {
			res.Items[i].Authors = authors
		} else {
			res.Items[i].Authors = []int64{}
		}
	}
	return res, nil
}

func (r *EntryPostgres) Update(ctx context.Context, id int64, e *model.Entry) (*model.Entry, error) {
	const q = `
		UPDATE entries SET
			blog_id = $1, headline = $2, body_text = $3, pub_date = $4, mod_date = $5,
			n_comments = $6, n_pingbacks = $7, rating = $8, modified_at = now()
		WHERE id = $9
		RETURNING ` + entryColumns

	var out *model.Entry
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stored, err := scanEntry(tx.QueryRowContext(ctx, q,
			e.Blog,
			e.Headline,
			e.BodyText,
			e.PubDate,
			e.ModDate,
			e.NComments,
			e.NPingbacks,
			e.Rating,
			id,
		))
		if err != nil {
			return err
		}
		if stored.Authors, err = replaceEntryAuthors(ctx, tx, id, e.Authors); err != nil {
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

// Delete removes an entry together with its comments and author links.
func (r *EntryPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "entries", id)
}

func loadEntryAuthors(ctx context.Context, q querier, entryID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT author_id FROM entry_authors WHERE entry_id = $1 ORDER BY author_id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// loadAuthorsByEntry fetches the authors of a page of entries in one round trip.
func loadAuthorsByEntry(ctx context.Context, q querier, entryIDs []int64) (map[int64][]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT entry_id, author_id FROM entry_authors WHERE entry_id = ANY($1) ORDER BY entry_id, author_id`, entryIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]int64, len(entryIDs))
	for rows.Next() {
		var entryID, authorID int64
		if err := rows.Scan(&entryID, &authorID); err != nil {
			return nil, err
		}
		out[entryID] = append(out[entryID], authorID)
	}
	return out, rows.Err()
}

// replaceEntryAuthors makes authorIDs the full author set of the entry and
// returns it deduplicated and sorted.
func replaceEntryAuthors(ctx context.Context, q querier, entryID int64, authorIDs []int64) ([]int64, error) {
	if _, err := q.ExecContext(ctx, `DELETE FROM entry_authors WHERE entry_id = $1`, entryID); err != nil {
		return nil, err
	}

	ids := uniqueSorted(authorIDs)
	for _, authorID := range ids {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO entry_authors (entry_id, author_id) VALUES ($1, $2)`, entryID, authorID); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func uniqueSorted(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
