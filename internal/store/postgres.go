package store

import (
	"context"
	"errors"

	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of the link and click
// repositories. The cascading delete runs in one transaction, so readers
// never observe a link without its clicks or vice versa.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO links (id, code, original_url, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		link.ID,
		string(link.Code),
		link.OriginalURL,
		link.Title,
		link.CreatedAt,
	)

	return err
}

func (p *PostgresStore) Update(ctx context.Context, id string, update shortener.LinkUpdate) error {
	query := `
		UPDATE links
		SET title = COALESCE($2, title),
		    original_url = COALESCE($3, original_url)
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, id, update.Title, update.OriginalURL)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `DELETE FROM clicks WHERE url_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query := `
		SELECT id, code, original_url, title, created_at
		FROM links
		WHERE code = $1
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, string(code)))
}

func (p *PostgresStore) GetByID(ctx context.Context, id string) (*shortener.ShortLink, error) {
	query := `
		SELECT id, code, original_url, title, created_at
		FROM links
		WHERE id = $1
	`

	return p.scanLink(p.pool.QueryRow(ctx, query, id))
}

func (p *PostgresStore) scanLink(row pgx.Row) (*shortener.ShortLink, error) {
	var link shortener.ShortLink

	err := row.Scan(
		&link.ID,
		&link.Code,
		&link.OriginalURL,
		&link.Title,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*shortener.ShortLink, error) {
	query := `
		SELECT id, code, original_url, title, created_at
		FROM links
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*shortener.ShortLink, 0)

	for rows.Next() {
		var link shortener.ShortLink

		err = rows.Scan(&link.ID, &link.Code, &link.OriginalURL, &link.Title, &link.CreatedAt)
		if err != nil {
			return nil, err
		}

		links = append(links, &link)
	}

	return links, rows.Err()
}

func (p *PostgresStore) Append(ctx context.Context, event *shortener.ClickEvent) error {
	query := `
		INSERT INTO clicks (id, url_id, accessed_at, ip, country, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.URLID,
		event.Timestamp,
		event.IP,
		event.Country,
		event.UserAgent,
	)

	return err
}

func (p *PostgresStore) ListByLink(ctx context.Context, urlID string) ([]*shortener.ClickEvent, error) {
	query := `
		SELECT id, url_id, accessed_at, ip, country, user_agent
		FROM clicks
		WHERE url_id = $1
		ORDER BY accessed_at DESC
	`

	rows, err := p.pool.Query(ctx, query, urlID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClicks(rows)
}

func (p *PostgresStore) ListAll(ctx context.Context) ([]*shortener.ClickEvent, error) {
	query := `
		SELECT id, url_id, accessed_at, ip, country, user_agent
		FROM clicks
		ORDER BY accessed_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClicks(rows)
}

func scanClicks(rows pgx.Rows) ([]*shortener.ClickEvent, error) {
	events := make([]*shortener.ClickEvent, 0)

	for rows.Next() {
		var event shortener.ClickEvent

		err := rows.Scan(
			&event.ID,
			&event.URLID,
			&event.Timestamp,
			&event.IP,
			&event.Country,
			&event.UserAgent,
		)
		if err != nil {
			return nil, err
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}

// Compile-time checks.
var (
	_ shortener.LinkRepository  = (*PostgresStore)(nil)
	_ shortener.ClickRepository = (*PostgresStore)(nil)
)
