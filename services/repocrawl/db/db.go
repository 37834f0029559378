package db

import (
	"context"
	"database/sql"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// Open opens (or creates) the archive database at path and applies the
// schema.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(Schema)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

type Queries struct {
	db *sql.DB
}

func New(database *sql.DB) *Queries {
	return &Queries{db: database}
}

type NoteRepoParams struct {
	CrawledAt   int64
	Title       string
	Description string
	UpdatedAt   string
	Language    string
	Link        string
}

const noteRepo = `
INSERT INTO repos (crawled_at, title, description, updated_at, language, link)
VALUES (?, ?, ?, ?, ?, ?)
`

func (q *Queries) NoteRepo(ctx context.Context, params NoteRepoParams) error {
	_, err := q.db.ExecContext(
		ctx, noteRepo,
		params.CrawledAt,
		params.Title,
		params.Description,
		params.UpdatedAt,
		params.Language,
		params.Link,
	)
	return err
}

const countRepos = `SELECT COUNT(*) FROM repos`

func (q *Queries) CountRepos(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRepos).Scan(&count)
	return count, err
}

type Repo struct {
	CrawledAt   int64
	Title       string
	Description string
	UpdatedAt   string
	Language    string
	Link        string
}

const listReposByLanguage = `
SELECT crawled_at, title, description, updated_at, language, link
FROM repos WHERE language = ? ORDER BY updated_at DESC
`

func (q *Queries) ListReposByLanguage(ctx context.Context, language string) ([]Repo, error) {
	rows, err := q.db.QueryContext(ctx, listReposByLanguage, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Repo
	for rows.Next() {
		var r Repo
		err = rows.Scan(
			&r.CrawledAt,
			&r.Title,
			&r.Description,
			&r.UpdatedAt,
			&r.Language,
			&r.Link,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
