// Package postgres is the networked document backend. Résumés are stored as
// JSONB next to the columns queried by name.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Resumes returns the résumé repository backed by s.
func (s *Store) Resumes() *ResumeRepository {
	return &ResumeRepository{pool: s.pool}
}

// Cache returns the PDF cache repository backed by s.
func (s *Store) Cache() *PDFCacheRepository {
	return &PDFCacheRepository{pool: s.pool}
}

// ResumeRepository implements storage.ResumeRepository.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil && n > 0
}

func (r *ResumeRepository) query(ctx context.Context, op, sql string, args ...any) ([]*types.Resume, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storage.Wrap(op, err)
	}
	defer rows.Close()

	var out []*types.Resume
	for rows.Next() {
		var id int64
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, storage.Wrap(op, err)
		}
		doc, err := storage.UnmarshalDocument(strconv.FormatInt(id, 10), data)
		if err != nil {
			return nil, storage.Wrap(op, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap(op, err)
	}
	return out, nil
}

func (r *ResumeRepository) GetAll(ctx context.Context) ([]*types.Resume, error) {
	out, err := r.query(ctx, "get_all", `SELECT id, data FROM resumes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*types.Resume{}
	}
	return out, nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*types.Resume, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, storage.ResumeNotFound(id)
	}
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM resumes WHERE id = $1`, n).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ResumeNotFound(id)
		}
		return nil, storage.Wrap("get_by_id", err)
	}
	doc, err := storage.UnmarshalDocument(id, data)
	return doc, storage.Wrap("get_by_id", err)
}

func (r *ResumeRepository) GetByName(ctx context.Context, userName string) ([]*types.Resume, error) {
	out, err := r.query(ctx, "get_by_name", `SELECT id, data FROM resumes WHERE user_name = $1 ORDER BY id`, userName)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, storage.ResumeNotFound(userName)
	}
	return out, nil
}

func (r *ResumeRepository) GetByResumeName(ctx context.Context, name string) (*types.Resume, error) {
	out, err := r.query(ctx, "get_by_resume_name", `SELECT id, data FROM resumes WHERE name = $1 ORDER BY id LIMIT 1`, name)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, storage.ResumeNotFound(name)
	}
	return out[0], nil
}

func (r *ResumeRepository) Create(ctx context.Context, doc *types.Resume) (string, error) {
	data, err := storage.MarshalDocument(doc)
	if err != nil {
		return "", storage.Wrap("create", err)
	}
	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO resumes (name, user_name, data)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		doc.Name, doc.BasicInfo.Name, data,
	).Scan(&id)
	if err != nil {
		return "", storage.Wrap("create", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (r *ResumeRepository) Update(ctx context.Context, id string, doc *types.Resume) (bool, error) {
	n, ok := parseID(id)
	if !ok {
		return false, nil
	}
	data, err := storage.MarshalDocument(doc)
	if err != nil {
		return false, storage.Wrap("update", err)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE resumes SET name = $1, user_name = $2, data = $3 WHERE id = $4`,
		doc.Name, doc.BasicInfo.Name, data, n,
	)
	if err != nil {
		return false, storage.Wrap("update", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, ok := parseID(id)
	if !ok {
		return false, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, n)
	if err != nil {
		return false, storage.Wrap("delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

// PDFCacheRepository implements storage.PDFCacheRepository.
type PDFCacheRepository struct {
	pool *pgxpool.Pool
}

func (c *PDFCacheRepository) Get(ctx context.Context, key storage.CacheKey, hash string) (string, bool, error) {
	var storedHash, path string
	err := c.pool.QueryRow(ctx,
		`SELECT content_hash, file_path FROM pdf_cache
		 WHERE resume_id = $1 AND template = $2 AND section_order = $3`,
		key.ResumeID, key.Template, key.Order,
	).Scan(&storedHash, &path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, storage.Wrap("cache_get", err)
	}
	if storedHash != hash {
		return "", false, nil
	}
	return path, true, nil
}

func (c *PDFCacheRepository) Set(ctx context.Context, key storage.CacheKey, hash, path string) error {
	_, err := c.pool.Exec(ctx,
		`INSERT INTO pdf_cache (resume_id, template, section_order, content_hash, file_path)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id, template, section_order)
		 DO UPDATE SET content_hash = $4, file_path = $5, created_at = NOW()`,
		key.ResumeID, key.Template, key.Order, hash, path,
	)
	return storage.Wrap("cache_set", err)
}

func (c *PDFCacheRepository) Clear(ctx context.Context, resumeID string) error {
	var err error
	if resumeID == "" {
		_, err = c.pool.Exec(ctx, `DELETE FROM pdf_cache`)
	} else {
		_, err = c.pool.Exec(ctx, `DELETE FROM pdf_cache WHERE resume_id = $1`, resumeID)
	}
	return storage.Wrap("cache_clear", err)
}
