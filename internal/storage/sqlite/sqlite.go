// Package sqlite is the default embedded backend, built on gorm with the
// SQLite driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/achint227/Resume-Generator/internal/storage"
	"github.com/achint227/Resume-Generator/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type resumeRow struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"index"`
	UserName string `gorm:"column:user_name;index"`
	Data     string `gorm:"not null"`
}

func (resumeRow) TableName() string { return "resumes" }

type cacheRow struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	ResumeID     string    `gorm:"column:resume_id;not null;uniqueIndex:idx_pdf_cache_key"`
	Template     string    `gorm:"not null;uniqueIndex:idx_pdf_cache_key"`
	SectionOrder string    `gorm:"column:section_order;not null;uniqueIndex:idx_pdf_cache_key"`
	ContentHash  string    `gorm:"column:content_hash;not null"`
	FilePath     string    `gorm:"column:file_path;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (cacheRow) TableName() string { return "pdf_cache" }

// Store owns one SQLite database holding both tables.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if path == MemoryPath {
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&resumeRow{}, &cacheRow{}); err != nil {
		return storage.Wrap("migrate", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Resumes returns the résumé repository backed by s.
func (s *Store) Resumes() *ResumeRepository {
	return &ResumeRepository{db: s.db}
}

// Cache returns the PDF cache repository backed by s.
func (s *Store) Cache() *PDFCacheRepository {
	return &PDFCacheRepository{db: s.db}
}

// ResumeRepository implements storage.ResumeRepository.
type ResumeRepository struct {
	db *gorm.DB
}

func parseID(id string) (uint64, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	return n, err == nil
}

func decodeRow(row resumeRow) (*types.Resume, error) {
	return storage.UnmarshalDocument(strconv.FormatUint(row.ID, 10), []byte(row.Data))
}

func decodeRows(op string, rows []resumeRow) ([]*types.Resume, error) {
	out := make([]*types.Resume, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeRow(row)
		if err != nil {
			return nil, storage.Wrap(op, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *ResumeRepository) GetAll(ctx context.Context) ([]*types.Resume, error) {
	var rows []resumeRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, storage.Wrap("get_all", err)
	}
	return decodeRows("get_all", rows)
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*types.Resume, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, storage.ResumeNotFound(id)
	}
	var row resumeRow
	if err := r.db.WithContext(ctx).First(&row, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ResumeNotFound(id)
		}
		return nil, storage.Wrap("get_by_id", err)
	}
	doc, err := decodeRow(row)
	return doc, storage.Wrap("get_by_id", err)
}

func (r *ResumeRepository) GetByName(ctx context.Context, userName string) ([]*types.Resume, error) {
	var rows []resumeRow
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).Order("id").Find(&rows).Error; err != nil {
		return nil, storage.Wrap("get_by_name", err)
	}
	if len(rows) == 0 {
		return nil, storage.ResumeNotFound(userName)
	}
	return decodeRows("get_by_name", rows)
}

func (r *ResumeRepository) GetByResumeName(ctx context.Context, name string) (*types.Resume, error) {
	var row resumeRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ResumeNotFound(name)
		}
		return nil, storage.Wrap("get_by_resume_name", err)
	}
	doc, err := decodeRow(row)
	return doc, storage.Wrap("get_by_resume_name", err)
}

func (r *ResumeRepository) Create(ctx context.Context, doc *types.Resume) (string, error) {
	data, err := storage.MarshalDocument(doc)
	if err != nil {
		return "", storage.Wrap("create", err)
	}
	row := resumeRow{Name: doc.Name, UserName: doc.BasicInfo.Name, Data: string(data)}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", storage.Wrap("create", err)
	}
	return strconv.FormatUint(row.ID, 10), nil
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
	res := r.db.WithContext(ctx).Model(&resumeRow{}).Where("id = ?", n).Updates(map[string]any{
		"name":      doc.Name,
		"user_name": doc.BasicInfo.Name,
		"data":      string(data),
	})
	if res.Error != nil {
		return false, storage.Wrap("update", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&resumeRow{}, n)
	if res.Error != nil {
		return false, storage.Wrap("delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// PDFCacheRepository implements storage.PDFCacheRepository.
type PDFCacheRepository struct {
	db *gorm.DB
}

func (c *PDFCacheRepository) Get(ctx context.Context, key storage.CacheKey, hash string) (string, bool, error) {
	var row cacheRow
	err := c.db.WithContext(ctx).
		Where("resume_id = ? AND template = ? AND section_order = ?", key.ResumeID, key.Template, key.Order).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.Wrap("cache_get", err)
	}
	if row.ContentHash != hash {
		return "", false, nil
	}
	return row.FilePath, true, nil
}

func (c *PDFCacheRepository) Set(ctx context.Context, key storage.CacheKey, hash, path string) error {
	row := cacheRow{
		ResumeID:     key.ResumeID,
		Template:     key.Template,
		SectionOrder: key.Order,
		ContentHash:  hash,
		FilePath:     path,
		CreatedAt:    time.Now().UTC(),
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resume_id"}, {Name: "template"}, {Name: "section_order"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_hash", "file_path", "created_at"}),
	}).Create(&row).Error
	return storage.Wrap("cache_set", err)
}

func (c *PDFCacheRepository) Clear(ctx context.Context, resumeID string) error {
	q := c.db.WithContext(ctx)
	if resumeID == "" {
		q = q.Where("1 = 1")
	} else {
		q = q.Where("resume_id = ?", resumeID)
	}
	return storage.Wrap("cache_clear", q.Delete(&cacheRow{}).Error)
}
