package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages image metadata persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the library database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get fetches a record by absolute file path. Returns (nil, nil) when no
// record exists.
func (s *Store) Get(ctx context.Context, path string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM images WHERE file_path = ?`, path)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// Put inserts or updates the record keyed by its file path. The record's ID
// and AddedAt are refreshed from the stored row.
func (s *Store) Put(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(record.Path) == "" {
		return errors.New("record path is empty")
	}
	if record.AddedAt.IsZero() {
		record.AddedAt = time.Now().UTC()
	}

	exifJSON, err := marshalMap(record.EXIF)
	if err != nil {
		return fmt.Errorf("marshal exif: %w", err)
	}
	tagsJSON, err := marshalList(record.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	keywordsJSON, err := marshalList(record.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	categoriesJSON, err := marshalList(record.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	embeddingJSON, err := marshalEmbedding(record.Embedding)
	if err != nil {
		return fmt.Errorf("marshal embedding: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO images (
            file_path, filename, file_size, width, height, format,
            created_at, modified_at, exif_json, tags_json, keywords_json,
            categories_json, rating, description, classification_json,
            embedding_json, ai_raw, ai_provider, ai_model, ai_timestamp,
            cached, cache_date, added_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(file_path) DO UPDATE SET
            filename = excluded.filename,
            file_size = excluded.file_size,
            width = excluded.width,
            height = excluded.height,
            format = excluded.format,
            created_at = excluded.created_at,
            modified_at = excluded.modified_at,
            exif_json = excluded.exif_json,
            tags_json = excluded.tags_json,
            keywords_json = excluded.keywords_json,
            categories_json = excluded.categories_json,
            rating = excluded.rating,
            description = excluded.description,
            classification_json = excluded.classification_json,
            embedding_json = excluded.embedding_json,
            ai_raw = excluded.ai_raw,
            ai_provider = excluded.ai_provider,
            ai_model = excluded.ai_model,
            ai_timestamp = excluded.ai_timestamp,
            cached = excluded.cached,
            cache_date = excluded.cache_date`,
		record.Path,
		record.Filename,
		record.FileSize,
		record.Width,
		record.Height,
		record.Format,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.ModifiedAt.UTC().Format(time.RFC3339Nano),
		exifJSON,
		tagsJSON,
		keywordsJSON,
		categoriesJSON,
		record.Rating,
		record.Description,
		record.Classification,
		embeddingJSON,
		record.AIRaw,
		record.AIProvider,
		record.AIModel,
		record.AITimestamp,
		boolToInt(record.Cached),
		nullableTime(record.CacheDate),
		record.AddedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT id, added_at FROM images WHERE file_path = ?`, record.Path)
	var addedRaw string
	if err := row.Scan(&record.ID, &addedRaw); err != nil {
		return fmt.Errorf("refresh record id: %w", err)
	}
	if added, err := parseTimeString(addedRaw); err == nil {
		record.AddedAt = added
	}
	return nil
}

// List returns records ordered newest-first with optional pagination.
// A limit of 0 returns everything.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM images ORDER BY added_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Search returns records matching all criteria in the filter, ordered by
// rating then recency.
func (s *Store) Search(ctx context.Context, filter SearchFilter) ([]*Record, error) {
	var conditions []string
	var args []any

	appendListMatches := func(column string, values []string) {
		for _, value := range values {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			conditions = append(conditions, column+" LIKE ?")
			args = append(args, `%"`+value+`"%`)
		}
	}
	appendListMatches("tags_json", filter.Tags)
	appendListMatches("keywords_json", filter.Keywords)
	appendListMatches("categories_json", filter.Categories)

	if filter.MinRating != nil {
		conditions = append(conditions, "rating >= ?")
		args = append(args, *filter.MinRating)
	}

	query := `SELECT ` + recordColumns + ` FROM images`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY rating DESC, added_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Delete removes a record by file path.
func (s *Store) Delete(ctx context.Context, path string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE file_path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats aggregates library-wide counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{FormatCounts: map[string]int{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&stats.TotalImages); err != nil {
		return stats, fmt.Errorf("count images: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE cached = 1`).Scan(&stats.CachedImages); err != nil {
		return stats, fmt.Errorf("count cached: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `SELECT AVG(rating) FROM images WHERE rating > 0`).Scan(&avg); err != nil {
		return stats, fmt.Errorf("average rating: %w", err)
	}
	if avg.Valid {
		stats.AverageRating = avg.Float64
	}

	rows, err := s.db.QueryContext(ctx, `SELECT format, COUNT(*) FROM images GROUP BY format`)
	if err != nil {
		return stats, fmt.Errorf("format counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var format string
		var count int
		if err := rows.Scan(&format, &count); err != nil {
			return stats, err
		}
		stats.FormatCounts[format] = count
	}
	return stats, rows.Err()
}

// ClassificationCounts tallies stored classification blobs by the provider
// recorded in their api_used field.
func (s *Store) ClassificationCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT classification_json FROM images WHERE classification_json != ''`)
	if err != nil {
		return nil, fmt.Errorf("classification counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var payload struct {
			APIUsed string `json:"api_used"`
		}
		if err := json.Unmarshal([]byte(blob), &payload); err != nil {
			continue
		}
		key := payload.APIUsed
		if key == "" {
			key = "unknown"
		}
		counts[key]++
	}
	return counts, rows.Err()
}

// CleanupCache clears the cache flag for records whose classification is
// older than cutoff, forcing reclassification on next access.
func (s *Store) CleanupCache(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE images SET cached = 0, cache_date = NULL WHERE cache_date IS NOT NULL AND cache_date < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("cleanup cache: %w", err)
	}
	return res.RowsAffected()
}

const recordColumns = "id, file_path, filename, file_size, width, height, format, created_at, modified_at, exif_json, tags_json, keywords_json, categories_json, rating, description, classification_json, embedding_json, ai_raw, ai_provider, ai_model, ai_timestamp, cached, cache_date, added_at"

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id             int64
		path           string
		filename       string
		fileSize       int64
		width          int
		height         int
		format         string
		createdRaw     string
		modifiedRaw    string
		exifJSON       sql.NullString
		tagsJSON       sql.NullString
		keywordsJSON   sql.NullString
		categoriesJSON sql.NullString
		rating         int
		description    sql.NullString
		classification sql.NullString
		embeddingJSON  sql.NullString
		aiRaw          sql.NullString
		aiProvider     sql.NullString
		aiModel        sql.NullString
		aiTimestamp    sql.NullString
		cached         sql.NullInt64
		cacheDateRaw   sql.NullString
		addedRaw       string
	)

	if err := scanner.Scan(
		&id, &path, &filename, &fileSize, &width, &height, &format,
		&createdRaw, &modifiedRaw, &exifJSON, &tagsJSON, &keywordsJSON,
		&categoriesJSON, &rating, &description, &classification,
		&embeddingJSON, &aiRaw, &aiProvider, &aiModel, &aiTimestamp,
		&cached, &cacheDateRaw, &addedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:             id,
		Path:           path,
		Filename:       filename,
		FileSize:       fileSize,
		Width:          width,
		Height:         height,
		Format:         format,
		Rating:         rating,
		Description:    description.String,
		Classification: classification.String,
		AIRaw:          aiRaw.String,
		AIProvider:     aiProvider.String,
		AIModel:        aiModel.String,
		AITimestamp:    aiTimestamp.String,
		Cached:         cached.Valid && cached.Int64 != 0,
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		record.CreatedAt = created
	}
	if modified, err := parseTimeString(modifiedRaw); err == nil {
		record.ModifiedAt = modified
	}
	if added, err := parseTimeString(addedRaw); err == nil {
		record.AddedAt = added
	}
	if cacheDateRaw.Valid {
		if cacheDate, err := parseTimeString(cacheDateRaw.String); err == nil {
			record.CacheDate = &cacheDate
		}
	}

	if exifJSON.Valid && exifJSON.String != "" {
		_ = json.Unmarshal([]byte(exifJSON.String), &record.EXIF)
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		_ = json.Unmarshal([]byte(tagsJSON.String), &record.Tags)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		_ = json.Unmarshal([]byte(keywordsJSON.String), &record.Keywords)
	}
	if categoriesJSON.Valid && categoriesJSON.String != "" {
		_ = json.Unmarshal([]byte(categoriesJSON.String), &record.Categories)
	}
	if embeddingJSON.Valid && embeddingJSON.String != "" {
		_ = json.Unmarshal([]byte(embeddingJSON.String), &record.Embedding)
	}

	// Repair the cache invariant if a hand-edited row violates it.
	if record.Cached && record.CacheDate == nil {
		record.Cached = false
	}
	return record, nil
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	return string(encoded), err
}

func marshalMap(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	encoded, err := json.Marshal(m)
	return string(encoded), err
}

func marshalEmbedding(values []float64) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
