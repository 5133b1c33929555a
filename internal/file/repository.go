package file

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to file metadata storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new file repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReserveSerials atomically claims n consecutive serial numbers and returns
// the first of the block. Concurrent callers never receive overlapping
// blocks, so serial uniqueness holds without a read-then-write window.
func (r *Repository) ReserveSerials(ctx context.Context, n int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `UPDATE file_serials SET value = value + $1 WHERE id = 1 RETURNING value;`

	var last int64
	if err := r.pool.QueryRow(ctx, query, n).Scan(&last); err != nil {
		return 0, fmt.Errorf("reserve serials: %w", err)
	}
	return last - int64(n) + 1, nil
}

// Insert persists metadata for a new file.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO files (serial_number, file_name, file_path, size_bytes, mime_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, serial_number, file_name, file_path, size_bytes, mime_type, upload_time;`

	row := r.pool.QueryRow(ctx, query,
		rec.SerialNumber,
		rec.FileName,
		rec.FilePath,
		rec.SizeBytes,
		rec.MimeType,
	)

	var stored Record
	if err := row.Scan(&stored.ID, &stored.SerialNumber, &stored.FileName, &stored.FilePath, &stored.SizeBytes, &stored.MimeType, &stored.UploadTime); err != nil {
		return Record{}, fmt.Errorf("insert file metadata: %w", err)
	}
	return stored, nil
}

// FindBySerial fetches the record with the given serial number.
func (r *Repository) FindBySerial(ctx context.Context, serial int64) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, serial_number, file_name, file_path, size_bytes, mime_type, upload_time
FROM files
WHERE serial_number = $1;`

	return r.scanOne(r.pool.QueryRow(ctx, query, serial))
}

// FindByName fetches one record with the given file name. Names are not
// unique; the record with the lowest serial number wins.
func (r *Repository) FindByName(ctx context.Context, name string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, serial_number, file_name, file_path, size_bytes, mime_type, upload_time
FROM files
WHERE file_name = $1
ORDER BY serial_number
LIMIT 1;`

	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

// ListPage returns one page of records ordered by upload time descending,
// plus the total record count.
func (r *Repository) ListPage(ctx context.Context, page, pageSize int) ([]Record, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM files;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count files: %w", err)
	}

	query := `
SELECT id, serial_number, file_name, file_path, size_bytes, mime_type, upload_time
FROM files
ORDER BY upload_time DESC, serial_number DESC
OFFSET $1 LIMIT $2;`

	offset := (page - 1) * pageSize
	rows, err := r.pool.Query(ctx, query, offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.SerialNumber, &rec.FileName, &rec.FilePath, &rec.SizeBytes, &rec.MimeType, &rec.UploadTime); err != nil {
			return nil, 0, fmt.Errorf("scan file metadata: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate files: %w", err)
	}
	return records, total, nil
}

// DeleteByID removes the record with the given internal key.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFileNotFound
	}
	return nil
}

// DeleteBySerial removes the record with the given serial number.
func (r *Repository) DeleteBySerial(ctx context.Context, serial int64) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE serial_number = $1;`, serial)
	if err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.SerialNumber, &rec.FileName, &rec.FilePath, &rec.SizeBytes, &rec.MimeType, &rec.UploadTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrFileNotFound
		}
		return Record{}, fmt.Errorf("get file metadata: %w", err)
	}
	return rec, nil
}
