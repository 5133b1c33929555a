package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultMaxFileSize   = 100 * 1024 * 1024 // 100MiB per file
	defaultMaxBatchFiles = 500

	defaultPageSize = 20
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// metadataStore abstracts the persistence layer for file records.
type metadataStore interface {
	ReserveSerials(ctx context.Context, n int) (int64, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	FindBySerial(ctx context.Context, serial int64) (Record, error)
	FindByName(ctx context.Context, name string) (Record, error)
	ListPage(ctx context.Context, page, pageSize int) ([]Record, int64, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// BlobStore abstracts durable byte storage addressed by path.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
}

// Service orchestrates blob and metadata storage for uploaded files.
type Service struct {
	repo          metadataStore
	blobs         BlobStore
	maxFileSize   int64
	maxBatchFiles int
}

// NewService constructs a file service.
func NewService(repo metadataStore, blobs BlobStore) *Service {
	return &Service{
		repo:          repo,
		blobs:         blobs,
		maxFileSize:   defaultMaxFileSize,
		maxBatchFiles: defaultMaxBatchFiles,
	}
}

// SetLimits overrides the per-file size ceiling and batch entry limit.
func (s *Service) SetLimits(maxFileSize int64, maxBatchFiles int) {
	if maxFileSize > 0 {
		s.maxFileSize = maxFileSize
	}
	if maxBatchFiles > 0 {
		s.maxBatchFiles = maxBatchFiles
	}
}

// Upload stores a single file: the blob is written first, the metadata
// record only after the blob write succeeded. A metadata failure leaves the
// blob orphaned; a reconciliation sweep is deliberately out of scope.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader) (Record, error) {
	if fh == nil {
		return Record{}, ErrNoFile
	}

	serial, err := s.repo.ReserveSerials(ctx, 1)
	if err != nil {
		return Record{}, err
	}

	return s.storeOne(ctx, fh, serial)
}

// UploadBatch stores up to maxBatchFiles files, assigning each a serial
// number from one atomically reserved consecutive block. Failures are
// per-file: a file that cannot be stored is reported in the failure list
// and the rest of the batch proceeds.
func (s *Service) UploadBatch(ctx context.Context, fhs []*multipart.FileHeader) ([]Record, []BatchFailure, error) {
	if len(fhs) == 0 {
		return nil, nil, ErrNoFile
	}
	if len(fhs) > s.maxBatchFiles {
		return nil, nil, ErrTooManyFiles
	}

	first, err := s.repo.ReserveSerials(ctx, len(fhs))
	if err != nil {
		return nil, nil, err
	}

	var (
		stored   []Record
		failures []BatchFailure
	)
	for i, fh := range fhs {
		rec, err := s.storeOne(ctx, fh, first+int64(i))
		if err != nil {
			failures = append(failures, BatchFailure{
				FileName: DecodeUploadFilename(fh.Filename),
				Reason:   err.Error(),
			})
			continue
		}
		stored = append(stored, rec)
	}

	return stored, failures, nil
}

func (s *Service) storeOne(ctx context.Context, fh *multipart.FileHeader, serial int64) (Record, error) {
	if fh.Size > s.maxFileSize {
		return Record{}, ErrFileTooLarge
	}

	name := DecodeUploadFilename(fh.Filename)
	contentType := detectContentType(fh)

	src, err := fh.Open()
	if err != nil {
		return Record{}, fmt.Errorf("open upload file: %w", err)
	}
	defer src.Close()

	path, err := s.blobs.Save(ctx, name, src, fh.Size, contentType)
	if err != nil {
		return Record{}, err
	}

	stored, err := s.repo.Insert(ctx, Record{
		SerialNumber: serial,
		FileName:     name,
		FilePath:     path,
		SizeBytes:    fh.Size,
		MimeType:     contentType,
	})
	if err != nil {
		return Record{}, err
	}
	return stored, nil
}

// List returns one page of records ordered by upload time descending.
// Invalid page numbers fall back to the first page; pageSize defaults to 20.
func (s *Service) List(ctx context.Context, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	records, total, err := s.repo.ListPage(ctx, page, pageSize)
	if err != nil {
		return Page{}, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return Page{
		Records:    records,
		PageNumber: page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// ParseIdentifier resolves the polymorphic download/delete parameter:
// an all-digits value is a serial number, anything else a file name.
func ParseIdentifier(raw string) Identifier {
	if digitsOnly.MatchString(raw) {
		if serial, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Identifier{Serial: serial, BySerial: true}
		}
	}
	return Identifier{Name: raw}
}

// Download resolves the identifier and returns the record together with a
// reader over the blob. ErrFileNotFound means no record matched;
// ErrFileGone means the record exists but the blob is missing.
func (s *Service) Download(ctx context.Context, id Identifier) (Record, io.ReadCloser, error) {
	rec, err := s.resolve(ctx, id)
	if err != nil {
		return Record{}, nil, err
	}

	exists, err := s.blobs.Exists(ctx, rec.FilePath)
	if err != nil {
		return Record{}, nil, err
	}
	if !exists {
		return Record{}, nil, ErrFileGone
	}

	reader, err := s.blobs.Open(ctx, rec.FilePath)
	if err != nil {
		return Record{}, nil, err
	}
	return rec, reader, nil
}

// Delete removes the blob (skipping it when already gone) and then the
// metadata record. Records whose blob vanished out-of-band are still
// cleaned up.
func (s *Service) Delete(ctx context.Context, id Identifier) error {
	rec, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.blobs.Exists(ctx, rec.FilePath)
	if err != nil {
		return err
	}
	if exists {
		if err := s.blobs.Remove(ctx, rec.FilePath); err != nil && !errors.Is(err, ErrFileGone) {
			return err
		}
	}

	return s.repo.DeleteByID(ctx, rec.ID)
}

func (s *Service) resolve(ctx context.Context, id Identifier) (Record, error) {
	if id.BySerial {
		return s.repo.FindBySerial(ctx, id.Serial)
	}
	return s.repo.FindByName(ctx, id.Name)
}

func detectContentType(fh *multipart.FileHeader) string {
	if fh == nil {
		return "application/octet-stream"
	}
	if contentType := fh.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
