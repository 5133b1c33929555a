package file

import (
	"time"

	"github.com/google/uuid"
)

// Record describes one stored file. SerialNumber is the human-facing
// monotonic key; ID is the internal storage key.
type Record struct {
	ID           uuid.UUID `json:"id"`
	SerialNumber int64     `json:"serialNumber"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	SizeBytes    int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	UploadTime   time.Time `json:"uploadTime"`
}

// Page bundles one page of records with pagination totals.
type Page struct {
	Records    []Record
	PageNumber int
	PageSize   int
	Total      int64
	TotalPages int64
}

// BatchFailure reports a single file that could not be stored during a
// batch upload.
type BatchFailure struct {
	FileName string `json:"name"`
	Reason   string `json:"reason"`
}

// Identifier is the download/delete path parameter resolved at the HTTP
// boundary: an all-digits value addresses a serial number, anything else
// addresses a file name.
type Identifier struct {
	Serial   int64
	Name     string
	BySerial bool
}
