package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Category    Category       `json:"category,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentIdentity is what a caller knows about a document at classification time.
type DocumentIdentity struct {
	FileName string `json:"file_name"`
	Content  string `json:"content,omitempty"`
}

// CacheKey is a stable digest of the (file name, content) pair.
func (d DocumentIdentity) CacheKey() string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(len(d.FileName))))
	h.Write([]byte{':'})
	h.Write([]byte(d.FileName))
	h.Write([]byte(d.Content))
	return hex.EncodeToString(h.Sum(nil))
}
