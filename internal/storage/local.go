// Package storage implements blob storage for uploaded files (resumes and
// profile images) on the local filesystem.
//
// The rest of the system only ever sees the reference path this package
// returns ("/uploads/<name>"); records store the reference string, never
// file contents. Swapping in S3 or similar later means reimplementing
// BlobStore and changing one line of wiring.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
)

// MaxUploadSize is the per-file size limit (5MB).
const MaxUploadSize = 5 << 20

// Kind selects the validation rules for an upload.
type Kind int

const (
	// KindResume accepts pdf, doc, and docx.
	KindResume Kind = iota
	// KindImage accepts jpeg, jpg, png, and gif.
	KindImage
)

var allowedExtensions = map[Kind]map[string]bool{
	KindResume: {".pdf": true, ".doc": true, ".docx": true},
	KindImage:  {".jpeg": true, ".jpg": true, ".png": true, ".gif": true},
}

// BlobStore accepts uploads and returns stable reference paths.
type BlobStore interface {
	Save(kind Kind, filename string, size int64, content io.Reader) (string, error)
}

// LocalStore writes uploads into a directory on disk. Files are served
// back under /uploads/ by the HTTP server.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

var _ BlobStore = (*LocalStore)(nil)

// Save validates the upload against the kind's rules and writes it to
// disk under a collision-free name. Returns the reference path to record.
//
// Validation failures come back as storage errors (mapped to 400), not
// internal errors: a wrong file type is the client's fault.
func (s *LocalStore) Save(kind Kind, filename string, size int64, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[kind][ext] {
		return "", apperror.StorageRejected(rejectMessage(kind))
	}
	if size > MaxUploadSize {
		return "", apperror.StorageRejected("file too large, maximum size is 5MB")
	}

	// xid-based names are unique and URL-safe; keeping the original
	// extension lets the file server pick the right content type.
	name := xid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: creating %s: %w", path, err)
	}
	defer f.Close()

	// LimitReader is a second line of defence: even if the declared size
	// lied, we never write more than the limit plus one byte.
	written, err := io.Copy(f, io.LimitReader(content, MaxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: writing %s: %w", path, err)
	}
	if written > MaxUploadSize {
		os.Remove(path)
		return "", apperror.StorageRejected("file too large, maximum size is 5MB")
	}

	return "/uploads/" + name, nil
}

// Dir returns the directory uploads are written to, for the static file
// route in the server.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Open reads a stored blob back by its reference path.
func (s *LocalStore) Open(ref string) (io.ReadCloser, error) {
	name := strings.TrimPrefix(ref, "/uploads/")
	// The reference is stored data, but reject traversal anyway.
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return nil, fmt.Errorf("storage: invalid blob reference %q", ref)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("storage: opening blob %q: %w", ref, err)
	}
	return f, nil
}

func rejectMessage(kind Kind) string {
	if kind == KindImage {
		return "only JPEG, JPG, PNG, and GIF files are allowed for profile images"
	}
	return "only PDF, DOC, and DOCX files are allowed for resumes"
}
