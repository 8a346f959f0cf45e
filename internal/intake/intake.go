// Package intake decides which uploaded file, if any, enters the pipeline.
package intake

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

const (
	MaxFileSize = 20 * 1024 * 1024
	PDFMimeType = "application/pdf"
)

type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

type Reason string

const (
	ReasonNoFile   Reason = "no_file"
	ReasonFileType Reason = "file_type"
	ReasonTooLarge Reason = "too_large"
)

type RejectionError struct {
	Reason Reason
	File   string
	Detail string
}

func (e *RejectionError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("file rejected (%s): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("file %q rejected (%s): %s", e.File, e.Reason, e.Detail)
}

// Accept returns the first file if it is a PDF within MaxFileSize. Any
// further files are ignored.
func Accept(files []*File) (*File, error) {
	if len(files) == 0 || files[0] == nil {
		return nil, &RejectionError{Reason: ReasonNoFile, Detail: "no file was provided"}
	}
	f := files[0]

	size := f.Size
	if n := int64(len(f.Data)); n > size {
		size = n
	}
	if size > MaxFileSize {
		return nil, &RejectionError{
			Reason: ReasonTooLarge,
			File:   f.Name,
			Detail: fmt.Sprintf("file is %d bytes, the limit is %d", size, MaxFileSize),
		}
	}
	if size == 0 {
		return nil, &RejectionError{Reason: ReasonNoFile, File: f.Name, Detail: "file is empty"}
	}

	ct := mediaType(f.ContentType, f.Data)
	if ct != PDFMimeType {
		return nil, &RejectionError{
			Reason: ReasonFileType,
			File:   f.Name,
			Detail: fmt.Sprintf("content type %q is not %s", ct, PDFMimeType),
		}
	}

	accepted := *f
	accepted.ContentType = PDFMimeType
	accepted.Size = size
	return &accepted, nil
}

// mediaType strips parameters from the declared type, sniffing the content
// when nothing was declared.
func mediaType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		n := len(data)
		if n > 512 {
			n = 512
		}
		declared = http.DetectContentType(data[:n])
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared)
	}
	return mt
}

// FromFileHeader reads a multipart part, refusing to buffer more than one
// byte past MaxFileSize.
func FromFileHeader(fh *multipart.FileHeader) (*File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	size := fh.Size
	if n := int64(len(data)); n > size {
		size = n
	}
	return &File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        size,
		Data:        data,
	}, nil
}

// Selector tracks the current selection and reports every change to its
// callback. Rejected files never reach the callback.
type Selector struct {
	mu       sync.Mutex
	current  *File
	onSelect func(*File)
}

func NewSelector(onSelect func(*File)) *Selector {
	return &Selector{onSelect: onSelect}
}

func (s *Selector) Offer(files []*File) (*File, error) {
	f, err := Accept(files)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = f
	s.mu.Unlock()
	s.notify(f)
	return f, nil
}

func (s *Selector) Clear() {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()
	if had {
		s.notify(nil)
	}
}

func (s *Selector) Current() *File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Selector) notify(f *File) {
	if s.onSelect != nil {
		s.onSelect(f)
	}
}
