package intake

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfFile(name string, size int64) *File {
	return &File{Name: name, ContentType: PDFMimeType, Size: size, Data: []byte("%PDF-1.4\n")}
}

func TestAccept_Constraints(t *testing.T) {
	tests := []struct {
		name   string
		files  []*File
		reason Reason
	}{
		{name: "no files", files: nil, reason: ReasonNoFile},
		{name: "nil first file", files: []*File{nil, pdfFile("b.pdf", 10)}, reason: ReasonNoFile},
		{name: "one byte over limit", files: []*File{pdfFile("big.pdf", MaxFileSize+1)}, reason: ReasonTooLarge},
		{name: "word document", files: []*File{{Name: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 100, Data: []byte("PK")}}, reason: ReasonFileType},
		{name: "png image", files: []*File{{Name: "cv.png", ContentType: "image/png", Size: 100, Data: []byte("x")}}, reason: ReasonFileType},
		{name: "sniffed text", files: []*File{{Name: "cv", Size: 5, Data: []byte("hello")}}, reason: ReasonFileType},
		{name: "only first considered", files: []*File{{Name: "a.txt", ContentType: "text/plain", Size: 1, Data: []byte("a")}, pdfFile("b.pdf", 10)}, reason: ReasonFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Accept(tt.files)
			assert.Nil(t, f)
			var rej *RejectionError
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

func TestAccept_ValidPDF(t *testing.T) {
	f, err := Accept([]*File{pdfFile("cv.pdf", MaxFileSize), pdfFile("ignored.pdf", 1)})
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", f.Name)
	assert.Equal(t, int64(MaxFileSize), f.Size)
}

func TestAccept_NormalizesContentType(t *testing.T) {
	f, err := Accept([]*File{{Name: "cv.pdf", ContentType: "Application/PDF; charset=binary", Size: 9, Data: []byte("%PDF-1.4\n")}})
	require.NoError(t, err)
	assert.Equal(t, PDFMimeType, f.ContentType)

	f, err = Accept([]*File{{Name: "cv.pdf", Size: 9, Data: []byte("%PDF-1.4\n")}})
	require.NoError(t, err)
	assert.Equal(t, PDFMimeType, f.ContentType)
}

func TestSelector_RejectedFilesNeverReachCallback(t *testing.T) {
	var seen []*File
	s := NewSelector(func(f *File) { seen = append(seen, f) })

	_, err := s.Offer([]*File{pdfFile("huge.pdf", MaxFileSize+1)})
	assert.Error(t, err)
	_, err = s.Offer([]*File{{Name: "a.jpg", ContentType: "image/jpeg", Size: 10, Data: []byte("x")}})
	assert.Error(t, err)
	assert.Empty(t, seen)
	assert.Nil(t, s.Current())

	f, err := s.Offer([]*File{pdfFile("cv.pdf", 1024)})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Same(t, f, seen[0])
	assert.Same(t, f, s.Current())

	s.Clear()
	require.Len(t, seen, 2)
	assert.Nil(t, seen[1])

	s.Clear()
	assert.Len(t, seen, 2, "clearing an empty selection is not a change")
}

func TestFromFileHeader(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="cv.pdf"`)
	h.Set("Content-Type", PDFMimeType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	fh := req.MultipartForm.File["file"][0]

	f, err := FromFileHeader(fh)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", f.Name)
	assert.Equal(t, PDFMimeType, f.ContentType)
	assert.Equal(t, int64(14), f.Size)
	assert.Equal(t, "%PDF-1.4 hello", string(f.Data))
}
