package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	"github.com/mejbaurrahman/JHF/internal/app/features/upload"
	"github.com/mejbaurrahman/JHF/internal/app/system/respond"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"github.com/mejbaurrahman/JHF/internal/testutil"
	"go.uber.org/zap"
)

type part struct {
	field, filename, ctype string
	size                   int
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		hdr.Set("Content-Type", p.ctype)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(bytes.Repeat([]byte{0x89}, p.size))
	}
	mw.Close()
	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.WithUser(req, testutil.MemberUser())
}

func newHandler(t *testing.T, maxBytes int64) (*upload.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := uploads.NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	return upload.NewHandler(store, maxBytes, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop()), dir
}

func TestUpload_Success(t *testing.T) {
	h, dir := newHandler(t, 0)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, part{"image", "Photo.PNG", "image/png", 1024}))
	if rec.Code != http.StatusOK {
		t.Fatalf("%d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Message  string `json:"message"`
		ImageURL string `json:"imageUrl"`
		Filename string `json:"filename"`
	}
	testutil.DecodeJSON(t, rec, &out)
	if !strings.HasPrefix(out.Filename, "image-") || !strings.HasSuffix(out.Filename, ".png") {
		t.Errorf("filename = %q", out.Filename)
	}
	if out.ImageURL != "/uploads/"+out.Filename {
		t.Errorf("imageUrl = %q", out.ImageURL)
	}
	if fi, err := os.Stat(filepath.Join(dir, out.Filename)); err != nil || fi.Size() != 1024 {
		t.Errorf("stored file: %v %v", fi, err)
	}
}

func TestUpload_Rejects(t *testing.T) {
	h, _ := newHandler(t, 2048)
	tests := []struct {
		name  string
		parts []part
		want  string
	}{
		{"no file", nil, "No file uploaded"},
		{"wrong field", []part{{"file", "a.png", "image/png", 10}}, "No file uploaded"},
		{"bad extension", []part{{"image", "a.pdf", "image/png", 10}}, "Images only! Allowed formats: jpg, jpeg, png, gif, webp"},
		{"bad mime", []part{{"image", "a.png", "application/pdf", 10}}, "Images only! Allowed formats: jpg, jpeg, png, gif, webp"},
		{"too large", []part{{"image", "a.png", "image/png", 4096}}, "File too large"},
		{"two files", []part{{"image", "a.png", "image/png", 10}, {"image", "b.png", "image/png", 10}}, "Upload one image at a time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleUpload(rec, multipartRequest(t, tt.parts...))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var body respond.MessageBody
			testutil.DecodeJSON(t, rec, &body)
			if body.Message != tt.want {
				t.Errorf("message = %q, want %q", body.Message, tt.want)
			}
		})
	}
}

// Content bytes are not sniffed: a renamed executable declared as PNG passes.
func TestUpload_NoSniffing(t *testing.T) {
	h, _ := newHandler(t, 0)
	rec := httptest.NewRecorder()
	h.HandleUpload(rec, multipartRequest(t, part{"image", "setup.png", "image/png", 64}))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestUpload_DefaultLimit(t *testing.T) {
	h, _ := newHandler(t, 0)
	tests := []struct {
		name string
		size int
		want int
	}{
		{"6 MB", 6 << 20, http.StatusBadRequest},
		{"just over 5 MB", 5<<20 + 10, http.StatusBadRequest},
		{"exactly 5 MB", 5 << 20, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleUpload(rec, multipartRequest(t, part{"image", "big.png", "image/png", tt.size}))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusBadRequest {
				var body respond.MessageBody
				testutil.DecodeJSON(t, rec, &body)
				if body.Message != "File too large" {
					t.Errorf("message = %q", body.Message)
				}
			}
		})
	}
}
