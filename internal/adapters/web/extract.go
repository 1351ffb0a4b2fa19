package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxUploadSize bounds a single extraction image at 10 MB.
const maxUploadSize = 10 << 20

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// readUploadedImage parses the multipart "file" field, validates its MIME
// type by sniffing content, and returns the bytes with the detected type.
func readUploadedImage(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return nil, "", false
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return nil, "", false
	}

	f, err := files[0].Open()
	if err != nil {
		writeError(w, r, "failed to open uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return nil, "", false
	}
	defer f.Close()

	header := make([]byte, 512)
	n, _ := f.Read(header)
	mimeType := strings.ToLower(strings.TrimSpace(http.DetectContentType(header[:n])))
	if !allowedMIMETypes[mimeType] {
		writeError(w, r, fmt.Sprintf("file type %q not allowed; accepted: jpeg, png, webp", mimeType),
			"UNSUPPORTED_TYPE", http.StatusUnsupportedMediaType)
		return nil, "", false
	}

	if seeker, ok := f.(io.ReadSeeker); ok {
		seeker.Seek(0, io.SeekStart)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, r, "failed to read uploaded file", "INTERNAL_ERROR", http.StatusInternalServerError)
		return nil, "", false
	}
	return data, mimeType, true
}

// extractReceipt handles POST /api/extract/receipt. Multipart form with a
// single "file" image; the extracted expense is recorded for the tenant.
func (h *Handler) extractReceipt(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	data, mimeType, ok := readUploadedImage(w, r)
	if !ok {
		return
	}

	claims := authFromContext(r.Context())
	result, err := h.svc.ExtractReceipt(r.Context(), companyID, claims.UserID, mimeType, data)
	if err != nil {
		writeError(w, r, "could not process request", "ASSISTANT_ERROR", http.StatusBadGateway)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// extractEmployees handles POST /api/extract/employees. Multipart form with
// a single "file" image of an employee roster; every extracted row is
// persisted as an employee.
func (h *Handler) extractEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	data, mimeType, ok := readUploadedImage(w, r)
	if !ok {
		return
	}

	claims := authFromContext(r.Context())
	result, err := h.svc.ImportEmployees(r.Context(), companyID, claims.UserID, mimeType, data)
	if err != nil {
		writeError(w, r, "could not process request", "ASSISTANT_ERROR", http.StatusBadGateway)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}
