package api

import (
	"errors"        // Error inspection
	"fmt"           // File name formatting
	"net/http"      // Multipart sentinel errors
	"os"            // Directory creation
	"path/filepath" // Path joining
	"regexp"        // File name sanitising
	"strings"       // String manipulation
	"time"          // Timestamp prefix

	"catalog_shop/internal/metrics" // Upload counters

	"github.com/gin-gonic/gin" // Gin web framework
)

// UploadURLPrefix is the public path uploaded images are served from
const UploadURLPrefix = "/uploads/"

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9.]+`)

// sanitizeFileName lower-cases name and replaces unsafe runs with a dash
func sanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/")) // Drop any client-side directories
	safe := unsafeFileChars.ReplaceAllString(strings.ToLower(base), "-")
	safe = strings.Trim(safe, ".-")
	if safe == "" {
		safe = "image"
	}
	return safe
}

// saveUpload stores the optional "image" field under dir and returns its
// public path. A nil path means no file was sent.
func saveUpload(c *gin.Context, dir string) (*string, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil // Optional field
	} else if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if file.Size == 0 {
		return nil, nil // Empty file input
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFileName(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	metrics.UploadedBytesTotal.Add(float64(file.Size))
	path := UploadURLPrefix + name
	return &path, nil
}

// removeUpload deletes a stored upload by its public path
func removeUpload(dir string, path *string) {
	if path == nil {
		return
	}
	_ = os.Remove(filepath.Join(dir, strings.TrimPrefix(*path, UploadURLPrefix)))
}
