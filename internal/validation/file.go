package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrPlanTooLarge = errors.New("plan file is too large")
	ErrPlanType     = errors.New("plan must be a PNG, JPEG or WebP image or a PDF")
)

// planTypes maps a sniffed content type to the file extensions a plan of
// that type may carry. The first extension is the one it is stored under.
var planTypes = map[string][]string{
	"image/png":       {".png"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/webp":      {".webp"},
	"application/pdf": {".pdf"},
}

// ValidatePlan checks an uploaded house plan against maxSize and the
// accepted types. The content is sniffed; the client's Content-Type is
// ignored, and the filename extension has to agree with what was sniffed.
// It returns the extension to store the plan under.
func ValidatePlan(header *multipart.FileHeader, maxSize int64) (string, error) {
	if header.Size > maxSize {
		return "", fmt.Errorf("%w: %d bytes, limit is %d MB", ErrPlanTooLarge, header.Size, maxSize>>20)
	}

	detected, err := sniff(header)
	if err != nil {
		return "", err
	}

	exts, ok := planTypes[detected]
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrPlanType, detected)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(exts, ext) {
		return "", fmt.Errorf("%w: %q does not match %s content", ErrPlanType, ext, detected)
	}

	return exts[0], nil
}

func sniff(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
