package validation

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ana@example.com"))
	assert.ErrorIs(t, ValidateEmail(""), ErrEmailRequired)
	assert.ErrorIs(t, ValidateEmail("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, ValidateEmail("Ana <ana@example.com>"), ErrEmailInvalid)
	assert.ErrorIs(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"), ErrEmailTooLong)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("blue-house-77"))
	assert.ErrorIs(t, ValidatePassword(""), ErrPasswordRequired)
	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
	assert.ErrorIs(t, ValidatePassword("MyPassword99"), ErrPasswordCommon)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ana"))
	assert.ErrorIs(t, ValidateName("   "), ErrNameRequired)
	assert.NoError(t, ValidateName(strings.Repeat("é", 100)))
	assert.ErrorIs(t, ValidateName(strings.Repeat("n", 101)), ErrNameTooLong)
	assert.ErrorIs(t, ValidateName("Ana\x00"), ErrNameInvalid)
}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("plan", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["plan"][0]
}

func TestValidatePlan(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

	tests := []struct {
		name     string
		filename string
		content  []byte
		want     string
		err      error
	}{
		{"pdf", "plan.pdf", pdf, ".pdf", nil},
		{"png", "Plan.PNG", png, ".png", nil},
		{"jpeg stored as jpg", "plan.jpeg", jpeg, ".jpg", nil},
		{"text", "plan.txt", []byte("hello"), "", ErrPlanType},
		{"pdf named exe", "plan.exe", pdf, "", ErrPlanType},
		{"png named pdf", "plan.pdf", png, "", ErrPlanType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ValidatePlan(uploadHeader(t, tt.filename, tt.content), 1<<20)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ext)
		})
	}

	_, err := ValidatePlan(uploadHeader(t, "plan.pdf", pdf), 4)
	assert.ErrorIs(t, err, ErrPlanTooLarge)
}
