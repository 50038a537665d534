package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart header the way a gin handler receives it.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestDiskUploader_Upload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	du, err := NewDiskUploader(dir)
	require.NoError(t, err)
	du.now = func() time.Time { return time.UnixMilli(1700000000123) }

	url, err := du.Upload(context.Background(), fileHeader(t, "my dog (1).png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000123-my_dog__1_.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000123-my_dog__1_.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskUploader_NonASCIIName(t *testing.T) {
	dir := t.TempDir()
	du, err := NewDiskUploader(dir)
	require.NoError(t, err)
	du.now = func() time.Time { return time.UnixMilli(1) }

	url, err := du.Upload(context.Background(), fileHeader(t, "naïve café.gif", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-na_ve_caf_.gif", url)
	assert.FileExists(t, filepath.Join(dir, "1-na_ve_caf_.gif"))
}

func TestPublicID(t *testing.T) {
	id := publicID("photo one.jpg", time.Unix(0, 42))
	assert.Equal(t, "photo_one_42", id)
}

func TestForceHTTPS(t *testing.T) {
	assert.Equal(t, "https://res.cloudinary.com/x.jpg", forceHTTPS(" http://res.cloudinary.com/x.jpg "))
	assert.Equal(t, "", forceHTTPS(""))
}
