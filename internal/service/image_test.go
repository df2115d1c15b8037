package service_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/service"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte("image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	data, contentType, err := service.DecodeBase64Image(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/png", contentType)

	data, contentType, err = service.DecodeBase64Image("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestDecodeBase64ImageInvalid(t *testing.T) {
	for _, payload := range []string{
		"not base64!!!",
		"data:image/png;base64",
		"",
	} {
		_, _, err := service.DecodeBase64Image(payload)
		assert.ErrorIs(t, err, service.ErrInvalidImage, "payload %q", payload)
	}
}

func TestImageServiceStoresLocally(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewImageService(nil, dir)

	url, err := svc.Store(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/media/recipes/"), "got %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	path := filepath.Join(dir, strings.TrimPrefix(url, "/media/"))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), written)
}

func TestImageServiceExtensionFollowsContentType(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewImageService(nil, dir)

	url, err := svc.Store(context.Background(), []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "got %q", url)
}
