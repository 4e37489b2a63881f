package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
	memorystorage "github.com/Nainjain26/new-blogbackend/pkg/blogcontent/storage/memory"
)

func TestUploadDownloadDelete(t *testing.T) {
	backend := memorystorage.New()
	ctx := context.Background()

	err := backend.Upload(ctx, "key", strings.NewReader("data"), blogcontent.UploadParams{MimeType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Len())

	body, err := backend.Download(ctx, "key")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	url, err := backend.GetPublicURL(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "memory:///key", url)

	require.NoError(t, backend.Delete(ctx, "key"))
	assert.Equal(t, 0, backend.Len())

	_, err = backend.Download(ctx, "key")
	assert.ErrorIs(t, err, blogcontent.ErrAssetNotFound)
	assert.ErrorIs(t, backend.Delete(ctx, "key"), blogcontent.ErrAssetNotFound)
}
