package sitemap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerobakjogja/site-functions/pkg/sitemap"
)

func TestFileSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "sitemap.xml")
	sink := sitemap.FileSink{Path: path}

	require.NoError(t, sink.Write(context.Background(), []byte("first version")))
	require.NoError(t, sink.Write(context.Background(), []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFileSinkReportsFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "public")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	err := sitemap.FileSink{Path: filepath.Join(blocker, "sitemap.xml")}.Write(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestNewSink(t *testing.T) {
	sink, err := sitemap.NewSink("none", "")
	require.NoError(t, err)
	assert.IsType(t, sitemap.NopSink{}, sink)

	sink, err = sitemap.NewSink("file", "public/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, sitemap.FileSink{Path: "public/sitemap.xml"}, sink)

	_, err = sitemap.NewSink("file", "")
	assert.Error(t, err)

	_, err = sitemap.NewSink("s3", "x")
	assert.Error(t, err)
}
