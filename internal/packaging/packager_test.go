package packaging

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/internal/errors"
)

type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...any)            {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Errorf(ctx context.Context, err error, format string, args ...any) {}
func (l nopLogger) WithFields(fields map[string]any) ports.Logger                   { return l }

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, contents := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
	}
	return dir
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	entries := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = string(data)
	}
	return entries
}

func TestPackageArchivesDirectoryTree(t *testing.T) {
	src := writeSource(t, map[string]string{
		"app.py":            "handler",
		"lib/helpers.py":    "helpers",
		"lib/deep/extra.py": "extra",
	})
	p := NewZipPackager(t.TempDir(), nopLogger{})

	path, err := p.Package(context.Background(), src)
	require.NoError(t, err)

	entries := readArchive(t, path)
	assert.Equal(t, map[string]string{
		"app.py":            "handler",
		"lib/helpers.py":    "helpers",
		"lib/deep/extra.py": "extra",
	}, entries)
}

func TestPackageEntryOrderIsDeterministic(t *testing.T) {
	src := writeSource(t, map[string]string{
		"b.py": "b",
		"a.py": "a",
		"c.py": "c",
	})
	p := NewZipPackager(t.TempDir(), nopLogger{})

	path, err := p.Package(context.Background(), src)
	require.NoError(t, err)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.py", "b.py", "c.py"}, names)
}

func TestPackageRejectsEmptyDirectory(t *testing.T) {
	p := NewZipPackager(t.TempDir(), nopLogger{})

	_, err := p.Package(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
	assert.Contains(t, err.Error(), "No deployable artifacts found")
}

func TestPackageRejectsMissingDirectory(t *testing.T) {
	p := NewZipPackager(t.TempDir(), nopLogger{})

	_, err := p.Package(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestPackageRejectsFilePath(t *testing.T) {
	src := writeSource(t, map[string]string{"app.py": "handler"})
	p := NewZipPackager(t.TempDir(), nopLogger{})

	_, err := p.Package(context.Background(), filepath.Join(src, "app.py"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
	assert.Contains(t, err.Error(), "is not a directory")
}
