// Package packaging turns a source directory into a zip deployment package.
package packaging

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olusolaa/lambda-deployer/internal/core/ports"
	"github.com/olusolaa/lambda-deployer/internal/errors"
)

type ZipPackager struct {
	outputDir string
	logger    ports.Logger
}

// NewZipPackager writes archives under outputDir; when outputDir is empty the
// system temp directory is used.
func NewZipPackager(outputDir string, logger ports.Logger) *ZipPackager {
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &ZipPackager{outputDir: outputDir, logger: logger}
}

// Package walks sourceDir and writes a zip with entries in a deterministic
// order, returning the archive path. A directory with no regular files is a
// caller error: there is nothing to deploy.
func (p *ZipPackager) Package(ctx context.Context, sourceDir string) (string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewUserFacing(errors.CodeConfigValidation,
				fmt.Sprintf("Code artifacts directory %s does not exist", sourceDir),
				"Point code-artifacts-dir at the directory containing the built function code.")
		}
		return "", errors.Wrap(err, errors.CodePackagingError, "failed to stat code artifacts directory")
	}
	if !info.IsDir() {
		return "", errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("Code artifacts path %s is not a directory", sourceDir),
			"Point code-artifacts-dir at a directory, not a file.")
	}

	files, err := collectFiles(ctx, sourceDir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("No deployable artifacts found in %s", sourceDir),
			"Build the function before deploying.")
	}

	archivePath := filepath.Join(p.outputDir, fmt.Sprintf("%s.zip", filepath.Base(sourceDir)))
	out, err := os.Create(archivePath)
	if err != nil {
		return "", errors.Wrap(err, errors.CodePackagingError, "failed to create deployment package")
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range files {
		if ctx.Err() != nil {
			zw.Close()
			return "", ctx.Err()
		}
		if err := addFile(zw, sourceDir, rel); err != nil {
			zw.Close()
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, errors.CodePackagingError, "failed to finalize deployment package")
	}

	p.logger.Infof(ctx, "Packaged %d files from %s into %s", len(files), sourceDir, archivePath)
	return archivePath, nil
}

func collectFiles(ctx context.Context, sourceDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePackagingError, "failed to walk code artifacts directory")
	}
	sort.Strings(files)
	return files, nil
}

func addFile(zw *zip.Writer, sourceDir, rel string) error {
	full := filepath.Join(sourceDir, rel)
	info, err := os.Stat(full)
	if err != nil {
		return errors.Wrap(err, errors.CodePackagingError, "failed to stat artifact file")
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrap(err, errors.CodePackagingError, "failed to build archive header")
	}
	hdr.Name = strings.ReplaceAll(rel, string(filepath.Separator), "/")
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrap(err, errors.CodePackagingError, "failed to add archive entry")
	}

	f, err := os.Open(full)
	if err != nil {
		return errors.Wrap(err, errors.CodePackagingError, "failed to read artifact file")
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return errors.Wrap(err, errors.CodePackagingError, "failed to write archive entry")
	}
	return nil
}
