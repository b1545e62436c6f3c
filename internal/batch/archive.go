package batch

import (
	"archive/tar"
	"archive/zip"
	"io"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
)

// WriteZip writes the rendered files into a zip archive.
func WriteZip(w io.Writer, files []File) error {
	zw := zip.NewWriter(w)
	now := time.Now()

	for _, f := range files {
		header := &zip.FileHeader{
			Name:     f.Filename,
			Method:   zip.Deflate,
			Modified: now,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return errors.Wrapf(err, "zip entry %s", f.Filename)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return errors.Wrapf(err, "zip entry %s", f.Filename)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "close zip")
	}
	return nil
}

// WriteTarXz writes the rendered files into a tar.xz archive.
func WriteTarXz(w io.Writer, files []File) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "create xz writer")
	}

	tw := tar.NewWriter(xw)
	now := time.Now()

	for _, f := range files {
		header := &tar.Header{
			Name:    f.Filename,
			Mode:    0644,
			Size:    int64(len(f.Data)),
			ModTime: now,
		}
		if err := tw.WriteHeader(header); err != nil {
			return errors.Wrapf(err, "tar entry %s", f.Filename)
		}
		if _, err := tw.Write(f.Data); err != nil {
			return errors.Wrapf(err, "tar entry %s", f.Filename)
		}
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "close tar")
	}
	if err := xw.Close(); err != nil {
		return errors.Wrap(err, "close xz")
	}
	return nil
}
