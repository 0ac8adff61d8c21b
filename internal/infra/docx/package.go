package docx

import (
	"archive/zip"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

//go:embed skeleton/*.xml
var skeleton embed.FS

// documentPart is the main document inside the package.
const documentPart = "word/document.xml"

// skeletonParts maps package part names to embedded files, in write order.
var skeletonParts = []struct {
	name string
	file string
}{
	{"[Content_Types].xml", "skeleton/content_types.xml"},
	{"_rels/.rels", "skeleton/rels.xml"},
	{"word/_rels/document.xml.rels", "skeleton/document_rels.xml"},
	{"word/styles.xml", "skeleton/styles.xml"},
}

// writeNewPackage writes a document package made of the skeleton parts and document.
func writeNewPackage(path string, document []byte) error {
	return writeZip(path, func(zw *zip.Writer) error {
		for _, part := range skeletonParts {
			data, err := skeleton.ReadFile(part.file)
			if err != nil {
				return err
			}
			if err := writePart(zw, part.name, data); err != nil {
				return err
			}
		}
		return writePart(zw, documentPart, document)
	})
}

// readDocumentPart returns the main document of the package at path.
func readDocumentPart(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: missing %s", filepath.Base(path), documentPart)
}

// copyPackage writes a copy of the package at src to dst with its main document replaced.
func copyPackage(src, dst string, document []byte) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(src), err)
	}
	defer zr.Close()

	return writeZip(dst, func(zw *zip.Writer) error {
		for _, f := range zr.File {
			if f.Name == documentPart {
				if err := writePart(zw, documentPart, document); err != nil {
					return err
				}
				continue
			}
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("copy %s: %w", f.Name, err)
			}
		}
		return nil
	})
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func writeZip(path string, fill func(zw *zip.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(file)
	if err := fill(zw); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
