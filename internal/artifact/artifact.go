// Package artifact describes downloadable export files and where they land.
package artifact

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Content types.
const (
	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeText = "text/plain;charset=utf-8"
)

// File name prefixes.
const (
	PrefixIDReport        = "SearchInstanceUUIDs"
	PrefixInTransitReport = "InTransitItemReport"
	PrefixCQLQuery        = "SearchInstanceCQLQuery"
)

// Artifact is one downloadable file.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// Timestamp formats t as ISO-8601 with offset.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FileName joins prefix, timestamp and extension.
func FileName(prefix string, t time.Time, ext string) string {
	return prefix + Timestamp(t) + "." + ext
}

// CSV encodes rows, with an optional header row, as a UTF-8 CSV artifact.
func CSV(name string, header []string, rows [][]string) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return Artifact{}, fmt.Errorf("write csv header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return Artifact{}, fmt.Errorf("write csv rows: %w", err)
	}
	return Artifact{Name: name, ContentType: ContentTypeCSV, Body: buf.Bytes()}, nil
}

// Text wraps s as a UTF-8 plain text artifact.
func Text(name, s string) Artifact {
	return Artifact{Name: name, ContentType: ContentTypeText, Body: []byte(s)}
}

// DirSink saves artifacts as files in a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates the directory if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Save writes a to the directory and returns its path.
func (s *DirSink) Save(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.Name == "" || filepath.Base(a.Name) != a.Name {
		return "", fmt.Errorf("invalid artifact name %q", a.Name)
	}
	path := filepath.Join(s.dir, a.Name)
	if err := os.WriteFile(path, a.Body, 0o640); err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}
	return path, nil
}
