package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Morisan51/chonaikai-kaikei/pkg/pathutil"
)

// FileWriter writes report documents into the export directory.
type FileWriter struct {
	pathResolver *pathutil.PathResolver
}

// NewFileWriter creates a new FileWriter.
func NewFileWriter(pathResolver *pathutil.PathResolver) *FileWriter {
	return &FileWriter{
		pathResolver: pathResolver,
	}
}

// Write writes doc to the export directory and returns the file path.
// An existing file with the same name is replaced.
func (w *FileWriter) Write(doc *Document) (string, error) {
	if doc == nil {
		return "", errors.New("no report to write")
	}

	filePath, err := w.pathResolver.GetExportFilePath(doc.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to get export file path: %w", err)
	}

	if err := w.pathResolver.EnsureParentDir(filePath); err != nil {
		return "", fmt.Errorf("failed to ensure export directory: %w", err)
	}

	if w.pathResolver.FileExists(filePath) {
		slog.Debug("replacing existing report", "path", filePath)
	}

	if err := os.WriteFile(filePath, doc.Content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}
