// Package pathutil provides centralized path management for ledger databases
// and exported reports.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths for the record store files and report exports.
type PathResolver struct {
	dataDir      string
	databasePath string
	boltPath     string
	exportDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataDir is the root directory for all ledger files (e.g., ./data)
	DataDir string
	// DatabasePath is the path to the SQLite database file
	DatabasePath string
	// BoltPath is the path to the bbolt database file
	BoltPath string
	// ExportDir is the directory CSV reports are written to
	ExportDir string
}

// New creates a new PathResolver with the given configuration.
// Empty paths default to files below DataDir:
//   - DatabasePath: {DataDir}/kaikei.db
//   - BoltPath: {DataDir}/kaikei.bolt
//   - ExportDir: {DataDir}/exports
func New(config Config) *PathResolver {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "kaikei.db")
	}

	boltPath := config.BoltPath
	if boltPath == "" {
		boltPath = filepath.Join(dataDir, "kaikei.bolt")
	}

	exportDir := config.ExportDir
	if exportDir == "" {
		exportDir = filepath.Join(dataDir, "exports")
	}

	return &PathResolver{
		dataDir:      dataDir,
		databasePath: dbPath,
		boltPath:     boltPath,
		exportDir:    exportDir,
	}
}

// GetDataDir returns the data root directory.
func (p *PathResolver) GetDataDir() string {
	return p.dataDir
}

// GetDatabasePath returns the SQLite database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetBoltPath returns the bbolt database file path.
func (p *PathResolver) GetBoltPath() string {
	return p.boltPath
}

// GetExportDir returns the report export directory.
func (p *PathResolver) GetExportDir() string {
	return p.exportDir
}

// GetExportFilePath returns the path of a report file in the export directory.
// fileName must be a bare file name.
// Example: data/exports/町内会計_2025-01.csv
func (p *PathResolver) GetExportFilePath(fileName string) (string, error) {
	if fileName == "" || filepath.Base(fileName) != fileName {
		return "", fmt.Errorf("invalid export file name: %q", fileName)
	}
	return filepath.Join(p.exportDir, fileName), nil
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
