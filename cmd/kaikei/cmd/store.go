package cmd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/boltstore"
	"github.com/Morisan51/chonaikai-kaikei/pkg/config"
	"github.com/Morisan51/chonaikai-kaikei/pkg/db"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/pathutil"
	"github.com/Morisan51/chonaikai-kaikei/pkg/remote"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// newPathResolver builds the path resolver from configuration.
func newPathResolver(cfg *config.Config) *pathutil.PathResolver {
	return pathutil.New(pathutil.Config{
		DataDir:      cfg.Store.DataDir,
		DatabasePath: cfg.Store.DBPath,
		BoltPath:     cfg.Store.BoltPath,
		ExportDir:    cfg.Export.Dir,
	})
}

// openStore opens the configured record store.
// The returned function releases it.
func openStore(cfg *config.Config, paths *pathutil.PathResolver) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		dbPath := paths.GetDatabasePath()
		slog.Debug("Opening database", "path", dbPath)

		conn, err := db.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return db.NewTransactionRepository(conn), func() { conn.Close() }, nil

	case config.BackendBolt:
		boltPath := paths.GetBoltPath()
		slog.Debug("Opening bolt store", "path", boltPath)

		if err := paths.EnsureParentDir(boltPath); err != nil {
			return nil, nil, err
		}
		s, err := boltstore.New(boltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.BackendRemote:
		if err := cfg.Validate([]string{"store", "apiUrl"}); err != nil {
			return nil, nil, err
		}
		slog.Debug("Using remote store", "url", cfg.Store.APIURL, "timeout", cfg.Store.APITimeout)

		client := remote.NewClient(remote.ClientConfig{
			APIURL:  cfg.Store.APIURL,
			Timeout: cfg.Store.APITimeout,
		})
		return client, func() {}, nil

	case config.BackendMemory:
		slog.Warn("Using in-memory store; records are lost on exit")
		return store.NewMemory(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Store.Backend)
}

// loadVocabulary returns the configured category vocabulary.
func loadVocabulary(cfg *config.Config) (ledger.Vocabulary, error) {
	if cfg.Export.CategoriesFile == "" {
		return ledger.DefaultVocabulary(), nil
	}
	return ledger.LoadVocabulary(cfg.Export.CategoriesFile)
}

// openBook wires configuration, store and factory into a Book.
// The returned function closes the store; it also runs if the command exits
// through exitOnError.
func openBook(cfg *config.Config) (*book.Book, store.Store, func()) {
	paths := newPathResolver(cfg)

	vocab, err := loadVocabulary(cfg)
	exitOnError(err, "failed to load categories")

	s, closeStore, err := openStore(cfg, paths)
	exitOnError(err, "failed to open record store")

	var once sync.Once
	release := func() { once.Do(closeStore) }
	onExit(release)

	return book.New(s, ledger.NewFactory(vocab)), s, release
}
