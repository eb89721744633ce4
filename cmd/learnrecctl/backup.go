// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend/storage"
)

// backupCmd writes a backup of the store
var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write a compressed backup of the persisted store",
	Long: `Write a gzip-compressed Badger backup of profiles and content. The
server must be stopped.

Examples:
  learnrecctl backup /backups/learnrec-manual.bak.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

// restoreCmd loads a backup into the store
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Load a backup into the persisted store",
	Long: `Merge a backup written by "learnrecctl backup" or the server's snapshot
schedule into the store. Existing keys are overwritten. The server must be
stopped and restores the merged state on its next start.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStoreOffline(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(store)

	f, err := os.OpenFile(args[0], os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	version, err := store.Backup(cmd.Context(), f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(args[0])
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s (version %d)\n", args[0], version)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	store, err := openStoreOffline(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(store)

	if err := store.LoadBackup(cmd.Context(), f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "backup %s loaded into %s\n", args[0], cfg.Storage.Path)
	return nil
}

// openStoreOffline opens the configured Badger store for CLI use.
func openStoreOffline(cfg *config.Config) (*storage.Store, error) {
	if !cfg.Storage.Enabled {
		return nil, errStorageDisabled
	}
	store, err := storage.Open(storage.Config{
		Path:        cfg.Storage.Path,
		InMemory:    cfg.Storage.InMemory,
		SyncWrites:  cfg.Storage.SyncWrites,
		Compression: cfg.Storage.Compression,
	}, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("open store at %s (is the server running?): %w", cfg.Storage.Path, err)
	}
	return store, nil
}

func closeQuietly(store *storage.Store) {
	if err := store.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing store")
	}
}
