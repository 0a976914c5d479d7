package fixtures

import (
	"log/slog"

	"souvenirspartan/internal/config"
)

// MakeStore prefers the blob container when one is configured and falls back to the local directory.
func MakeStore(cfg config.FixturesConfig) (Store, error) {
	if cfg.Container != "" && cfg.AccountName != "" {
		slog.Info("using azure blob storage for fixtures", "container", cfg.Container)
		return NewBlobStore(cfg.AccountName, cfg.AccountKey, cfg.Container)
	}
	slog.Info("using local fixture directory", "dir", cfg.Dir)
	return NewFileStore(cfg.Dir), nil
}
