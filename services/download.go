package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"chem-hand/pubchem"
)

// DownloadService schreibt Dienst-Antworten in beliebigen Ausgabeformaten
// (SDF, CSV, PNG, JSON, ...) auf die Festplatte.
type DownloadService struct {
	Client *pubchem.Client
	Logger *zap.Logger
}

func NewDownloadService(client *pubchem.Client, logger *zap.Logger) *DownloadService {
	return &DownloadService{Client: client, Logger: logger}
}

// Download holt einen Datensatz im angegebenen Format und schreibt ihn nach
// path. Eine bestehende Datei wird nur mit overwrite ersetzt; ohne
// overwrite ist das ein Fehler, bevor überhaupt eine Anfrage rausgeht.
func (d *DownloadService) Download(ctx context.Context, outformat, path string, spec pubchem.RequestSpec, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("datei %s existiert bereits, overwrite nicht gesetzt", path)
		}
	}

	spec.Output = outformat
	body, err := d.Client.Get(ctx, spec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}

	d.Logger.Info("Download geschrieben",
		zap.String("path", path),
		zap.String("format", outformat),
		zap.Int("bytes", len(body)))
	return nil
}
