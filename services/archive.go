package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"chem-hand/config"
	"chem-hand/pubchem"
	"chem-hand/storage"
)

// ArchiveService archiviert die Datensätze der konfigurierten Watchlist
// periodisch ins S3. Pro Lauf wird jeder Compound der Liste im
// konfigurierten Format geholt und hochgeladen.
type ArchiveService struct {
	Config   *config.Config
	Client   *pubchem.Client
	S3Client *s3.Client
	Logger   *zap.Logger
}

func NewArchiveService(cfg *config.Config, client *pubchem.Client, s3Client *s3.Client, logger *zap.Logger) *ArchiveService {
	return &ArchiveService{
		Config:   cfg,
		Client:   client,
		S3Client: s3Client,
		Logger:   logger,
	}
}

// RunForWatchlist archiviert alle CIDs der Watchlist und gibt die Anzahl
// erfolgreich hochgeladener Datensätze zurück. Einzelne Fehlschläge
// brechen den Lauf nicht ab, sie werden geloggt und übersprungen.
func (a *ArchiveService) RunForWatchlist(ctx context.Context) (int, error) {
	cids := a.Config.WatchList()
	if len(cids) == 0 {
		a.Logger.Info("Watchlist ist leer, nichts zu archivieren.")
		return 0, nil
	}

	a.Logger.Info("Starte Archivierungslauf",
		zap.Int("cids", len(cids)),
		zap.String("format", a.Config.ArchiveFormat))

	var wg sync.WaitGroup
	var mu sync.Mutex
	uploaded := 0
	semaphore := make(chan struct{}, 5) // Limit auf 5 parallele Uploads

	for _, cid := range cids {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(cid int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := a.archiveOne(ctx, cid); err != nil {
				a.Logger.Error("Archivierung fehlgeschlagen", zap.Int("cid", cid), zap.Error(err))
				return
			}
			mu.Lock()
			uploaded++
			mu.Unlock()
		}(cid)
	}
	wg.Wait()

	a.Logger.Info("Archivierungslauf beendet", zap.Int("hochgeladen", uploaded))
	return uploaded, nil
}

func (a *ArchiveService) archiveOne(ctx context.Context, cid int) error {
	body, err := a.Client.Get(ctx, pubchem.RequestSpec{
		Identifier: strconv.Itoa(cid),
		Namespace:  "cid",
		Domain:     "compound",
		Output:     a.Config.ArchiveFormat,
	})
	if err != nil {
		return err
	}

	key := fmt.Sprintf("archive/%s/cid_%d.%s",
		time.Now().UTC().Format("2006-01-02"), cid, fileExtension(a.Config.ArchiveFormat))
	link, err := storage.UploadFile(ctx, a.S3Client, a.Config.StratoS3Bucket, key, body, a.Config)
	if err != nil {
		return err
	}

	a.Logger.Debug("Datensatz archiviert", zap.Int("cid", cid), zap.String("link", link))
	return nil
}

func fileExtension(format string) string {
	switch format {
	case "SDF":
		return "sdf"
	case "JSON":
		return "json"
	case "XML":
		return "xml"
	case "CSV":
		return "csv"
	case "PNG":
		return "png"
	default:
		return "dat"
	}
}
