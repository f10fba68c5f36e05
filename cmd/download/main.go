package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"chem-hand/config"
	"chem-hand/pubchem"
	"chem-hand/services"
)

func main() {
	var (
		identifier = flag.String("id", "", "Identifier (z.B. CID, Name, SMILES)")
		namespace  = flag.String("namespace", "cid", "Namespace des Identifiers")
		domain     = flag.String("domain", "compound", "Domain (compound, substance, assay)")
		format     = flag.String("format", "SDF", "Ausgabeformat (SDF, JSON, CSV, PNG, XML)")
		outDir     = flag.String("out", ".", "Zielverzeichnis")
		overwrite  = flag.Bool("overwrite", false, "Bestehende Dateien überschreiben")
	)
	flag.Parse()

	if *identifier == "" {
		flag.Usage()
		log.Fatal("Flag -id ist erforderlich.")
	}

	log.Println("Starte Download...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Fehler beim Initialisieren des Loggers: %v", err)
	}
	defer logger.Sync()

	client, err := pubchem.NewClient(cfg, logger)
	if err != nil {
		log.Fatalf("Fehler beim Erstellen des Clients: %v", err)
	}
	downloader := services.NewDownloadService(client, logger)

	safeID := strings.NewReplacer("/", "_", " ", "_").Replace(*identifier)
	path := filepath.Join(*outDir, fmt.Sprintf("%s_%s.%s", *domain, safeID, strings.ToLower(*format)))

	spec := pubchem.RequestSpec{
		Identifier: *identifier,
		Namespace:  *namespace,
		Domain:     *domain,
	}
	if err := downloader.Download(context.Background(), *format, path, spec, *overwrite); err != nil {
		log.Fatalf("Download fehlgeschlagen: %v", err)
	}

	log.Printf("Download erfolgreich nach %s geschrieben.", path)
}
