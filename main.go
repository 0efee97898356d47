package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

func initDownloader(conf *config) Downloader {
	if conf.Google.CredentialsFile != "" {
		log.Info("Initializing Google Drive API downloader")
		return NewDriveAPIDownloader(conf.Google.CredentialsFile, conf.Google.TokenFile)
	}
	log.Info("Initializing Google Drive share link downloader")
	return NewShareLinkDownloader()
}

func initStorage(conf *config) StorageProvider {
	log.Info("Initializing Cloudinary storage")
	storage, err := NewCloudinaryStorage(
		conf.Cloudinary.CloudName,
		conf.Cloudinary.APIKey,
		conf.Cloudinary.APISecret,
		conf.Cloudinary.UploadPrefix,
	)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return storage
}

func main() {
	conf, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if logFile := setupLogs(); logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initMetrics()
	log.Info("Metrics init'd")

	downloader := initDownloader(conf)
	log.Infof("%s downloader init'ed", downloader.GetName())

	storage := initStorage(conf)
	log.Infof("%s storage init'ed", storage.GetName())

	log.Info("Fetching sheet CSV...")
	sheet, err := fetchSheet(ctx, http.DefaultClient, conf.SheetCSVURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("Fetched %d rows", len(sheet.Rows))

	migrator := NewMigrator(downloader, storage, conf.Cloudinary.BaseFolder, conf.Delay)
	mc, runErr := migrator.Run(ctx, sheet)
	if runErr != nil {
		log.Warnf("%v", runErr)
	}

	if err := writeSheet(conf.OutCSV, sheet); err != nil {
		log.Fatalf("%v", err)
	}

	log.Info("DONE")
	log.Infof("Migrated: %d", mc.Migrated)
	log.Infof("Skipped:  %d", mc.Skipped)
	log.Infof("Failed:   %d", mc.Failed)
	log.Infof("Output:   %s", conf.OutCSV)

	if mc.Failed > 0 {
		log.Warnf("%d rows failed and kept their original images, re-run once the cause is fixed", mc.Failed)
	}

	if runErr == nil {
		lastRunSuccess.WithLabelValues().Set(1)
		log.Infof("The application completed successfully.")
	}
}
