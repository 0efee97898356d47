package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	driveDownloadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "d2c_drive_download_duration",
			Help: "Histogram of the duration of Google Drive downloads.",
		},
		[]string{"source"},
	)

	cloudinaryUploadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "d2c_cloudinary_upload_duration",
			Help: "Histogram of the duration of Cloudinary upload requests.",
		},
		[]string{},
	)

	rowsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "d2c_rows_processed",
			Help: "# of sheet rows processed, by outcome",
		},
		[]string{"outcome"},
	)

	lastRunSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "d2c_success",
			Help: "The application records a 1 on successful exit",
		},
		[]string{},
	)
)

// initMetrics registers collectors and serves /metrics when METRICS_HTTP_PORT is set
func initMetrics() {
	prometheus.MustRegister(driveDownloadDuration)
	prometheus.MustRegister(cloudinaryUploadDuration)
	prometheus.MustRegister(rowsProcessed)
	prometheus.MustRegister(lastRunSuccess)

	METRICS_HTTP_PORT := os.Getenv("METRICS_HTTP_PORT")
	if METRICS_HTTP_PORT == "" {
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+METRICS_HTTP_PORT, mux); err != nil {
			log.Errorf("Failed to start Prometheus metrics server: %v", err)
		}
	}()
	log.Infof("Serving metrics on :%s/metrics", METRICS_HTTP_PORT)
}
