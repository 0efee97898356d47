package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
)

const (
	driveDirectDownloadURL = "https://drive.google.com/uc"
	driveDownloadTimeout   = 60 * time.Second
)

// ShareLinkDownloader implements Downloader for publicly shared Drive files.
// It uses the direct download endpoint, no credentials needed.
type ShareLinkDownloader struct {
	baseURL   string
	transport http.RoundTripper
}

// NewShareLinkDownloader creates a downloader against the public Drive endpoint
func NewShareLinkDownloader() *ShareLinkDownloader {
	return &ShareLinkDownloader{baseURL: driveDirectDownloadURL}
}

// GetName returns the download source name
func (d *ShareLinkDownloader) GetName() string {
	return "Google Drive (share link)"
}

// Download fetches the file behind a Drive share link.
// Large files answer with a download_warning cookie that has to be echoed back as confirm.
func (d *ShareLinkDownloader) Download(ctx context.Context, sourceURL string) ([]byte, error) {
	start := time.Now()

	fileID, ok := extractDriveID(sourceURL)
	if !ok {
		return nil, fmt.Errorf("could not extract Drive file id from: %s", sourceURL)
	}

	// A fresh jar per file keeps the confirmation cookie scoped to this download
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}
	client := &http.Client{
		Jar:       jar,
		Timeout:   driveDownloadTimeout,
		Transport: d.transport,
	}

	dlURL := fmt.Sprintf("%s?export=download&id=%s", d.baseURL, fileID)

	data, cookies, err := d.get(ctx, client, dlURL)
	if err != nil {
		return nil, err
	}

	var confirm string
	for _, cookie := range cookies {
		if strings.HasPrefix(cookie.Name, "download_warning") {
			confirm = cookie.Value
			break
		}
	}

	if confirm != "" {
		log.Debugf("Drive asked for download confirmation for %s", fileID)
		data, _, err = d.get(ctx, client, dlURL+"&confirm="+url.QueryEscape(confirm))
		if err != nil {
			return nil, err
		}
	}

	if err := checkPayload(data, sourceURL); err != nil {
		return nil, err
	}

	driveDownloadDuration.WithLabelValues("share_link").Observe(time.Since(start).Seconds())
	return data, nil
}

func (d *ShareLinkDownloader) get(ctx context.Context, client *http.Client, dlURL string) ([]byte, []*http.Cookie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dlURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error downloading file from %s: %w", dlURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("HTTP status code %d while downloading file from %s", resp.StatusCode, dlURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading download body: %w", err)
	}
	return data, resp.Cookies(), nil
}

// DriveAPIDownloader implements Downloader through the authenticated Drive v3 API,
// so files shared only with the operator's account can be migrated too
type DriveAPIDownloader struct {
	service *drive.Service
}

// NewDriveAPIDownloader creates a Drive API downloader from OAuth credentials
func NewDriveAPIDownloader(credentialsFile, tokenFile string) *DriveAPIDownloader {
	return &DriveAPIDownloader{service: initGDriveSvc(credentialsFile, tokenFile)}
}

// GetName returns the download source name
func (d *DriveAPIDownloader) GetName() string {
	return "Google Drive (API)"
}

// Download fetches file content with files.get?alt=media
func (d *DriveAPIDownloader) Download(ctx context.Context, sourceURL string) ([]byte, error) {
	start := time.Now()

	fileID, ok := extractDriveID(sourceURL)
	if !ok {
		return nil, fmt.Errorf("could not extract Drive file id from: %s", sourceURL)
	}

	ctx, cancel := context.WithTimeout(ctx, driveDownloadTimeout)
	defer cancel()

	resp, err := d.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("error downloading Drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading Drive file %s: %w", fileID, err)
	}

	if err := checkPayload(data, sourceURL); err != nil {
		return nil, err
	}

	driveDownloadDuration.WithLabelValues("api").Observe(time.Since(start).Seconds())
	return data, nil
}
