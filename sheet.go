package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const sheetFetchTimeout = 60 * time.Second

var requiredColumns = []string{"id", "name", "category", "images"}

// Row is a single product row keyed by column name
type Row map[string]string

// Sheet holds the parsed rows along with the header that defines column order
type Sheet struct {
	Header []string
	Rows   []Row
}

// fetchSheet downloads the published sheet CSV and parses it
func fetchSheet(ctx context.Context, client *http.Client, url string) (*Sheet, error) {
	ctx, cancel := context.WithTimeout(ctx, sheetFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching sheet CSV: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching sheet CSV, status: %d", resp.StatusCode)
	}

	return parseSheet(resp.Body)
}

// parseSheet reads a header row followed by data rows and validates the required columns
func parseSheet(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no rows found in CSV, check your published sheet")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	sheet := &Sheet{Header: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(sheet.Rows)+1, err)
		}

		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("no rows found in CSV, check your published sheet")
	}

	if err := sheet.validateColumns(); err != nil {
		return nil, err
	}

	log.Debugf("Parsed %d rows with columns %v", len(sheet.Rows), sheet.Header)
	return sheet, nil
}

func (s *Sheet) validateColumns() error {
	for _, required := range requiredColumns {
		found := false
		for _, column := range s.Header {
			if column == required {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("missing column in sheet: %s. Found: %v", required, s.Header)
		}
	}
	return nil
}

// writeSheet writes the header and every row to path, replacing any existing file
func writeSheet(path string, sheet *Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output CSV %s: %w", path, err)
	}
	defer f.Close()

	if err := encodeSheet(f, sheet); err != nil {
		return fmt.Errorf("error writing output CSV %s: %w", path, err)
	}
	return f.Close()
}

func encodeSheet(w io.Writer, sheet *Sheet) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(sheet.Header); err != nil {
		return err
	}

	record := make([]string, len(sheet.Header))
	for _, row := range sheet.Rows {
		for i, column := range sheet.Header {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
