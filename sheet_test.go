package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,name,price,category,images,in_stock
P1,Red Maxi,2500,Long Dress,https://drive.google.com/file/d/AAA/view,true
P2,"Blue, Short",1800,Short Dress,,false
`

func TestParseSheet(t *testing.T) {
	sheet, err := parseSheet(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "price", "category", "images", "in_stock"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Blue, Short", sheet.Rows[1]["name"])
	assert.Equal(t, "", sheet.Rows[1]["images"])
	assert.Equal(t, "2500", sheet.Rows[0]["price"])
}

func TestParseSheetShortRow(t *testing.T) {
	sheet, err := parseSheet(strings.NewReader("id,name,category,images\nP1,Dress\n"))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)

	row := sheet.Rows[0]
	assert.Equal(t, "Dress", row["name"])
	_, ok := row["images"]
	assert.True(t, ok, "missing trailing fields should be present and empty")
}

func TestParseSheetMissingColumn(t *testing.T) {
	_, err := parseSheet(strings.NewReader("id,name,images\nP1,Dress,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column in sheet: category")
	assert.Contains(t, err.Error(), "[id name images]")
}

func TestParseSheetNoRows(t *testing.T) {
	_, err := parseSheet(strings.NewReader("id,name,category,images\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows found")

	_, err = parseSheet(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFetchSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pub" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	sheet, err := fetchSheet(context.Background(), srv.Client(), srv.URL+"/pub")
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 2)

	_, err = fetchSheet(context.Background(), srv.Client(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestWriteSheetKeepsColumnOrder(t *testing.T) {
	sheet, err := parseSheet(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	sheet.Rows[0]["images"] = "https://res.cloudinary.com/demo/image/upload/v1/p1.jpg"

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0644))
	require.NoError(t, writeSheet(path, sheet))

	out, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "id,name,price,category,images,in_stock\r\n" +
		"P1,Red Maxi,2500,Long Dress,https://res.cloudinary.com/demo/image/upload/v1/p1.jpg,true\r\n" +
		"P2,\"Blue, Short\",1800,Short Dress,,false\r\n"
	assert.Equal(t, want, string(out))
}

func TestEncodeSheetRoundTrip(t *testing.T) {
	sheet, err := parseSheet(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, encodeSheet(&buf, sheet))
	assert.Equal(t, strings.ReplaceAll(sampleCSV, "\n", "\r\n"), buf.String())

	// CRLF output parses back to the same rows
	again, err := parseSheet(&buf)
	require.NoError(t, err)
	assert.Equal(t, sheet, again)
}
