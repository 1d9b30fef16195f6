package jobs

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gocrm/internal/graphclient"

	"github.com/stretchr/testify/assert"
)

func TestLowStockJob_LogsEachUpdatedProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"updateLowStockProducts":{
			"success": true,
			"message": "Successfully updated 2 low-stock products",
			"count": 2,
			"updatedProducts": [
				{"id":"11111111-1111-1111-1111-111111111111","name":"Widget","stock":13},
				{"id":"22222222-2222-2222-2222-222222222222","name":"Gadget","stock":19}
			]
		}}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "low_stock_updates_log.txt")
	job := NewLowStockJob(graphclient.New(server.URL, 10*time.Second), NewLogSink(logPath, filepath.Join(dir, "fallback.txt")))

	job.Run(t.Context())

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Low stock update successful: Successfully updated 2 low-stock products")
	assert.Contains(t, string(content), "Updated product: Widget - New stock: 13")
	assert.Contains(t, string(content), "Updated product: Gadget - New stock: 19")
}

func TestLowStockJob_NoProductsUpdated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"updateLowStockProducts":{
			"success": true,
			"message": "Successfully updated 0 low-stock products",
			"count": 0,
			"updatedProducts": []
		}}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "low_stock_updates_log.txt")
	job := NewLowStockJob(graphclient.New(server.URL, 10*time.Second), NewLogSink(logPath, filepath.Join(dir, "fallback.txt")))

	job.Run(t.Context())

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "No products required stock updates")
}

func TestLowStockJob_TransportFailureIsLogged(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "low_stock_updates_log.txt")
	job := NewLowStockJob(graphclient.New("http://127.0.0.1:0/graphql", time.Second), NewLogSink(logPath, filepath.Join(dir, "fallback.txt")))

	job.Run(t.Context())

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Low stock update failed")
}

func TestLowStockJob_MalformedResponseIsLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"somethingElse":{}}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "low_stock_updates_log.txt")
	job := NewLowStockJob(graphclient.New(server.URL, 10*time.Second), NewLogSink(logPath, filepath.Join(dir, "fallback.txt")))

	job.Run(t.Context())

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "Invalid response from GraphQL endpoint")
}
