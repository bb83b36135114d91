package downloader

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fiscalia/nfe-insights/internal/fiscal/files"
	"github.com/fiscalia/nfe-insights/internal/logger"
)

// FiscalDataURL is the base location of the monthly NF-e exports.
var FiscalDataURL = "https://raw.githubusercontent.com/EcoSmart2025/Desafio-Final/refs/heads/main/fiscal-data/"

type DownloadResult struct {
	Success    bool
	HeaderPath string
	ItemPath   string
}

// FetchPeriodFiles downloads the header and item exports for one AAAAMM
// period into tmp/data. Both files must come down for the result to count
// as a success.
func FetchPeriodFiles(baseURL, periodKey, ext string, appLogger *logger.Logger) DownloadResult {
	const component = "Downloader"

	if err := os.MkdirAll("tmp/data", os.ModePerm); err != nil {
		appLogger.Error(component, "Failed to create download directory: error=%v", err)
		return DownloadResult{Success: false}
	}

	headerName := files.HeaderFileName(periodKey, ext)
	itemName := files.ItemFileName(periodKey, ext)

	headerPath, ok := fetchFile(baseURL+headerName, filepath.Join("tmp/data", headerName), periodKey, appLogger)
	if !ok {
		return DownloadResult{Success: false}
	}
	itemPath, ok := fetchFile(baseURL+itemName, filepath.Join("tmp/data", itemName), periodKey, appLogger)
	if !ok {
		return DownloadResult{Success: false}
	}

	return DownloadResult{Success: true, HeaderPath: headerPath, ItemPath: itemPath}
}

func fetchFile(downloadUrl, outputPath, periodKey string, appLogger *logger.Logger) (string, bool) {
	const component = "Downloader"

	appLogger.Debug(component, "Starting download for period=%s url=%s", periodKey, downloadUrl)

	client := &http.Client{}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		req.Header.Add("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
		return nil
	}
	// Create a new request with a custom User-Agent header
	req, err := http.NewRequest(http.MethodGet, downloadUrl, nil)
	if err != nil {
		appLogger.Error(component, "Failed to create HTTP request: period=%s error=%v", periodKey, err)
		return "", false
	}

	resp, err := client.Do(req)

	if err != nil {
		appLogger.Error(component, "HTTP request failed: period=%s error=%v", periodKey, err)
		return "", false
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appLogger.Warn(component, "Non-OK HTTP response: period=%s status=%s statusCode=%d", periodKey, resp.Status, resp.StatusCode)
		return "", false
	}

	out, err := os.Create(outputPath)

	if err != nil {
		appLogger.Error(component, "Failed to create output file: period=%s path=%s error=%v", periodKey, outputPath, err)
		return "", false
	}
	defer out.Close()

	bytesWritten, err := io.Copy(out, resp.Body)
	if err != nil {
		appLogger.Error(component, "Failed to write data to file: period=%s error=%v", periodKey, err)
		return "", false
	}

	appLogger.Info(component, "Download completed: period=%s path=%s size=%d bytes", periodKey, outputPath, bytesWritten)
	return outputPath, true
}
