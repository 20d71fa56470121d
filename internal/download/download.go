package download

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DataFileName is the measurement file inside the dataset archive.
const DataFileName = "household_power_consumption.txt"

// Ensure makes sure the extracted dataset exists under dataDir, downloading
// and unpacking the archive from url if needed. Returns the path to the
// extracted file. The download is skipped entirely when the file is already
// present.
func Ensure(url, dataDir string) (string, error) {
	dataPath := filepath.Join(dataDir, DataFileName)
	if _, err := os.Stat(dataPath); err == nil {
		return dataPath, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	zipPath := filepath.Join(dataDir, "household_power_consumption.zip")
	if err := fetch(url, zipPath); err != nil {
		return "", err
	}
	defer os.Remove(zipPath)

	if err := extract(zipPath, dataDir); err != nil {
		return "", err
	}

	if _, err := os.Stat(dataPath); err != nil {
		return "", fmt.Errorf("archive did not contain %s: %w", DataFileName, err)
	}

	return dataPath, nil
}

// fetch downloads url to destPath
func fetch(url, destPath string) error {
	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("downloading dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading dataset: HTTP status %d", resp.StatusCode)
	}

	if resp.ContentLength > 0 {
		fmt.Printf("Downloading %s (%s)...\n", url, humanize.Bytes(uint64(resp.ContentLength)))
	} else {
		fmt.Printf("Downloading %s...\n", url)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	fmt.Printf("✓ Downloaded %s\n", humanize.Bytes(uint64(written)))

	return nil
}

// extract unpacks every regular file in the archive into destDir
func extract(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		// Flatten the archive layout; guard against path traversal names.
		name := filepath.Base(file.Name)
		if name == "." || name == ".." || strings.Contains(name, "..") {
			return fmt.Errorf("archive contains unsafe path: %s", file.Name)
		}

		if err := extractFile(file, filepath.Join(destDir, name)); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening %s in archive: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("extracting %s: %w", file.Name, err)
	}

	return nil
}
