// package formatter provides functions to export the playlist to various formats (M3U, CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/playsv/playsv/internal/models"
	"github.com/playsv/playsv/internal/shared"
)

// ExportToM3U converts a playlist to extended M3U format. Entries without a
// parseable duration get the conventional -1.
func ExportToM3U(videos []models.Video) []byte {
	var buf bytes.Buffer

	buf.WriteString("#EXTM3U\n")
	for _, video := range videos {
		buf.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", durationSeconds(video.Duration), video.Title))
		if video.Path != "" {
			buf.WriteString(video.Path + "\n")
		} else {
			buf.WriteString(video.Filename + "\n")
		}
	}

	return buf.Bytes()
}

// ExportToCSV converts a playlist to CSV format with columns: ID, Title, Filename, Duration, Size
func ExportToCSV(videos []models.Video) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Filename", "Duration", "Size"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		record := []string{
			strconv.Itoa(video.ID),
			video.Title,
			video.Filename,
			video.Duration,
			shared.FormatSize(video.Size),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to a numbered plain text listing
func ExportToText(videos []models.Video) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist (%d videos)\n\n", len(videos)))
	for i, video := range videos {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, video.Title, video.Duration))
	}

	return buf.Bytes()
}

// WriteToFile writes exported data to the given path.
func WriteToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// durationSeconds parses a display duration ("12:34" or "1:02:05") back into
// seconds, returning -1 when the string is not parseable.
func durationSeconds(display string) int {
	parts := strings.Split(display, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return -1
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return -1
		}
		total = total*60 + n
	}
	return total
}
