package reports

import (
	"time"

	"github.com/google/uuid"
)

const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatYAML = "yaml"
)

var Formats = []string{FormatCSV, FormatPDF, FormatYAML}

// CreateRequest asks for an export of the trailing Period days.
type CreateRequest struct {
	Period *int   `json:"period"`
	Format string `json:"format"`
}

type ReportDTO struct {
	ID          uuid.UUID `json:"id"`
	Format      string    `json:"format"`
	Period      int       `json:"period"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	SizeBytes   int64     `json:"sizeBytes"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListResponse struct {
	Reports []ReportDTO `json:"reports"`
}

func contentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}
