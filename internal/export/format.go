// Package export renders the tag collection as a downloadable document and
// optionally uploads it to S3-compatible object storage.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
)

// Format names an export encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

var csvHeader = []string{"id", "title", "slug", "amountOfVideos"}

// ParseFormat maps a user-supplied name to a Format. The empty string means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", domainerrors.ValidationWithDetails("Must be one of: json yaml csv.", map[string]string{
			"format": "Must be one of: json yaml csv.",
		})
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Encode writes tags to w in the given format.
func Encode(w io.Writer, f Format, tags []domain.Tag) error {
	if tags == nil {
		tags = []domain.Tag{}
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tags); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, tags)
	default:
		_, err := ParseFormat(string(f))
		return err
	}
}

// Marshal is Encode into a byte slice.
func Marshal(f Format, tags []domain.Tag) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f, tags); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCSV(w io.Writer, tags []domain.Tag) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tags {
		if err := cw.Write([]string{t.ID, t.Title, t.Slug, strconv.Itoa(t.AmountOfVideos)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
