package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/louisbranch/lastro/internal/platform/timeouts"
)

// Sheet column headers.
const (
	ColumnLink        = "Link"
	ColumnTheme       = "Tema"
	ColumnName        = "Nome"
	ColumnCategories  = "Categorias"
	ColumnDirector    = "Realizador"
	ColumnSound       = "Som"
	ColumnProduction  = "Produção"
	ColumnSupport     = "Apoio"
	ColumnAssistance  = "Assistência"
	ColumnResearch    = "Pesquisa"
	ColumnRegion      = "Região"
	ColumnDistrict    = "Distrito/Ilha"
	ColumnCouncil     = "Concelho"
	ColumnPlace       = "Local"
	ColumnInstruments = "Instrumentos"
	ColumnKeywords    = "Palavras Chave"
	ColumnConcepts    = "Conceitos-chave"
	ColumnStory       = "História (textos que acompanham vídeos)"
	ColumnOtherInfo   = "Outras Informações"
	ColumnBiographies = "Biografias"
)

// Row is one data line of the sheet. Line is the 1-based line number in the
// file, counting the header.
type Row struct {
	Line   int
	values map[string]string
}

// Get returns the cell under column, or "" when the sheet has no such column.
func (r Row) Get(column string) string {
	return r.values[column]
}

// NewRow builds a row from column values.
func NewRow(line int, values map[string]string) Row {
	if values == nil {
		values = map[string]string{}
	}
	return Row{Line: line, values: values}
}

// ReadSheet parses a CSV export. The first record is the header and must
// include the Link column.
func ReadSheet(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("sheet is empty")
		}
		return nil, fmt.Errorf("read sheet header: %w", err)
	}
	columns := make([]string, len(header))
	hasLink := false
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[i] = name
		if name == ColumnLink {
			hasLink = true
		}
	}
	if !hasLink {
		return nil, fmt.Errorf("sheet header is missing the %q column", ColumnLink)
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sheet line %d: %w", line, err)
		}
		values := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(record) && column != "" {
				values[column] = record[i]
			}
		}
		rows = append(rows, Row{Line: line, values: values})
	}
	return rows, nil
}

// OpenSheet opens a sheet from an http(s) URL or a local path.
func OpenSheet(ctx context.Context, source string, client *http.Client) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("sheet source is required")
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open sheet file: %w", err)
		}
		return file, nil
	}
	if client == nil {
		client = &http.Client{Timeout: timeouts.HTTPRequest}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
