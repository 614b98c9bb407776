package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/vidinfo"
)

// ListingAggregator turns the rows of a listing export into a playlist of
// references. It never resolves the entries.
type ListingAggregator struct {
	// HeaderRows is the number of leading rows to discard.
	HeaderRows int

	// IDColumn is the zero-based column holding the item identifier.
	// Rows with fewer columns are dropped.
	IDColumn int

	// Prefix filters identifiers; rows whose identifier lacks it are dropped.
	Prefix string

	// URLTemplate is a fmt format with a single %s for the identifier.
	URLTemplate string

	// ExtractorHint is attached to every produced reference.
	ExtractorHint string
}

// Aggregate builds a playlist from rows, preserving row order.
func (a *ListingAggregator) Aggregate(rows [][]string, id, title string) *vidinfo.Result {
	entries := make([]*vidinfo.Result, 0, len(rows))
	for i, row := range rows {
		if i < a.HeaderRows {
			continue
		}
		if len(row) <= a.IDColumn {
			continue
		}
		itemID := strings.Trim(strings.TrimSpace(row[a.IDColumn]), `"'`)
		if itemID == "" || !strings.HasPrefix(itemID, a.Prefix) {
			continue
		}
		url := fmt.Sprintf(a.URLTemplate, itemID)
		entries = append(entries, vidinfo.ReferenceResult(url, a.ExtractorHint))
	}
	return vidinfo.PlaylistResult(id, title, entries)
}

// ParseCSV splits a CSV document into rows. Records that fail to parse are
// skipped; blank lines produce no row.
func ParseCSV(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			break
		}
		rows = append(rows, rec)
	}
	return rows
}
