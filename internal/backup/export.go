// Package backup exports the record store to a JSON document and merges such
// documents back in without overwriting existing rows.
package backup

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/powerman/structlog"

	"github.com/mesh-intelligence/darzi/internal/fileio"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

var log = structlog.New(structlog.KeyUnit, "backup")

// TimeLayout is the backupDate format: ISO-8601 in UTC with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Source is the read side of the store that an export needs.
type Source interface {
	FetchCustomers(search string) ([]types.Customer, error)
	FetchWaskats(search string) ([]types.Waskat, error)
}

// Exporter snapshots a Source into a backup document.
type Exporter struct {
	src     Source
	version string
	now     func() time.Time
}

// NewExporter returns an Exporter that stamps documents with version.
func NewExporter(src Source, version string) *Exporter {
	return &Exporter{src: src, version: version, now: time.Now}
}

// ExportAll reads every customer and waskat record. Empty kinds are emitted
// as empty arrays.
func (e *Exporter) ExportAll() (*types.Document, error) {
	customers, err := e.src.FetchCustomers("")
	if err != nil {
		return nil, fmt.Errorf("export customers: %w", err)
	}
	waskats, err := e.src.FetchWaskats("")
	if err != nil {
		return nil, fmt.Errorf("export waskat: %w", err)
	}
	if customers == nil {
		customers = []types.Customer{}
	}
	if waskats == nil {
		waskats = []types.Waskat{}
	}

	doc := &types.Document{
		Customers:  customers,
		Waskat:     waskats,
		BackupDate: e.now().UTC().Format(TimeLayout),
		AppVersion: e.version,
	}
	log.Info("export complete", "customers", len(customers), "waskat", len(waskats))
	return doc, nil
}

// FileName returns the backup file name for a document taken at t.
func FileName(t time.Time) string {
	return "backup_" + t.UTC().Format(types.DateLayout) + ".json"
}

// Marshal encodes doc the way backup files are written.
func Marshal(doc *types.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes doc into dir under FileName and returns the full path.
// An existing backup from the same day is replaced atomically.
func (e *Exporter) WriteFile(dir string, doc *types.Document) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	taken, err := time.Parse(TimeLayout, doc.BackupDate)
	if err != nil {
		taken = e.now()
	}
	path := filepath.Join(dir, FileName(taken))
	if err := fileio.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	log.Debug("backup written", "path", path, "bytes", len(data))
	return path, nil
}
