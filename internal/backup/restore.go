package backup

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// Sink is the write side of the store that a restore needs.
type Sink interface {
	Exists(kind types.Kind, id int64) (bool, error)
	Insert(rec types.Record) (int64, error)
	InsertWithID(rec types.Record) (bool, error)
}

// Importer merges backup documents into a Sink. Existing rows always win:
// an entry whose id is already present is skipped, never overwritten.
type Importer struct {
	dst Sink
}

// NewImporter returns an Importer writing into dst.
func NewImporter(dst Sink) *Importer {
	return &Importer{dst: dst}
}

// RestoreBytes validates data and restores it. A document that fails
// validation returns an error wrapping ErrMalformedBackup and writes nothing.
func (im *Importer) RestoreBytes(data []byte) (types.RestoreReport, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return types.RestoreReport{}, err
	}
	return im.Restore(doc)
}

// Restore inserts every customer entry and then every waskat entry whose id
// is not yet in the store. Failing entries are counted and skipped.
func (im *Importer) Restore(doc *RawDocument) (types.RestoreReport, error) {
	if doc == nil {
		return types.RestoreReport{}, fmt.Errorf("%w: no document", types.ErrMalformedBackup)
	}

	var report types.RestoreReport
	report.Customers = im.restoreKind(types.KindCustomer, doc.Customers, func(raw json.RawMessage) (types.Record, error) {
		return decodeCustomer(raw)
	})
	report.Waskat = im.restoreKind(types.KindWaskat, doc.Waskat, func(raw json.RawMessage) (types.Record, error) {
		return decodeWaskat(raw)
	})

	log.Info("restore complete",
		"customersInserted", report.Customers.Inserted, "customerErrors", report.Customers.Errors,
		"waskatInserted", report.Waskat.Inserted, "waskatErrors", report.Waskat.Errors)
	return report, nil
}

func (im *Importer) restoreKind(kind types.Kind, entries []json.RawMessage, decode func(json.RawMessage) (types.Record, error)) types.Tally {
	var tally types.Tally
	for i, raw := range entries {
		inserted, err := im.restoreOne(kind, raw, decode)
		if err != nil {
			log.Warn("restore entry failed", "kind", kind, "index", i, "err", err)
			tally.Errors++
			continue
		}
		if inserted {
			tally.Inserted++
		}
	}
	return tally
}

func (im *Importer) restoreOne(kind types.Kind, raw json.RawMessage, decode func(json.RawMessage) (types.Record, error)) (bool, error) {
	rec, err := decode(raw)
	if err != nil {
		return false, err
	}

	id := rec.RecordID()
	if id == 0 {
		_, err := im.dst.Insert(rec)
		return err == nil, err
	}

	exists, err := im.dst.Exists(kind, id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return im.dst.InsertWithID(rec)
}
