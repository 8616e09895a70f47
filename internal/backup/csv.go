package backup

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// WriteCSV writes the records of one kind as CSV with a header row. Columns
// follow the csv tags of the record type; an empty list still gets a header.
func WriteCSV(w io.Writer, src Source, kind types.Kind) error {
	var (
		data []byte
		err  error
	)
	switch kind {
	case types.KindCustomer:
		var rows []types.Customer
		if rows, err = src.FetchCustomers(""); err != nil {
			return fmt.Errorf("export customers: %w", err)
		}
		data, err = marshalCSV(rows, types.Customer{})
	case types.KindWaskat:
		var rows []types.Waskat
		if rows, err = src.FetchWaskats(""); err != nil {
			return fmt.Errorf("export waskat: %w", err)
		}
		data, err = marshalCSV(rows, types.Waskat{})
	default:
		return types.ErrInvalidKind
	}
	if err != nil {
		return fmt.Errorf("encode %s csv: %w", kind, err)
	}
	_, err = w.Write(data)
	return err
}

func marshalCSV[T any](rows []T, zero T) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	enc := csvutil.NewEncoder(w)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(zero); err != nil {
			return nil, err
		}
	} else if err := enc.Encode(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
