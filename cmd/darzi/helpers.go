package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

var validKindsStr = func() string {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}()

func parseKindArg(s string) (types.Kind, error) {
	kind, err := types.ParseKind(s)
	if err != nil {
		return "", fmt.Errorf("%w %q (valid: %s)", types.ErrInvalidKind, s, validKindsStr)
	}
	return kind, nil
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %q", types.ErrInvalidID, s)
	}
	return id, nil
}

// parseRecordJSON decodes data into a new record of kind. Unknown fields are
// rejected so typos in measurement names do not go unnoticed.
func parseRecordJSON(kind types.Kind, data string) (types.Record, error) {
	rec := kind.New()
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return rec, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
