package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// flag is a boolean written to JSON as 0 or 1, the way the shop's existing
// backup files store it. It reads true/false, numbers and "1"/"true" too.
type flag bool

func (f flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *flag) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = flag(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return fmt.Errorf("flag %s: %w", x, err)
		}
		*f = n != 0
	case string:
		b, err := strconv.ParseBool(x)
		*f = flag(err == nil && b)
	default:
		return fmt.Errorf("flag: unexpected %s", bytes.TrimSpace(data))
	}
	return nil
}
