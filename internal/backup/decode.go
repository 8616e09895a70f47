package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// Entries come from files written by older app versions and by hand, so
// decoding is lenient: text fields take strings, numbers, booleans or null,
// and flags take booleans, 0/1 or "1"/"true".

var errNotObject = errors.New("entry is not an object")

type entry map[string]json.RawMessage

func parseEntry(raw json.RawMessage) (entry, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, errNotObject
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeCustomer(raw json.RawMessage) (*types.Customer, error) {
	e, err := parseEntry(raw)
	if err != nil {
		return nil, err
	}
	c := &types.Customer{}
	if c.ID, err = e.id(); err != nil {
		return nil, err
	}
	texts := []struct {
		key string
		dst *string
	}{
		{"name", &c.Name},
		{"phoneNumber", &c.PhoneNumber},
		{"qad", &c.Qad},
		{"barDaman", &c.BarDaman},
		{"baghal", &c.Baghal},
		{"shana", &c.Shana},
		{"astin", &c.Astin},
		{"tunban", &c.Tunban},
		{"pacha", &c.Pacha},
		{"daman", &c.Daman},
		{"yakhan", &c.Yakhan},
		{"yakhanValue", &c.YakhanValue},
		{"caff", &c.Caff},
		{"caffValue", &c.CaffValue},
		{"jeeb", &c.Jeeb},
		{"tunbanStyle", &c.TunbanStyle},
		{"farmaish", &c.Farmaish},
	}
	for _, f := range texts {
		if *f.dst, err = e.text(f.key); err != nil {
			return nil, err
		}
	}
	if c.YakhanBin, err = e.flag("yakhanBin"); err != nil {
		return nil, err
	}
	if c.JeebTunban, err = e.flag("jeebTunban"); err != nil {
		return nil, err
	}
	if c.RegistrationDate, err = e.registrationDate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeWaskat(raw json.RawMessage) (*types.Waskat, error) {
	e, err := parseEntry(raw)
	if err != nil {
		return nil, err
	}
	w := &types.Waskat{}
	if w.ID, err = e.id(); err != nil {
		return nil, err
	}
	texts := []struct {
		key string
		dst *string
	}{
		{"name", &w.Name},
		{"phoneNumber", &w.PhoneNumber},
		{"qad", &w.Qad},
		{"shana", &w.Shana},
		{"baghal", &w.Baghal},
		{"kamar", &w.Kamar},
		{"soreen", &w.Soreen},
		{"astin", &w.Astin},
		{"yakhan", &w.Yakhan},
		{"yakhanValue", &w.YakhanValue},
		{"farmaish", &w.Farmaish},
	}
	for _, f := range texts {
		if *f.dst, err = e.text(f.key); err != nil {
			return nil, err
		}
	}
	if w.RegistrationDate, err = e.registrationDate(); err != nil {
		return nil, err
	}
	return w, nil
}

// value decodes one field, keeping numbers as json.Number. Absent fields
// decode as nil.
func (e entry) value(key string) (any, error) {
	raw, ok := e[key]
	if !ok {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

// id returns the entry's id, or zero when it has none. Integral numbers
// such as 3.0 and decimal strings such as "7" are accepted, as SQLite's
// integer key affinity does.
func (e entry) id() (int64, error) {
	v, err := e.value("id")
	if err != nil || v == nil {
		return 0, err
	}
	var text string
	switch x := v.(type) {
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
	default:
		return 0, fmt.Errorf("id %v: %w", v, types.ErrInvalidID)
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt64 {
			return 0, fmt.Errorf("id %q: %w", text, types.ErrInvalidID)
		}
		id = int64(f)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id %q: %w", text, types.ErrInvalidID)
	}
	return id, nil
}

func (e entry) text(key string) (string, error) {
	v, err := e.value(key)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if !x {
			return "", nil
		}
		return "true", nil
	default:
		return "", fmt.Errorf("%s: %w", key, types.ErrInvalidData)
	}
}

func (e entry) flag(key string) (bool, error) {
	v, err := e.value(key)
	if err != nil {
		return false, err
	}
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, fmt.Errorf("%s: %w", key, types.ErrInvalidData)
		}
		return f != 0, nil
	case string:
		ok, err := strconv.ParseBool(x)
		return err == nil && ok, nil
	default:
		return false, fmt.Errorf("%s: %w", key, types.ErrInvalidData)
	}
}

// registrationDate prefers registrationDate and falls back to the misspelled
// key older backups used. Empty means the store assigns today.
func (e entry) registrationDate() (string, error) {
	date, err := e.text("registrationDate")
	if err != nil || date != "" {
		return date, err
	}
	return e.text("regestrationDate")
}
