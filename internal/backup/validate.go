package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

// RawDocument is a structurally valid backup whose entries have not been
// decoded yet. Entries are checked one at a time during Restore.
type RawDocument struct {
	Customers  []json.RawMessage
	Waskat     []json.RawMessage
	BackupDate string
	AppVersion string
}

// Valid reports whether data is a structurally valid backup document.
func Valid(data []byte) bool {
	return Validate(data) == nil
}

// Validate checks the document shape. customers and waskat must be arrays;
// backupDate and appVersion, when set, must be strings. Entry contents are
// not inspected. Errors wrap ErrMalformedBackup.
func Validate(data []byte) error {
	_, err := ParseDocument(data)
	return err
}

// ParseDocument validates data and returns it with raw entries.
func ParseDocument(data []byte) (*RawDocument, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, malformed("not a JSON object: %v", err)
	}
	if top == nil {
		return nil, malformed("document is null")
	}

	doc := &RawDocument{}
	var err error
	if doc.Customers, err = entries(top, "customers"); err != nil {
		return nil, err
	}
	if doc.Waskat, err = entries(top, "waskat"); err != nil {
		return nil, err
	}
	if doc.BackupDate, err = optionalString(top, "backupDate"); err != nil {
		return nil, err
	}
	if doc.AppVersion, err = optionalString(top, "appVersion"); err != nil {
		return nil, err
	}
	return doc, nil
}

func entries(top map[string]json.RawMessage, key string) ([]json.RawMessage, error) {
	raw, ok := top[key]
	if !ok {
		return nil, malformed("%s is missing", key)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, malformed("%s is not an array", key)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, malformed("%s: %v", key, err)
	}
	if list == nil {
		list = []json.RawMessage{}
	}
	return list, nil
}

func optionalString(top map[string]json.RawMessage, key string) (string, error) {
	raw, ok := top[key]
	if !ok || isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed("%s is not a string", key)
	}
	return s, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", types.ErrMalformedBackup, fmt.Sprintf(format, args...))
}
