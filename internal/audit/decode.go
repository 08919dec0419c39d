package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// RawRecord is one decoded JSON object from the upload
type RawRecord map[string]interface{}

// Decode reads a JSON array of objects. Numbers are kept as json.Number so
// that numeric strings and numbers coerce the same way later on.
func Decode(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	// PowerShell's Out-File writes a UTF-8 BOM by default
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return nil, &InputError{Reason: err.Error(), Err: ErrMalformedInput}
	}
	if dec.More() {
		return nil, &InputError{Reason: "trailing data after top-level array", Err: ErrMalformedInput}
	}

	records := make([]RawRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &InputError{
				Reason: fmt.Sprintf("element %d is %s, not an object", i, jsonKind(item)),
				Err:    ErrMalformedInput,
			}
		}
		records = append(records, RawRecord(obj))
	}

	return records, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case []interface{}:
		return "an array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
