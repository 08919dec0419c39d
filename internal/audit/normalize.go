package audit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/account-compliance-api/internal/models"
	null "gopkg.in/nullbio/null.v6"
)

// Dataset is a normalized upload. Accounts keep input order.
type Dataset struct {
	Accounts  []models.Account
	Anomalies []models.Anomaly
}

// Ages beyond this are treated as malformed rather than overflowing int
const maxAgeMagnitude = 1e9

// Normalize converts raw records into accounts. It only fails when the
// upload as a whole is unusable; per-record problems become anomalies.
func Normalize(records []RawRecord) (*Dataset, error) {
	if err := checkFields(records); err != nil {
		return nil, err
	}

	ds := &Dataset{Accounts: make([]models.Account, 0, len(records))}
	for i, rec := range records {
		ds.Accounts = append(ds.Accounts, normalizeRecord(i, rec, &ds.Anomalies))
	}
	return ds, nil
}

// checkFields enforces that at least one known field exists and that every
// required field appears in at least one record
func checkFields(records []RawRecord) error {
	seen := make(map[string]bool, len(models.KnownFields))
	for _, rec := range records {
		for _, f := range models.KnownFields {
			if _, ok := rec[f]; ok {
				seen[f] = true
			}
		}
	}

	if len(seen) == 0 {
		return &InputError{
			Reason: fmt.Sprintf("expected fields: %s", strings.Join(models.KnownFields, ", ")),
			Err:    ErrNoKnownFields,
		}
	}

	var missing []string
	for _, f := range models.RequiredFields {
		if !seen[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &InputError{Reason: strings.Join(missing, ", "), Err: ErrMissingRequiredField}
	}
	return nil
}

func normalizeRecord(idx int, rec RawRecord, anomalies *[]models.Anomaly) models.Account {
	note := func(field, msg string, value interface{}) {
		*anomalies = append(*anomalies, models.Anomaly{Index: idx, Field: field, Message: msg, Value: value})
	}

	acct := models.Account{Index: idx}

	name, ok := textField(rec, models.FieldDisplayName)
	if !ok {
		note(models.FieldDisplayName, "display name missing", nil)
	}
	acct.DisplayName = name

	email, ok := textField(rec, models.FieldEmail)
	if !ok {
		note(models.FieldEmail, "email missing", nil)
	}
	acct.Email = email

	status, ok := textField(rec, models.FieldStatus)
	if !ok {
		note(models.FieldStatus, "status missing", nil)
	}
	acct.Status = status

	rawAge, present := rec[models.FieldPasswordAge]
	age, ok := coerceAge(rawAge)
	switch {
	case !present:
		note(models.FieldPasswordAge, "password age missing, defaulted to 0", nil)
	case !ok:
		note(models.FieldPasswordAge, "password age is not numeric, defaulted to 0", rawAge)
	case age < 0:
		note(models.FieldPasswordAge, "password age is negative", age)
	}
	acct.PasswordAgeDays = age

	raw := ReadRawDate(rec[models.FieldLastChange])
	if t, ok := raw.Parse(); ok {
		acct.LastChange = null.TimeFrom(t)
		acct.LastChangeDisplay = t.Format(models.DisplayDateLayout)
	} else if raw.Kind != DateAbsent {
		note(models.FieldLastChange, "unparsable date", raw.Text)
	}

	return acct
}

// textField returns the field as a string. The bool is false only when the
// key is absent; null decodes to an empty string.
func textField(rec RawRecord, key string) (string, bool) {
	v, ok := rec[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	default:
		return fmt.Sprint(val), true
	}
}

// coerceAge converts a JSON number or numeric string to whole days.
// Fractions are truncated. Anything else yields 0, false.
func coerceAge(v interface{}) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		return parseAge(val.String())
	case string:
		return parseAge(val)
	case float64:
		return floatAge(val)
	case int:
		return val, true
	case int64:
		return floatAge(float64(val))
	default:
		return 0, false
	}
}

func parseAge(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return floatAge(float64(n))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatAge(f)
}

func floatAge(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxAgeMagnitude {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
