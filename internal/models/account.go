package models

import (
	null "gopkg.in/nullbio/null.v6"
)

// Source field names in the directory export
const (
	FieldDisplayName = "DisplayName"
	FieldEmail       = "EmailAddress"
	FieldStatus      = "Estado"
	FieldPasswordAge = "DiasDesdeCambioClave"
	FieldLastChange  = "UltimaFechaCambio"
)

// RequiredFields must each appear in at least one record of an upload
var RequiredFields = []string{FieldStatus, FieldPasswordAge, FieldDisplayName}

// KnownFields are all the source fields the pipeline understands
var KnownFields = []string{FieldDisplayName, FieldEmail, FieldStatus, FieldPasswordAge, FieldLastChange}

// Account statuses observed in directory exports. Status is not a closed set:
// unknown values pass through normalization untouched.
const (
	StatusActive   = "Activo"
	StatusBlocked  = "Bloqueado"
	StatusDisabled = "Deshabilitado"
)

// DefaultPasswordMaxAgeDays is the age above which a password counts as expired
const DefaultPasswordMaxAgeDays = 90

// DisplayDateLayout is the day/month/year layout used for LastChangeDisplay
const DisplayDateLayout = "02/01/2006"

// Account is one normalized directory user
type Account struct {
	Index             int       `json:"-"`
	DisplayName       string    `json:"display_name"`
	Email             string    `json:"email"`
	Status            string    `json:"status"`
	PasswordAgeDays   int       `json:"password_age_days"`
	LastChange        null.Time `json:"last_change"`
	LastChangeDisplay string    `json:"last_change_display"`
}

// Anomaly records a recoverable problem with a single input record.
// The offending field was replaced with a safe default.
type Anomaly struct {
	Index   int         `json:"index"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}
