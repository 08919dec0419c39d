package models

import (
	"time"
)

// Summary holds the aggregate counters shown above the table
type Summary struct {
	Total     int `json:"total"`
	Blocked   int `json:"blocked"`
	Disabled  int `json:"disabled"`
	Expired   int `json:"expired"`
	Compliant int `json:"compliant"`
	Anomalies int `json:"anomalies"`
}

// Column labels for the display table and the export
const (
	ColumnName        = "Nombre"
	ColumnEmail       = "Correo"
	ColumnStatus      = "Estado"
	ColumnPasswordAge = "Días Antigüedad"
	ColumnLastChange  = "Fecha Cambio"
)

// Columns is the fixed column order of the display table
var Columns = []string{ColumnName, ColumnEmail, ColumnStatus, ColumnPasswordAge, ColumnLastChange}

// TableRow is one display-ready row
type TableRow struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	PasswordAge int    `json:"password_age_days"`
	LastChange  string `json:"last_change"`
	Highlight   bool   `json:"highlight"`
}

// Table is the projected, sorted view of the selected accounts
type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// Report is everything a renderer needs for one pass of the pipeline
type Report struct {
	SessionID string      `json:"session_id"`
	Filename  string      `json:"filename,omitempty"`
	Title     string      `json:"title"`
	Summary   Summary     `json:"summary"`
	Filter    FilterState `json:"filter"`
	Table     Table       `json:"table"`
	Warning   string      `json:"warning,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
