package models

// Category selects one classification subset
type Category string

const (
	CategoryNone      Category = ""
	CategoryBlocked   Category = "blocked"
	CategoryDisabled  Category = "disabled"
	CategoryExpired   Category = "expired"
	CategoryCompliant Category = "compliant"
)

// Categories lists the selectable categories in display order
var Categories = []Category{CategoryBlocked, CategoryDisabled, CategoryExpired, CategoryCompliant}

// Valid reports whether c is a known category or none
func (c Category) Valid() bool {
	switch c {
	case CategoryNone, CategoryBlocked, CategoryDisabled, CategoryExpired, CategoryCompliant:
		return true
	}
	return false
}

// Title is the table heading shown for the category
func (c Category) Title() string {
	switch c {
	case CategoryBlocked:
		return "Solo Usuarios Bloqueados"
	case CategoryDisabled:
		return "Solo Usuarios Deshabilitados"
	case CategoryExpired:
		return "Solo Claves Expiradas"
	case CategoryCompliant:
		return "Solo Usuarios al Día"
	default:
		return "Todos los Usuarios"
	}
}

// FilterState is the session-scoped selection: at most one category plus an
// optional search term. The zero value means "no filter".
type FilterState struct {
	Category Category `json:"category"`
	Search   string   `json:"search"`
}

// FilterAction names a user action that changes the filter state
type FilterAction string

const (
	ActionSelectCategory FilterAction = "select_category"
	ActionClearCategory  FilterAction = "clear_category"
	ActionSetSearch      FilterAction = "set_search"
	ActionClearSearch    FilterAction = "clear_search"
	ActionClearAll       FilterAction = "clear_all"
)

// FilterEvent is a single filter state transition request
type FilterEvent struct {
	Action   FilterAction `json:"action" validate:"required,oneof=select_category clear_category set_search clear_search clear_all"`
	Category Category     `json:"category,omitempty" validate:"required_if=Action select_category,omitempty,oneof=blocked disabled expired compliant"`
	Search   string       `json:"search,omitempty" validate:"max=256"`
}
