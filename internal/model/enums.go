package model

// Gender values as stored by the backend.
type Gender string

const (
	GenderBoy  Gender = "Maschio"
	GenderGirl Gender = "Femmina"
)

// GenderCategory restricts which genders a slot accepts.
type GenderCategory string

const (
	CategoryMixed GenderCategory = "Misto"
	CategoryBoys  GenderCategory = "Solo ragazzi"
	CategoryGirls GenderCategory = "Solo ragazze"
)

// IsGenderAllowed reports whether a student of the given gender may enroll in
// a slot of the given category. Unknown categories admit nobody.
func IsGenderAllowed(category GenderCategory, gender Gender) bool {
	switch category {
	case CategoryMixed:
		return gender == GenderBoy || gender == GenderGirl
	case CategoryBoys:
		return gender == GenderBoy
	case CategoryGirls:
		return gender == GenderGirl
	default:
		return false
	}
}

// ViewMode is the persisted slot-list display preference.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode maps a persisted string to a ViewMode, falling back to grid
// for anything outside the known set.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewModeGrid, ViewModeList:
		return ViewMode(s)
	default:
		return ViewModeGrid
	}
}

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)
