package models

// LookupKind — справочная таблица.
type LookupKind string

const (
	LookupCategories   LookupKind = "categories"
	LookupStatuses     LookupKind = "statuses"
	LookupUniversities LookupKind = "universities"
	LookupCourses      LookupKind = "courses"
	LookupRoles        LookupKind = "roles"
)

// Valid сообщает, известна ли таблица.
func (k LookupKind) Valid() bool {
	switch k {
	case LookupCategories, LookupStatuses, LookupUniversities, LookupCourses, LookupRoles:
		return true
	default:
		return false
	}
}

// LookupItem — строка справочника. UniversityID заполнен только для курсов.
type LookupItem struct {
	ID           int64
	Name         string
	UniversityID *int64
}
