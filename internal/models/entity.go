package models

// EntityType names one of the seeded entity collections.
type EntityType string

const (
	EntityDistrict EntityType = "district"
	EntitySchool   EntityType = "school"
	EntityTeacher  EntityType = "teacher"
	EntityStudent  EntityType = "student"
)

// Valid reports whether t names a known collection.
func (t EntityType) Valid() bool {
	switch t {
	case EntityDistrict, EntitySchool, EntityTeacher, EntityStudent:
		return true
	}
	return false
}

// EntityRef points at an entity by type and id, carrying its display name.
type EntityRef struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
}

// Matches reports whether the reference targets the given entity.
func (r EntityRef) Matches(t EntityType, id string) bool {
	return r.Type == t && r.ID == id
}
