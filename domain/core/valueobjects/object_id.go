package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const idPrefix = "id-"

// ObjectID is a value object identifying a node of the model graph.
// Identifiers follow the "id-" + 32 hex digits form used by model files.
type ObjectID struct {
	value string
}

// NewObjectID creates a new random ObjectID
func NewObjectID() ObjectID {
	return ObjectID{value: idPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")}
}

// NewObjectIDFromString creates an ObjectID from an existing string.
// Any non-empty identifier is accepted so that ids from imported models survive.
func NewObjectIDFromString(id string) (ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ObjectID{}, errors.New("object ID cannot be empty")
	}
	return ObjectID{value: id}, nil
}

// String returns the string representation of the ObjectID
func (id ObjectID) String() string {
	return id.value
}

// Equals checks if two ObjectIDs are equal
func (id ObjectID) Equals(other ObjectID) bool {
	return id.value == other.value
}

// IsZero checks if the ObjectID is the zero value
func (id ObjectID) IsZero() bool {
	return id.value == ""
}

// IsGenerated reports whether the id has the generated "id-<hex>" shape
func (id ObjectID) IsGenerated() bool {
	if !strings.HasPrefix(id.value, idPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(id.value, idPrefix))
	return err == nil
}

// MarshalJSON implements json.Marshaler
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ObjectID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
