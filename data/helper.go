package data

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	NotFoundError  = errors.New("not found")
	DuplicateError = errors.New("duplicate id")
	MissingIDError = errors.New("missing id")
)

// entityID reads the ID field of entity, or of the struct entity points to.
// A zero ID is reported as MissingIDError.
func entityID[T any, ID comparable](entity T) (ID, error) {
	var id ID
	value := reflect.Indirect(reflect.ValueOf(entity))
	if value.Kind() != reflect.Struct {
		return id, fmt.Errorf("entity %T is not a struct", entity)
	}
	field := value.FieldByName("ID")
	if !field.IsValid() {
		return id, fmt.Errorf("entity %s has no ID field", value.Type())
	}
	id, ok := field.Interface().(ID)
	if !ok {
		return id, fmt.Errorf("entity %s: ID is %s, not %T", value.Type(), field.Type(), id)
	}
	if field.IsZero() {
		return id, fmt.Errorf("entity %s: %w", value.Type(), MissingIDError)
	}
	return id, nil
}
