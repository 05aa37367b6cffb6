package util

import (
	"encoding/json"
	"errors"
	"reflect"
)

// SerializeToJSONBytes serializes the given value to JSON.
func SerializeToJSONBytes(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// DeserializeFromJSONBytes deserializes data into the value v points to.
// Empty input leaves v untouched.
func DeserializeFromJSONBytes(data []byte, v interface{}) error {
	if reflect.ValueOf(v).Kind() != reflect.Ptr {
		return errors.New("input must be a pointer")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
