package config

import (
	"reflect"
	"strings"
)

// TagName is the struct tag that maps component input fields to arguments.
const TagName = "scene"

// FieldName returns the argument name a struct field binds to, or "" when the
// field is not an input.
func FieldName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get(TagName), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}
