package reflect

import (
	"reflect"
	"sync"
)

var typeNameCache sync.Map

// TypeName returns the printable name of T, including interface types.
func TypeName[T any]() string {
	t := reflect.TypeFor[T]()
	if cached, ok := typeNameCache.Load(t); ok {
		return cached.(string)
	}

	name := t.String()
	typeNameCache.Store(t, name)
	return name
}
