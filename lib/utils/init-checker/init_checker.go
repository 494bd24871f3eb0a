package initchecker

import (
	"fmt"
	"reflect"
	"sort"
)

// CheckInit паникует, если зависимость из deps не инициализирована
func CheckInit(deps map[string]any) {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if isNil(deps[name]) {
			panic(fmt.Sprintf("%s: зависимость не инициализирована", name))
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}
