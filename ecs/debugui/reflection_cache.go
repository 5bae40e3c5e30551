package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported struct field shown by the inspector.
type FieldInfo struct {
	Name  string
	Index int
	Type  reflect.Type
}

// ReflectionCache memoizes the exported fields of struct types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the exported fields of t, or nil when t is not a struct.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: f.Name, Index: i, Type: f.Type})
		}
	}

	rc.mu.Lock()
	rc.fields[t] = fields
	rc.mu.Unlock()
	return fields
}

var fieldCache = NewReflectionCache()
