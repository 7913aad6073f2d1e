// Package deepmerge provides deep copies and strong-over-weak merging of
// seed maps.
package deepmerge

import "reflect"

// Clone returns a deep copy of value. Maps, slices, arrays, pointers, and
// structs are copied recursively; scalars are returned as-is.
func Clone(value any) any {
	if value == nil {
		return nil
	}
	cloned := cloneValue(reflect.ValueOf(value))
	if !cloned.IsValid() {
		return nil
	}
	return cloned.Interface()
}

// Merge composes seed layers ordered strongest to weakest into a new map.
// Nested maps merge per key with stronger entries winning; any other value
// from a stronger layer replaces the weaker one wholesale. Inputs are never
// mutated and the result shares no references with them.
func Merge(layers ...map[string]any) map[string]any {
	var merged map[string]any
	for i := len(layers) - 1; i >= 0; i-- {
		merged = mergeSeeds(layers[i], merged)
	}
	return merged
}

func mergeSeeds(strong, weak map[string]any) map[string]any {
	if strong == nil {
		if weak == nil {
			return nil
		}
		return mergeSeeds(weak, nil)
	}
	out := make(map[string]any, len(strong)+len(weak))
	for key, value := range weak {
		out[key] = value
	}
	for key, value := range strong {
		if strongMap, ok := value.(map[string]any); ok {
			if weakMap, ok := out[key].(map[string]any); ok {
				out[key] = mergeSeeds(strongMap, weakMap)
				continue
			}
		}
		out[key] = Clone(value)
	}
	return out
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		return reflect.ValueOf(v.Interface())
	}
}
