package response

import (
	"bytes"
	"encoding"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	maxSafeInteger = 1<<53 - 1
	minSafeInteger = -maxSafeInteger
)

var (
	errCycle          = errors.New("json: unsupported value: encountered a cycle")
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

type visit struct {
	ptr  uintptr
	kind reflect.Kind
	len  int
}

// object is a struct rendered as JSON object with fields in declaration order
type object struct {
	names  []string
	values []interface{}
}

// field represents struct field candidate for JSON object
type field struct {
	name      string
	depth     int
	tagged    bool
	omitEmpty bool
	quoted    bool
	value     reflect.Value
}

// marshalJSON returns compact JSON text of value with HTML characters left as is,
// big.Int values and integers outside of the safe integer range are emitted as decimal strings.
func marshalJSON(value interface{}) (string, error) {
	normalized, err := normalize(value, map[visit]bool{})
	if err != nil {
		return "", err
	}
	return encodeJSON(normalized)
}

func encodeJSON(value interface{}) (string, error) {
	buffer := new(bytes.Buffer)
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// MarshalJSON writes fields in order, values are already normalized
func (o *object) MarshalJSON() ([]byte, error) {
	buffer := new(bytes.Buffer)
	buffer.WriteByte('{')
	for i, name := range o.names {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := encodeJSON(name)
		if err != nil {
			return nil, err
		}
		item, err := encodeJSON(o.values[i])
		if err != nil {
			return nil, err
		}
		buffer.WriteString(key)
		buffer.WriteByte(':')
		buffer.WriteString(item)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func normalize(value interface{}, path map[visit]bool) (interface{}, error) {
	switch actual := value.(type) {
	case nil:
		return nil, nil
	case json.Number:
		return normalizeNumber(actual), nil
	case *big.Int:
		if actual == nil {
			return nil, nil
		}
		return actual.String(), nil
	case big.Int:
		return actual.String(), nil
	case json.Marshaler, encoding.TextMarshaler:
		return value, nil
	case string, bool, float64, float32:
		return value, nil
	}

	aValue := reflect.ValueOf(value)
	switch aValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := aValue.Int(); n > maxSafeInteger || n < minSafeInteger {
			return strconv.FormatInt(n, 10), nil
		}
		return value, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n := aValue.Uint(); n > maxSafeInteger {
			return strconv.FormatUint(n, 10), nil
		}
		return value, nil
	case reflect.Ptr:
		if aValue.IsNil() {
			return nil, nil
		}
		key := visit{ptr: aValue.Pointer(), kind: reflect.Ptr}
		if path[key] {
			return nil, errCycle
		}
		path[key] = true
		defer delete(path, key)
		return normalize(aValue.Elem().Interface(), path)
	case reflect.Map:
		if aValue.IsNil() {
			return value, nil
		}
		key := visit{ptr: aValue.Pointer(), kind: reflect.Map}
		if path[key] {
			return nil, errCycle
		}
		path[key] = true
		defer delete(path, key)
		return normalizeMap(aValue, path)
	case reflect.Slice:
		if aValue.IsNil() || aValue.Type().Elem().Kind() == reflect.Uint8 {
			return value, nil
		}
		key := visit{ptr: aValue.Pointer(), kind: reflect.Slice, len: aValue.Len()}
		if path[key] {
			return nil, errCycle
		}
		path[key] = true
		defer delete(path, key)
		return normalizeItems(aValue, path)
	case reflect.Array:
		if aValue.Type().Elem().Kind() == reflect.Uint8 {
			return value, nil
		}
		return normalizeItems(aValue, path)
	case reflect.Struct:
		return normalizeStruct(aValue, path)
	}
	return value, nil
}

func normalizeItems(aValue reflect.Value, path map[visit]bool) (interface{}, error) {
	result := make([]interface{}, aValue.Len())
	for i := range result {
		item, err := normalize(aValue.Index(i).Interface(), path)
		if err != nil {
			return nil, err
		}
		result[i] = item
	}
	return result, nil
}

func normalizeMap(aValue reflect.Value, path map[visit]bool) (interface{}, error) {
	result := make(map[string]interface{}, aValue.Len())
	iter := aValue.MapRange()
	for iter.Next() {
		name, err := mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		item, err := normalize(iter.Value().Interface(), path)
		if err != nil {
			return nil, err
		}
		result[name] = item
	}
	return result, nil
}

// mapKey formats map key as encoding/json does: strings, text marshalers, then integers
func mapKey(key reflect.Value) (string, error) {
	if key.Kind() == reflect.String {
		return key.String(), nil
	}
	if key.Type().Implements(textMarshalerType) {
		if key.Kind() == reflect.Ptr && key.IsNil() {
			return "", nil
		}
		text, err := key.Interface().(encoding.TextMarshaler).MarshalText()
		return string(text), err
	}
	switch key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(key.Uint(), 10), nil
	}
	return "", errors.Errorf("json: unsupported map key type: %v", key.Type())
}

func normalizeStruct(aValue reflect.Value, path map[visit]bool) (interface{}, error) {
	fields := dominantFields(structFields(aValue, 0, map[uintptr]bool{}, nil))
	result := &object{}
	for _, candidate := range fields {
		if candidate.omitEmpty && isEmptyValue(candidate.value) {
			continue
		}
		var item interface{}
		var err error
		if candidate.quoted && isQuotable(candidate.value.Kind()) {
			item, err = encodeJSON(candidate.value.Interface())
		} else {
			item, err = normalize(candidate.value.Interface(), path)
		}
		if err != nil {
			return nil, err
		}
		result.names = append(result.names, candidate.name)
		result.values = append(result.values, item)
	}
	return result, nil
}

// structFields collects exported fields following json tags, embedded struct fields are promoted
func structFields(aValue reflect.Value, depth int, embedded map[uintptr]bool, fields []*field) []*field {
	aType := aValue.Type()
	for i := 0; i < aType.NumField(); i++ {
		structField := aType.Field(i)
		tag := structField.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		fieldValue := aValue.Field(i)
		if structField.Anonymous {
			embeddedType := structField.Type
			if embeddedType.Kind() == reflect.Ptr {
				embeddedType = embeddedType.Elem()
			}
			if !structField.IsExported() && embeddedType.Kind() != reflect.Struct {
				continue
			}
			if name == "" && embeddedType.Kind() == reflect.Struct {
				if fieldValue.Kind() == reflect.Ptr {
					if fieldValue.IsNil() || embedded[fieldValue.Pointer()] {
						continue
					}
					embedded[fieldValue.Pointer()] = true
					fieldValue = fieldValue.Elem()
				}
				fields = structFields(fieldValue, depth+1, embedded, fields)
				continue
			}
		} else if !structField.IsExported() {
			continue
		}
		if !fieldValue.CanInterface() {
			continue
		}
		tagged := name != ""
		if !tagged {
			name = structField.Name
		}
		fields = append(fields, &field{
			name:      name,
			depth:     depth,
			tagged:    tagged,
			omitEmpty: hasOption(options, "omitempty"),
			quoted:    hasOption(options, "string"),
			value:     fieldValue,
		})
	}
	return fields
}

// dominantFields resolves name conflicts: the shallowest field wins, a tagged one breaks a tie, otherwise the name is dropped
func dominantFields(fields []*field) []*field {
	byName := map[string][]*field{}
	for _, candidate := range fields {
		byName[candidate.name] = append(byName[candidate.name], candidate)
	}
	var result []*field
	for _, candidate := range fields {
		if dominant(byName[candidate.name]) == candidate {
			result = append(result, candidate)
		}
	}
	return result
}

func dominant(fields []*field) *field {
	depth := fields[0].depth
	for _, candidate := range fields {
		if candidate.depth < depth {
			depth = candidate.depth
		}
	}
	var winner, tagged *field
	count, taggedCount := 0, 0
	for _, candidate := range fields {
		if candidate.depth != depth {
			continue
		}
		count++
		winner = candidate
		if candidate.tagged {
			taggedCount++
			tagged = candidate
		}
	}
	switch {
	case taggedCount == 1:
		return tagged
	case taggedCount == 0 && count == 1:
		return winner
	}
	return nil
}

func hasOption(options, option string) bool {
	for options != "" {
		var name string
		name, options, _ = strings.Cut(options, ",")
		if name == option {
			return true
		}
	}
	return false
}

func isQuotable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isEmptyValue(aValue reflect.Value) bool {
	switch aValue.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return aValue.Len() == 0
	case reflect.Bool:
		return !aValue.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return aValue.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return aValue.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return aValue.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return aValue.IsNil()
	}
	return false
}

// normalizeNumber returns decimal text for an integer literal outside of the safe integer range
func normalizeNumber(number json.Number) interface{} {
	text := number.String()
	if strings.ContainsAny(text, ".eE") {
		return number
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return number
	}
	if n.IsInt64() && n.Int64() <= maxSafeInteger && n.Int64() >= minSafeInteger {
		return number
	}
	return n.String()
}
