package goplus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Envelope is the {code, message, result} wrapper every endpoint returns.
type Envelope[T any] struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

// Status interprets the envelope code.
func (e *Envelope[T]) Status() Status {
	return Interpret(e.Code)
}

// Complete reports code 1.
func (e *Envelope[T]) Complete() bool { return e.Code == StatusComplete }

// Partial reports code 2: the result is incomplete and may be requested again later.
func (e *Envelope[T]) Partial() bool { return e.Code == StatusPartial }

// Usable reports whether Result may be consumed.
func (e *Envelope[T]) Usable() bool {
	return e.Complete() || e.Partial()
}

// Err returns a *StatusError when Result must not be consumed, nil otherwise.
func (e *Envelope[T]) Err() error {
	if e.Usable() {
		return nil
	}
	return &StatusError{Code: e.Code, Message: e.Message, Category: e.Status().Category}
}

type rawEnvelope struct {
	Code    *uint32         `json:"code"`
	Message *string         `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// DecodeEnvelope parses data into an Envelope[T]. The result is checked for
// required fields only when the code says it is usable.
func DecodeEnvelope[T any](data []byte) (*Envelope[T], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw.Code == nil {
		return nil, &DecodeError{Path: "code", Err: ErrMissingField}
	}
	if raw.Message == nil {
		return nil, &DecodeError{Path: "message", Err: ErrMissingField}
	}

	env := &Envelope[T]{Code: *raw.Code, Message: *raw.Message}
	if !env.Usable() {
		// Failure envelopes carry null, {} or free text in result. Callers act on
		// Code and Message only, so a result that does not fit T is left zero.
		if len(raw.Result) > 0 && !isNull(raw.Result) {
			if err := json.Unmarshal(raw.Result, &env.Result); err != nil {
				var zero T
				env.Result = zero
			}
		}
		return env, nil
	}

	if err := checkRequired(raw.Result, reflect.TypeOf(env.Result), "result"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw.Result, &env.Result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &DecodeError{Path: "result." + typeErr.Field, Err: err}
		}
		return nil, &DecodeError{Path: "result", Err: err}
	}
	return env, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

var rawMessageType = reflect.TypeOf(json.RawMessage{})

// checkRequired walks t alongside the raw JSON value and reports the first
// required field that is absent or null. Non-pointer struct fields without
// omitempty are required; everything else is optional.
func checkRequired(raw json.RawMessage, t reflect.Type, path string) error {
	if t == nil {
		return nil
	}
	if len(raw) == 0 || isNull(raw) {
		if t.Kind() == reflect.Pointer || t == rawMessageType {
			return nil
		}
		return &DecodeError{Path: path, Err: ErrMissingField}
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType || reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omitempty := jsonFieldName(f)
			if name == "-" {
				continue
			}
			value, present := fields[name]
			optional := omitempty || f.Type.Kind() == reflect.Pointer || f.Type == rawMessageType
			if !present || isNull(value) {
				if optional {
					continue
				}
				return &DecodeError{Path: path + "." + name, Err: ErrMissingField}
			}
			if err := checkRequired(value, f.Type, path+"."+name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
		for i, item := range items {
			if err := checkRequired(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
		for k, v := range entries {
			if err := checkRequired(v, t.Elem(), path+"["+k+"]"); err != nil {
				return err
			}
		}
	}
	return nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func jsonFieldName(f reflect.StructField) (name string, omitempty bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}
