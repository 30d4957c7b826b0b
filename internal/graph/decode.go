package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "event-rental/pkg/errors"
)

// Accepted datetime layouts, most specific first. Values without a zone are
// taken as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Decode checks raw against schema and returns the fields it carries.
// Every problem is collected into one *apperrors.ValidationError.
func (a *Assembler) Decode(schema *Schema, raw []byte, mode Mode) (*Document, error) {
	verr := apperrors.NewValidationError()

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}
	if trimmed[0] != '{' {
		verr.Add("", "expected a JSON object")
		return nil, verr
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		verr.Add("", "malformed JSON: "+err.Error())
		return nil, verr
	}

	doc := newDocument()
	for key, value := range fields {
		if sc, ok := schema.scalar(key); ok {
			a.decodeScalar(doc, sc, value, verr)
			continue
		}
		if rel, ok := schema.relation(key); ok {
			a.decodeRelation(doc, rel, value, verr)
			continue
		}
		if schema.readOnly(key) {
			continue
		}
		verr.Add(key, "unknown field")
	}

	if mode.requiresAll() {
		for _, sc := range schema.Scalars {
			if sc.Required && !doc.Has(sc.Name) {
				verr.Add(sc.Name, "this field is required")
			}
		}
		for _, rel := range schema.Relations {
			if rel.Required && !doc.Has(rel.Field) {
				verr.Add(rel.Field, "this field is required")
			}
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *Assembler) decodeScalar(doc *Document, sc Scalar, value json.RawMessage, verr *apperrors.ValidationError) {
	if isNull(value) {
		if !sc.Nullable {
			verr.Add(sc.Name, "this field may not be null")
			return
		}
		doc.scalars[sc.Name] = Value{Null: true}
		return
	}

	switch sc.Type {
	case String, Text:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			verr.Add(sc.Name, "not a valid string")
			return
		}
		if !sc.Nullable && strings.TrimSpace(s) == "" {
			verr.Add(sc.Name, "this field may not be blank")
			return
		}
		if err := a.validate.Var(sc.Name, s, sc.Rules); err != nil {
			merge(verr, sc.Name, err)
			return
		}
		doc.scalars[sc.Name] = Value{Str: s}

	case DateTime:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			verr.Add(sc.Name, "datetime has wrong format, use ISO-8601")
			return
		}
		t, err := parseDateTime(s)
		if err != nil {
			verr.Add(sc.Name, "datetime has wrong format, use ISO-8601")
			return
		}
		doc.scalars[sc.Name] = Value{Time: t}

	case Int:
		if bytes.HasPrefix(bytes.TrimSpace(value), []byte(`"`)) {
			verr.Add(sc.Name, "a valid integer is required")
			return
		}
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			verr.Add(sc.Name, "a valid integer is required")
			return
		}
		i, err := n.Int64()
		if err != nil {
			verr.Add(sc.Name, "a valid integer is required")
			return
		}
		if err := a.validate.Var(sc.Name, i, sc.Rules); err != nil {
			merge(verr, sc.Name, err)
			return
		}
		doc.scalars[sc.Name] = Value{Int: i}
	}
}

func (a *Assembler) decodeRelation(doc *Document, rel Relation, value json.RawMessage, verr *apperrors.ValidationError) {
	if isNull(value) {
		if rel.Many || !rel.Nullable {
			verr.Add(rel.Field, "this field may not be null")
			return
		}
		doc.refs[rel.Field] = []string{}
		return
	}

	if !rel.Many {
		key, msg := a.decodeKey(rel, value)
		if msg != "" {
			verr.Add(rel.Field, msg)
			return
		}
		doc.refs[rel.Field] = []string{key}
		return
	}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		verr.Add(rel.Field, fmt.Sprintf("expected a list of objects with a %q field", rel.Key))
		return
	}
	keys := make([]string, 0, len(items))
	for i, item := range items {
		key, msg := a.decodeKey(rel, item)
		if msg != "" {
			verr.Add(fmt.Sprintf("%s[%d]", rel.Field, i), msg)
			continue
		}
		keys = append(keys, key)
	}
	doc.refs[rel.Field] = keys
}

// decodeKey extracts the natural key from {"<key>": value}. "id" is tolerated
// next to another key since it is what the API returns.
func (a *Assembler) decodeKey(rel Relation, raw json.RawMessage) (string, string) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return "", fmt.Sprintf("expected an object with a %q field", rel.Key)
	}
	for k := range obj {
		if k != rel.Key && k != "id" {
			return "", fmt.Sprintf("unknown field %q", k)
		}
	}
	keyRaw, ok := obj[rel.Key]
	if !ok || isNull(keyRaw) {
		return "", fmt.Sprintf("%q is required", rel.Key)
	}

	if rel.Key == "id" {
		var id uint64
		if err := json.Unmarshal(keyRaw, &id); err != nil || id == 0 {
			return "", "expected a positive integer id"
		}
		return strconv.FormatUint(id, 10), ""
	}

	var s string
	if err := json.Unmarshal(keyRaw, &s); err != nil {
		return "", fmt.Sprintf("%q must be a string", rel.Key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Sprintf("%q may not be blank", rel.Key)
	}
	if err := a.validate.Var(rel.Key, s, rel.KeyRules); err != nil {
		return "", firstMessage(err)
	}
	return s, ""
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func merge(dst *apperrors.ValidationError, field string, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		for k, msgs := range verr.Fields {
			for _, m := range msgs {
				dst.Add(k, m)
			}
		}
		return
	}
	dst.Add(field, err.Error())
}

func firstMessage(err error) string {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		for _, msgs := range verr.Fields {
			if len(msgs) > 0 {
				return msgs[0]
			}
		}
	}
	return err.Error()
}
