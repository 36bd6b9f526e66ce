package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// param describes one tool argument.
type param struct {
	name     string
	schema   *jsonschema.Schema
	optional bool
}

func stringParam(name, description string) param {
	return param{name: name, schema: &jsonschema.Schema{Type: "string", Description: description}}
}

func integerParam(name, description string) param {
	return param{name: name, schema: &jsonschema.Schema{Type: "integer", Description: description}}
}

func objectParam(name, description string) param {
	return param{name: name, schema: &jsonschema.Schema{Type: "object", Description: description}}
}

func enumParam(name, description string, values ...string) param {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}

	return param{name: name, schema: &jsonschema.Schema{Type: "string", Description: description, Enum: enum}}
}

// asOptional marks p as not required.
func (p param) asOptional() param {
	p.optional = true

	return p
}

// between sets inclusive numeric bounds.
func (p param) between(lo, hi float64) param {
	p.schema.Minimum = jsonschema.Ptr(lo)
	p.schema.Maximum = jsonschema.Ptr(hi)

	return p
}

// withDefault sets the value used when the argument is omitted.
func (p param) withDefault(v any) param {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	p.schema.Default = raw

	return p
}

// objectSchema builds the input schema for a tool. Required names keep
// declaration order so listings are stable.
func objectSchema(params ...param) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(params))
	required := make([]string, 0, len(params))

	for _, p := range params {
		properties[p.name] = p.schema
		if !p.optional {
			required = append(required, p.name)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
