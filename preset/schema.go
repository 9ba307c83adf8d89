package preset

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/termart/render"
	"go.jacobcolvin.com/termart/resize"
)

const draft7 = "http://json-schema.org/draft-07/schema#"

// Schema returns a Draft 7 JSON Schema describing preset files, for use with
// editors that validate YAML.
func Schema() *jsonschema.Schema {
	filters := make([]any, 0, len(resize.Filters()))
	for _, f := range resize.FilterNames() {
		filters = append(filters, f)
	}

	props := []struct {
		schema *jsonschema.Schema
		name   string
	}{
		{name: "width", schema: count("Output width in pixels before classification. 0 derives it.")},
		{name: "height", schema: count("Output height in pixels before classification. 0 derives it.")},
		{name: "framerate", schema: number("Frames per second. 0 plays unthrottled.")},
		{name: "pre-render", schema: boolean("Render all frames before playback.")},
		{name: "loop", schema: boolean("Loop playback until interrupted.")},
		{name: "colored", schema: boolean("Colorize output with truecolor escapes.")},
		{name: "ascii-string", schema: &jsonschema.Schema{
			Type:        "string",
			Description: "Glyph ramp, darkest to lightest.",
			MinLength:   jsonschema.Ptr(1),
			Default:     defaultValue(render.DefaultRamp),
		}},
		{name: "reverse", schema: boolean("Reverse the glyph ramp.")},
		{name: "pixels", schema: boolean("Draw solid colored blocks.")},
		{name: "ratio", schema: number("Font cell width/height ratio. 0 picks the default for the mode.")},
		{name: "threshold", schema: count("Adaptive threshold radius. 0 disables thresholding.")},
		{name: "braille", schema: boolean("Render with braille patterns.")},
		{name: "background-string", schema: &jsonschema.Schema{
			Type:        "string",
			Description: "Tile this text across lit pixels.",
		}},
		{name: "filter", schema: &jsonschema.Schema{
			Type:        "string",
			Description: "Resize filter.",
			Enum:        filters,
			Default:     defaultValue(string(resize.FilterTriangle)),
		}},
		{name: "workers", schema: count("Parallel render workers. 0 uses GOMAXPROCS.")},
	}

	s := &jsonschema.Schema{
		Schema:               draft7,
		Title:                "termart preset",
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema, len(props)),
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}

	for _, p := range props {
		s.Properties[p.name] = p.schema
		s.PropertyOrder = append(s.PropertyOrder, p.name)
	}

	return s
}

func count(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: desc,
		Minimum:     jsonschema.Ptr(0.0),
		Default:     defaultValue(0),
	}
}

func number(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "number",
		Description: desc,
		Minimum:     jsonschema.Ptr(0.0),
		Default:     defaultValue(0),
	}
}

func boolean(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "boolean",
		Description: desc,
		Default:     defaultValue(false),
	}
}

func defaultValue(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}
