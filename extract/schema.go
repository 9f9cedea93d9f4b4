package extract

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema builds a JSON Schema for v, suitable for embedding in a
// structured extraction prompt. The schema is inlined rather than split
// into $defs so the model sees the whole shape in one object.
func Schema(v any) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(v)
	if schema == nil {
		return nil, fmt.Errorf("cannot derive schema for %T", v)
	}
	return schema, nil
}

// Instructions renders a prompt suffix directing the model to answer with
// a single JSON object matching v's schema. Append it to the task prompt
// before invocation and decode the response with JSONInto.
func Instructions(v any) (string, error) {
	schema, err := Schema(v)
	if err != nil {
		return "", err
	}
	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}

	return fmt.Sprintf(`Respond with a single JSON object inside a fenced code block.
The object must conform to this JSON Schema:

`+"```json\n%s\n```"+`

Do not include any text outside the code block.`, encoded), nil
}
