// Package extract pulls machine-readable payloads out of model responses.
//
// Structured extraction asks the model to answer inside a fenced code
// block, but models routinely wrap the payload in prose, mislabel the
// fence, or emit the object bare. The helpers here tolerate all of those:
//
//	var report ReviewReport
//	if err := extract.JSONInto(response, &report); err != nil {
//	    return fmt.Errorf("model returned no parseable report: %w", err)
//	}
//
// Schema generates a JSON Schema from a Go struct and Instructions turns
// it into a prompt suffix, so the shape the model is asked for and the
// shape decoded here come from the same type.
package extract
