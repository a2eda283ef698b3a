package overlap

import "github.com/invopop/jsonschema"

// Schemas describes the JSON forms of Query and Result, keyed "query" and
// "result".
func Schemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	query := reflector.Reflect(new(Query))
	query.Title = "Overlap Query"
	query.Description = "Two oriented rectangles given by center, width, height and rotation in degrees."

	result := reflector.Reflect(new(Result))
	result.Title = "Overlap Result"
	result.Description = "Overlap verdict and the corners of both rectangles."

	return map[string]*jsonschema.Schema{
		"query":  query,
		"result": result,
	}
}
