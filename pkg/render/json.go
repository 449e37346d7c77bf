package render

import (
	"context"

	json "github.com/goccy/go-json"
)

type jsonRenderer struct{}

// NewJSONRenderer renders details as indented JSON.
func NewJSONRenderer() Renderer {
	return jsonRenderer{}
}

func (jsonRenderer) Name() string        { return "json" }
func (jsonRenderer) ContentType() string { return "application/json" }

func (jsonRenderer) Render(ctx context.Context, details Details) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
