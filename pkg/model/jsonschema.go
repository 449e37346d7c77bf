package model

import (
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
)

// Profile is the wire shape of a submitted user profile snapshot, as
// produced by Snapshot.MarshalJSON for UserProfileForm. An unset gender is
// null.
type Profile struct {
	FirstName   string      `json:"firstName" jsonschema:"title=First Name,minLength=1"`
	LastName    string      `json:"lastName" jsonschema:"title=Last Name,minLength=1"`
	Email       string      `json:"email" jsonschema:"title=Email,format=email"`
	Phone       string      `json:"phone" jsonschema:"title=Phone,pattern=^[0-9]+$,minLength=10"`
	Gender      *OptionRef  `json:"gender" jsonschema:"title=Gender"`
	DateOfBirth string      `json:"dateOfBirth" jsonschema:"title=Date of Birth,format=date"`
	TechStack   []OptionRef `json:"techStack" jsonschema:"title=Tech Stack,minItems=1"`
}

// ProfileJSONSchema returns the JSON Schema describing the Profile wire
// shape produced for submitted snapshots.
func ProfileJSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(new(Profile))
	return json.MarshalIndent(schema, "", "  ")
}
