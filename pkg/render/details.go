package render

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// DetailsOptions controls how a snapshot is projected for display.
type DetailsOptions struct {
	// ISDPrefix is shown in front of the phone number. Empty means
	// model.DefaultISDPrefix; use "-" to suppress it.
	ISDPrefix string
	// Separator joins tech stack labels. Defaults to ", ".
	Separator string
	// Title heads the rendered output.
	Title string
	// DateLayout formats the date of birth. Defaults to model.DateLayout.
	DateLayout string
}

func (o DetailsOptions) withDefaults() DetailsOptions {
	if o.ISDPrefix == "" {
		o.ISDPrefix = model.DefaultISDPrefix
	}
	if o.ISDPrefix == "-" {
		o.ISDPrefix = ""
	}
	if o.Separator == "" {
		o.Separator = ", "
	}
	if o.Title == "" {
		o.Title = "Submitted Details"
	}
	if o.DateLayout == "" {
		o.DateLayout = model.DateLayout
	}
	return o
}

// Row is one labelled line of the submitted details.
type Row struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Details is the read-only display projection of a submitted snapshot.
type Details struct {
	Title       string   `json:"title"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Gender      string   `json:"gender"`
	DateOfBirth string   `json:"dateOfBirth"`
	TechStack   []string `json:"techStack"`
	Rows        []Row    `json:"rows"`
}

// NewDetails projects snapshot into Details. The snapshot is only read.
func NewDetails(snapshot model.Snapshot, opts DetailsOptions) Details {
	opts = opts.withDefaults()

	phone := snapshot.Text(model.FieldPhone)
	if phone != "" && opts.ISDPrefix != "" {
		phone = opts.ISDPrefix + " " + phone
	}
	gender, _ := snapshot.Option(model.FieldGender)
	tech := model.OptionLabels(snapshot.Options(model.FieldTechStack))
	dob := snapshot.Text(model.FieldDateOfBirth)
	if date, ok := snapshot.Date(model.FieldDateOfBirth); ok {
		dob = date.Format(opts.DateLayout)
	}

	d := Details{
		Title:       opts.Title,
		FirstName:   snapshot.Text(model.FieldFirstName),
		LastName:    snapshot.Text(model.FieldLastName),
		Email:       snapshot.Text(model.FieldEmail),
		Phone:       phone,
		Gender:      gender.Label,
		DateOfBirth: dob,
		TechStack:   tech,
	}
	d.Rows = []Row{
		{Key: string(model.FieldFirstName), Label: "First Name", Value: d.FirstName},
		{Key: string(model.FieldLastName), Label: "Last Name", Value: d.LastName},
		{Key: string(model.FieldEmail), Label: "Email", Value: d.Email},
		{Key: string(model.FieldPhone), Label: "Phone", Value: d.Phone},
		{Key: string(model.FieldGender), Label: "Gender", Value: d.Gender},
		{Key: string(model.FieldDateOfBirth), Label: "Date of Birth", Value: d.DateOfBirth},
		{Key: string(model.FieldTechStack), Label: "Tech Stack", Value: strings.Join(tech, opts.Separator)},
	}
	return d
}

// Sanitized returns a copy with every user-entered value stripped of markup.
func (d Details) Sanitized() Details {
	out := d
	out.Title = sanitizeText(d.Title)
	out.FirstName = sanitizeText(d.FirstName)
	out.LastName = sanitizeText(d.LastName)
	out.Email = sanitizeText(d.Email)
	out.Phone = sanitizeText(d.Phone)
	out.Gender = sanitizeText(d.Gender)
	out.DateOfBirth = sanitizeText(d.DateOfBirth)
	out.TechStack = make([]string, len(d.TechStack))
	for i, label := range d.TechStack {
		out.TechStack[i] = sanitizeText(label)
	}
	out.Rows = make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		out.Rows[i] = Row{Key: row.Key, Label: sanitizeText(row.Label), Value: sanitizeText(row.Value)}
	}
	return out
}
