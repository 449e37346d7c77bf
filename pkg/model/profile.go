package model

// ProfileFormID identifies the built-in user profile form.
const ProfileFormID = "userProfile"

// DefaultISDPrefix is the calling code shown in front of phone numbers.
const DefaultISDPrefix = "+91"

// ProfileFields lists the profile field names in display order.
var ProfileFields = []FieldName{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldGender,
	FieldDateOfBirth,
	FieldTechStack,
}

// UserProfileForm returns the declarative definition of the user details
// form.
func UserProfileForm() FormModel {
	return FormModel{
		ID:    ProfileFormID,
		Title: "User Details Form",
		Fields: []Field{
			{
				Name:        FieldFirstName,
				Type:        FieldTypeString,
				Required:    true,
				Label:       "First Name",
				Placeholder: "First Name",
				Metadata:    map[string]string{MetadataRequiredMessage: "First name is required"},
			},
			{
				Name:        FieldLastName,
				Type:        FieldTypeString,
				Required:    true,
				Label:       "Last Name",
				Placeholder: "Last Name",
				Metadata:    map[string]string{MetadataRequiredMessage: "Last name is required"},
			},
			{
				Name:        FieldEmail,
				Type:        FieldTypeString,
				Format:      FormatEmail,
				Required:    true,
				Label:       "Email",
				Placeholder: "Email",
				Metadata: map[string]string{
					MetadataRequiredMessage: "Email is required",
					MetadataFormatMessage:   "Must be a valid email",
				},
			},
			{
				Name:        FieldPhone,
				Type:        FieldTypeString,
				Required:    true,
				Label:       "Phone",
				Placeholder: "Phone number",
				Validations: []ValidationRule{
					{Kind: ValidationRuleDigits, Params: map[string]string{
						"message": "Phone number must be only digits",
					}},
					{Kind: ValidationRuleMinLength, Params: map[string]string{
						"value":   "10",
						"message": "Phone number must be at least 10 digits",
					}},
				},
				Metadata: map[string]string{
					MetadataRequiredMessage: "Phone number is required",
					MetadataDisplayPrefix:   DefaultISDPrefix,
				},
			},
			{
				Name:        FieldGender,
				Type:        FieldTypeObject,
				Required:    true,
				Label:       "Gender",
				Placeholder: "Select gender...",
				Nested: []Field{
					{Name: "label", Type: FieldTypeString, Required: true, Label: "Label"},
					{Name: "value", Type: FieldTypeString, Required: true, Label: "Value"},
				},
				Metadata: map[string]string{MetadataRequiredMessage: "Gender is required"},
			},
			{
				Name:     FieldDateOfBirth,
				Type:     FieldTypeString,
				Format:   FormatDate,
				Required: true,
				Label:    "Date of Birth",
				Metadata: map[string]string{MetadataRequiredMessage: "Date of birth is required"},
			},
			{
				Name:     FieldTechStack,
				Type:     FieldTypeArray,
				Required: true,
				Label:    "Tech Stack",
				Items: &Field{
					Name: "items",
					Type: FieldTypeObject,
					Nested: []Field{
						{Name: "label", Type: FieldTypeString, Required: true, Label: "Label"},
						{Name: "value", Type: FieldTypeString, Required: true, Label: "Value"},
					},
				},
				Metadata: map[string]string{MetadataRequiredMessage: "Tech stack is required"},
			},
		},
	}
}

// DefaultGenderOptions returns the gender choices offered by the profile
// form.
func DefaultGenderOptions() []OptionRef {
	return []OptionRef{
		Option("male", "Male"),
		Option("female", "Female"),
		Option("other", "Other"),
	}
}

// DefaultTechOptions returns the predefined tech stack entries.
func DefaultTechOptions() []OptionRef {
	return []OptionRef{Option("javascript", "JavaScript")}
}
