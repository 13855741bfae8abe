package program

// SampleCallback is the controller entry the sample program's button targets.
const SampleCallback = "loginClicked"

// Sample returns the login dialog program the page bootstrap starts with.
func Sample() Program {
	return Program{
		Fields: []FieldDescriptor{
			{
				Name:         "User Name",
				Type:         FieldTypeString,
				AllowEmpty:   Bool(false),
				DefaultValue: "John",
			},
			{
				Name:       "Password",
				Type:       FieldTypePassword,
				AllowEmpty: Bool(false),
			},
			{
				Name:     "Login",
				Type:     FieldTypeButton,
				Callback: SampleCallback,
				Args:     []string{"User Name", "Password"},
			},
		},
	}
}
