package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Devin Sanders",
	},
}

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(
		to,
		"Welcome to LightBnB!",
		TemplateWelcome,
		map[string]string{
			"UserName": name,
		},
	)
}
