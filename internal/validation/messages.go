package validation

// Messages are keyed by "field.tag" first, then by "field".
var submissionMessages = map[string]string{
	"name":            "Name must be between 2 and 100 characters",
	"name.personname": "Name can only contain letters and spaces",
	"email":           "Please provide a valid email address",
	"phone":           "Please provide a valid phone number",
	"phone.max":       "Phone number cannot exceed 20 characters",
	"company":         "Company name cannot exceed 100 characters",
	"subject":         "Subject must be between 5 and 200 characters",
	"message":         "Message must be between 10 and 2000 characters",
	"service":         "Please select a valid service",
	"budget":          "Please select a valid budget range",
	"timeline":        "Please select a valid timeline",
	"source":          "Please select a valid source",
}

var patchMessages = map[string]string{
	"status":         "Please select a valid status",
	"priority":       "Please select a valid priority",
	"notes":          "Notes cannot exceed 1000 characters",
	"responseMethod": "Please select a valid response method",
}
