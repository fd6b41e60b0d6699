package domain

// Enum is a closed set of allowed values for one categorical field.
type Enum struct {
	Name    string
	Values  []string
	Default string
}

// Contains reports whether v is one of the allowed values.
func (e Enum) Contains(v string) bool {
	for _, x := range e.Values {
		if x == v {
			return true
		}
	}
	return false
}

const (
	ServiceWebDevelopment = "web-development"
	ServiceAppDevelopment = "app-development"
	ServiceAIIntegration  = "ai-integration"
	ServiceConsulting     = "consulting"
	ServiceUIUX           = "ui-ux"
	ServiceMaintenance    = "maintenance"
	ServiceOther          = "other"

	StatusNew        = "new"
	StatusInProgress = "in-progress"
	StatusContacted  = "contacted"
	StatusQualified  = "qualified"
	StatusClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	ResponseEmail   = "email"
	ResponsePhone   = "phone"
	ResponseMeeting = "meeting"
	ResponseOther   = "other"
)

var (
	Services = Enum{
		Name: "service",
		Values: []string{
			ServiceWebDevelopment, ServiceAppDevelopment, ServiceAIIntegration,
			ServiceConsulting, ServiceUIUX, ServiceMaintenance, ServiceOther,
		},
		Default: ServiceOther,
	}
	Budgets = Enum{
		Name:    "budget",
		Values:  []string{"under-10k", "10k-25k", "25k-50k", "50k-100k", "over-100k", "not-specified"},
		Default: "not-specified",
	}
	Timelines = Enum{
		Name:    "timeline",
		Values:  []string{"asap", "1-2-weeks", "1-2-months", "3-6-months", "6-months-plus", "not-specified"},
		Default: "not-specified",
	}
	Sources = Enum{
		Name:    "source",
		Values:  []string{"website", "referral", "social-media", "email", "other"},
		Default: "website",
	}
	Statuses = Enum{
		Name:    "status",
		Values:  []string{StatusNew, StatusInProgress, StatusContacted, StatusQualified, StatusClosed},
		Default: StatusNew,
	}
	Priorities = Enum{
		Name:    "priority",
		Values:  []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent},
		Default: PriorityMedium,
	}
	ResponseMethods = Enum{
		Name:    "responseMethod",
		Values:  []string{ResponseEmail, ResponsePhone, ResponseMeeting, ResponseOther},
		Default: ResponseEmail,
	}
)

var enumsByName = map[string]Enum{
	Services.Name:        Services,
	Budgets.Name:         Budgets,
	Timelines.Name:       Timelines,
	Sources.Name:         Sources,
	Statuses.Name:        Statuses,
	Priorities.Name:      Priorities,
	ResponseMethods.Name: ResponseMethods,
}

// LookupEnum returns the enumeration registered under name.
func LookupEnum(name string) (Enum, bool) {
	e, ok := enumsByName[name]
	return e, ok
}
