// Package validation normalizes and checks contact-form submissions and the
// staff-side patches applied to them. It is built on go-playground/validator
// with two custom rules (personname, phone) and a generic enum rule backed
// by the closed sets in package domain.
//
// Every check runs before anything is persisted. Failures are reported as a
// FieldErrors list carrying one entry per offending field, in declaration
// order, each with the rejected value.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/renacod/backend/internal/domain"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// FieldErrors is the full list of rejected fields for one payload.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Submission is the public contact-form payload.
type Submission struct {
	Name     string `json:"name"     validate:"min=2,max=100,personname"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty,max=20,phone"`
	Company  string `json:"company"  validate:"omitempty,max=100"`
	Subject  string `json:"subject"  validate:"min=5,max=200"`
	Message  string `json:"message"  validate:"min=10,max=2000"`
	Service  string `json:"service"  validate:"omitempty,enum=service"`
	Budget   string `json:"budget"   validate:"omitempty,enum=budget"`
	Timeline string `json:"timeline" validate:"omitempty,enum=timeline"`
	Source   string `json:"source"   validate:"omitempty,enum=source"`
}

// Contact turns a validated submission into an unsaved contact.
func (s Submission) Contact() *domain.Contact {
	return &domain.Contact{
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		Company:  s.Company,
		Subject:  s.Subject,
		Message:  s.Message,
		Service:  s.Service,
		Budget:   s.Budget,
		Timeline: s.Timeline,
		Source:   s.Source,
	}
}

type patchRules struct {
	Status   *string `json:"status"   validate:"omitnil,enum=status"`
	Priority *string `json:"priority" validate:"omitnil,enum=priority"`
	Notes    *string `json:"notes"    validate:"omitnil,max=1000"`
}

type respondRules struct {
	ResponseMethod string `json:"responseMethod" validate:"enum=responseMethod"`
}

var (
	nameRE  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRE = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := domain.LookupEnum(fl.Param())
		return ok && e.Contains(fl.Field().String())
	})
	return v
}

// NormalizeSubmission trims every field, NFC-normalizes free text, and
// lowercases the email address.
func NormalizeSubmission(in Submission) Submission {
	clean := func(s string) string { return norm.NFC.String(strings.TrimSpace(s)) }
	in.Name = clean(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Company = clean(in.Company)
	in.Subject = clean(in.Subject)
	in.Message = clean(in.Message)
	in.Service = strings.TrimSpace(in.Service)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Timeline = strings.TrimSpace(in.Timeline)
	in.Source = strings.TrimSpace(in.Source)
	return in
}

// ValidateSubmission normalizes in, fills a blank subject from the service
// when one can be derived, checks every rule, and applies defaults to the
// unset categorical fields. On failure it returns every offending field.
func ValidateSubmission(in Submission) (Submission, FieldErrors) {
	in = NormalizeSubmission(in)
	if in.Subject == "" {
		in.Subject = domain.InquirySubject(in.Service)
	}
	if errs := check(in, submissionMessages); len(errs) > 0 {
		return in, errs
	}
	in.Service = orDefault(in.Service, domain.Services.Default)
	in.Budget = orDefault(in.Budget, domain.Budgets.Default)
	in.Timeline = orDefault(in.Timeline, domain.Timelines.Default)
	in.Source = orDefault(in.Source, domain.Sources.Default)
	return in, nil
}

// ValidatePatch checks the enum and length rules of a staff patch and
// returns it with notes trimmed and blank tags dropped.
func ValidatePatch(p domain.ContactPatch) (domain.ContactPatch, FieldErrors) {
	if p.Notes != nil {
		n := strings.TrimSpace(*p.Notes)
		p.Notes = &n
	}
	if p.Tags != nil {
		tags := domain.TrimTags(*p.Tags)
		p.Tags = &tags
	}
	rules := patchRules{Status: p.Status, Priority: p.Priority, Notes: p.Notes}
	if errs := check(rules, patchMessages); len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

// ValidateResponseMethod defaults an empty method to "email" and rejects
// values outside the closed set.
func ValidateResponseMethod(method string) (string, FieldErrors) {
	method = orDefault(strings.TrimSpace(method), domain.ResponseMethods.Default)
	if errs := check(respondRules{ResponseMethod: method}, patchMessages); len(errs) > 0 {
		return method, errs
	}
	return method, nil
}

func check(v any, messages map[string]string) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageFor(messages, fe.Field(), fe.Tag()),
			Value:   fe.Value(),
		})
	}
	return out
}

func messageFor(messages map[string]string, field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := messages[field]; ok {
		return m
	}
	return "Invalid value"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
