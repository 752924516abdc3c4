package assessment

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/go-playground/validator/v10"
)

// FormCount is a count field as typed into the intake form. It accepts a JSON
// string or a JSON number.
type FormCount string

func (c *FormCount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = ""
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		*c = FormCount(unq)
		return nil
	}
	*c = FormCount(s)
	return nil
}

// IntakeForm is the public submission payload: the field set of the intake
// form plus the names of the documents the vendor attaches.
type IntakeForm struct {
	VendorName          string    `json:"vendorName" validate:"required,max=200"`
	ServiceName         string    `json:"serviceName" validate:"required,max=200"`
	DeploymentType      string    `json:"deploymentType" validate:"required,max=100"`
	UseCase             string    `json:"useCase" validate:"required,max=5000"`
	NumUsers            FormCount `json:"numUsers" validate:"required,count"`
	NumRecords          FormCount `json:"numRecords" validate:"required,count"`
	VendorWebsite       string    `json:"vendorWebsite" validate:"omitempty,url,max=2048"`
	ContactName         string    `json:"contactName" validate:"required,max=200"`
	ContactEmail        string    `json:"contactEmail" validate:"required,email,max=320"`
	ContactPhone        string    `json:"contactPhone" validate:"required,max=32"`
	Certifications      []string  `json:"certifications" validate:"dive,required,filename,max=255"`
	AdditionalDocuments []string  `json:"additionalDocuments" validate:"dive,required,filename,max=255"`
	RequestToken        string    `json:"requestToken,omitempty" validate:"omitempty,max=64"`
}

// ValidationError carries one message per failing field, keyed by the JSON
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// non-negative whole number
	_ = v.RegisterValidation("count", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	// a bare file name, no directories
	_ = v.RegisterValidation("filename", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
			return false
		}
		return path.Base(s) == s
	})

	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "count":
		return "must be a non-negative whole number"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "filename":
		return "must be a plain file name"
	default:
		return "is invalid"
	}
}

// Sanitize trims surrounding whitespace from every text field.
func (f *IntakeForm) Sanitize() {
	f.VendorName = strings.TrimSpace(f.VendorName)
	f.ServiceName = strings.TrimSpace(f.ServiceName)
	f.DeploymentType = strings.TrimSpace(f.DeploymentType)
	f.UseCase = strings.TrimSpace(f.UseCase)
	f.NumUsers = FormCount(strings.TrimSpace(string(f.NumUsers)))
	f.NumRecords = FormCount(strings.TrimSpace(string(f.NumRecords)))
	f.VendorWebsite = strings.TrimSpace(f.VendorWebsite)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)
	f.ContactPhone = strings.TrimSpace(f.ContactPhone)
	f.RequestToken = strings.TrimSpace(f.RequestToken)
	for i := range f.Certifications {
		f.Certifications[i] = strings.TrimSpace(f.Certifications[i])
	}
	for i := range f.AdditionalDocuments {
		f.AdditionalDocuments[i] = strings.TrimSpace(f.AdditionalDocuments[i])
	}
}

// Validate sanitizes the form and checks every field, returning a
// *ValidationError listing all failures, or nil.
func (f *IntakeForm) Validate() error {
	f.Sanitize()

	fields := map[string]string{}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = fieldMessage(fe)
			}
		}
	}

	// digits only may still overflow int64
	for name, raw := range map[string]FormCount{"numUsers": f.NumUsers, "numRecords": f.NumRecords} {
		if _, failed := fields[name]; failed {
			continue
		}
		if _, err := strconv.ParseInt(string(raw), 10, 64); err != nil {
			fields[name] = "must be a non-negative whole number"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ToAssessment builds a pending assessment from a validated form.
func (f *IntakeForm) ToAssessment(id string, now time.Time) (*Assessment, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	users, _ := strconv.ParseInt(string(f.NumUsers), 10, 64)
	records, _ := strconv.ParseInt(string(f.NumRecords), 10, 64)

	a := &Assessment{
		ID:             id,
		SubmittedAt:    now,
		Status:         StatusPending,
		VendorName:     f.VendorName,
		ServiceName:    f.ServiceName,
		DeploymentType: f.DeploymentType,
		UseCase:        f.UseCase,
		NumUsers:       users,
		NumRecords:     records,
		VendorWebsite:  f.VendorWebsite,
		ContactInfo: ContactInfo{
			Name:  f.ContactName,
			Email: f.ContactEmail,
			Phone: f.ContactPhone,
		},
		Documents: Documents{
			Certifications: append([]string(nil), f.Certifications...),
			Additional:     append([]string(nil), f.AdditionalDocuments...),
		},
		LastUpdated:  now,
		RequestToken: f.RequestToken,
	}
	a.Normalize()
	return a, nil
}
