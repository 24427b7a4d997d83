package adminapi

import (
	"encoding/json"
	"errors"

	"github.com/kbukum/devportal/validation"
)

// Service is a service as managed through the administrative endpoints.
type Service struct {
	ServiceID               string           `json:"service_id" yaml:"service_id" validate:"notblank"`
	ServiceName             string           `json:"service_name" yaml:"service_name" validate:"notblank"`
	DepartmentName          string           `json:"department_name" yaml:"department_name" validate:"notblank"`
	OrganizationName        string           `json:"organization_name" yaml:"organization_name" validate:"notblank"`
	OrganizationFiscalCode  string           `json:"organization_fiscal_code" yaml:"organization_fiscal_code" validate:"organizationfiscalcode"`
	AuthorizedCIDRs         []string         `json:"authorized_cidrs" yaml:"authorized_cidrs" validate:"dive,cidr"`
	AuthorizedRecipients    []string         `json:"authorized_recipients" yaml:"authorized_recipients" validate:"dive,fiscalcode"`
	IsVisible               bool             `json:"is_visible,omitempty" yaml:"is_visible,omitempty"`
	MaxAllowedPaymentAmount int64            `json:"max_allowed_payment_amount,omitempty" yaml:"max_allowed_payment_amount,omitempty" validate:"gte=0,lte=9999999999"`
	Version                 int              `json:"version,omitempty" yaml:"version,omitempty"`
	ServiceMetadata         *ServiceMetadata `json:"service_metadata,omitempty" yaml:"service_metadata,omitempty"`
}

// ServiceMetadata is the optional descriptive part of a service.
type ServiceMetadata struct {
	Scope       string `json:"scope" yaml:"scope" validate:"oneof=NATIONAL LOCAL"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	WebURL      string `json:"web_url,omitempty" yaml:"web_url,omitempty" validate:"omitempty,url"`
	PrivacyURL  string `json:"privacy_url,omitempty" yaml:"privacy_url,omitempty" validate:"omitempty,url"`
	SupportURL  string `json:"support_url,omitempty" yaml:"support_url,omitempty" validate:"omitempty,url"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// ServicePublic is the public view of a service returned by writes.
type ServicePublic struct {
	ServiceID                     string           `json:"service_id" yaml:"service_id" validate:"notblank"`
	ServiceName                   string           `json:"service_name" yaml:"service_name" validate:"notblank"`
	OrganizationName              string           `json:"organization_name" yaml:"organization_name" validate:"notblank"`
	DepartmentName                string           `json:"department_name" yaml:"department_name" validate:"notblank"`
	OrganizationFiscalCode        string           `json:"organization_fiscal_code" yaml:"organization_fiscal_code" validate:"organizationfiscalcode"`
	AvailableNotificationChannels []string         `json:"available_notification_channels,omitempty" yaml:"available_notification_channels,omitempty" validate:"dive,oneof=EMAIL WEBHOOK"`
	Version                       int              `json:"version" yaml:"version" validate:"gte=0"`
	ServiceMetadata               *ServiceMetadata `json:"service_metadata,omitempty" yaml:"service_metadata,omitempty"`
}

// NewMessage is a message to deliver to a citizen.
type NewMessage struct {
	TimeToLive       int               `json:"time_to_live,omitempty" yaml:"time_to_live,omitempty" validate:"omitempty,gte=3600,lte=604800"`
	Content          MessageContent    `json:"content" yaml:"content"`
	DefaultAddresses *DefaultAddresses `json:"default_addresses,omitempty" yaml:"default_addresses,omitempty"`
}

// MessageContent is the body of a message.
type MessageContent struct {
	Subject  string `json:"subject" yaml:"subject" validate:"min=10,max=120"`
	Markdown string `json:"markdown" yaml:"markdown" validate:"min=80,max=10000"`
	DueDate  string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
}

// DefaultAddresses are fallback delivery addresses.
type DefaultAddresses struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
}

// CreatedMessage identifies an accepted message.
type CreatedMessage struct {
	ID string `json:"id" yaml:"id" validate:"notblank"`
}

// ExtendedProfile is the full citizen profile.
type ExtendedProfile struct {
	Email                  string              `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	PreferredLanguages     []string            `json:"preferred_languages,omitempty" yaml:"preferred_languages,omitempty" validate:"dive,oneof=it_IT en_GB es_ES de_DE fr_FR"`
	IsInboxEnabled         *bool               `json:"is_inbox_enabled,omitempty" yaml:"is_inbox_enabled,omitempty"`
	IsWebhookEnabled       *bool               `json:"is_webhook_enabled,omitempty" yaml:"is_webhook_enabled,omitempty"`
	IsEmailEnabled         *bool               `json:"is_email_enabled,omitempty" yaml:"is_email_enabled,omitempty"`
	AcceptedTOSVersion     int                 `json:"accepted_tos_version,omitempty" yaml:"accepted_tos_version,omitempty" validate:"gte=0"`
	BlockedInboxOrChannels map[string][]string `json:"blocked_inbox_or_channels,omitempty" yaml:"blocked_inbox_or_channels,omitempty"`
	Version                int                 `json:"version" yaml:"version" validate:"gte=0"`
}

// LimitedProfile is the profile view returned to services without full access.
type LimitedProfile struct {
	SenderAllowed      bool     `json:"sender_allowed" yaml:"sender_allowed"`
	PreferredLanguages []string `json:"preferred_languages,omitempty" yaml:"preferred_languages,omitempty" validate:"dive,oneof=it_IT en_GB es_ES de_DE fr_FR"`
}

// Profile is either a LimitedProfile or an ExtendedProfile; exactly one
// field is set.
type Profile struct {
	Limited  *LimitedProfile
	Extended *ExtendedProfile
}

// IsLimited reports whether the limited view was returned.
func (p Profile) IsLimited() bool { return p.Limited != nil }

// MarshalJSON encodes the variant that is set.
func (p Profile) MarshalJSON() ([]byte, error) {
	switch {
	case p.Limited != nil:
		return json.Marshal(p.Limited)
	case p.Extended != nil:
		return json.Marshal(p.Extended)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the variant that is set.
func (p Profile) MarshalYAML() (interface{}, error) {
	if p.Limited != nil {
		return p.Limited, nil
	}
	return p.Extended, nil
}

var errNoVariant = errors.New("body matches neither LimitedProfile nor ExtendedProfile")

// decodeProfile tries the variants in order, limited first. When neither
// matches, the report lists the issues of both, tagged with the variant.
func decodeProfile(body []byte) (Profile, *validation.Report) {
	var limited LimitedProfile
	limitedReport := validation.Decode(body, &limited)
	if !limitedReport.HasIssues() {
		return Profile{Limited: &limited}, nil
	}

	var extended ExtendedProfile
	extendedReport := validation.Decode(body, &extended)
	if !extendedReport.HasIssues() {
		return Profile{Extended: &extended}, nil
	}

	report := &validation.Report{Cause: limitedReport.Cause}
	if report.Cause == nil {
		report.Cause = errNoVariant
	}
	addVariant(report, "LimitedProfile", limitedReport)
	addVariant(report, "ExtendedProfile", extendedReport)
	return Profile{}, report
}

func addVariant(dst *validation.Report, variant string, src *validation.Report) {
	for _, issue := range src.Issues {
		if issue.Message == "" {
			issue.Message = variant
		} else {
			issue.Message = variant + ": " + issue.Message
		}
		dst.Add(issue)
	}
}
