package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mist/mist/internal/api"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid system settings")

const maxAppNameLength = 63

// Validate checks an update request and returns the settings to store.
// Values are stored exactly as sent, so input that is not already in
// canonical form (surrounding spaces, upper case, a "*." prefix, a trailing
// dot) is rejected rather than rewritten. A nil wildcard domain clears it.
func Validate(req api.UpdateSystemSettingsRequest) (api.SystemSettings, error) {
	appName := req.MistAppName
	if strings.TrimSpace(appName) == "" {
		return api.SystemSettings{}, fmt.Errorf("%w: mistAppName is required", ErrInvalid)
	}
	if appName != strings.TrimSpace(appName) {
		return api.SystemSettings{}, fmt.Errorf("%w: mistAppName must not have leading or trailing spaces", ErrInvalid)
	}
	if len(appName) > maxAppNameLength {
		return api.SystemSettings{}, fmt.Errorf("%w: mistAppName must be at most %d characters", ErrInvalid, maxAppNameLength)
	}

	out := api.SystemSettings{MistAppName: appName}
	if req.WildcardDomain == nil {
		return out, nil
	}

	domain := *req.WildcardDomain
	switch {
	case domain == "":
		return api.SystemSettings{}, fmt.Errorf("%w: wildcardDomain must be null or a domain, not empty", ErrInvalid)
	case strings.HasPrefix(domain, "*."):
		return api.SystemSettings{}, fmt.Errorf("%w: wildcardDomain %q must not include the \"*.\" prefix", ErrInvalid, domain)
	case strings.HasSuffix(domain, "."):
		return api.SystemSettings{}, fmt.Errorf("%w: wildcardDomain %q must not end with a dot", ErrInvalid, domain)
	case domain != strings.ToLower(domain):
		return api.SystemSettings{}, fmt.Errorf("%w: wildcardDomain %q must be lower case", ErrInvalid, domain)
	}
	if err := validateDomain(domain); err != nil {
		return api.SystemSettings{}, err
	}
	out.WildcardDomain = &domain
	return out, nil
}

func validateDomain(domain string) error {
	if len(domain) > 253 {
		return fmt.Errorf("%w: wildcardDomain is too long", ErrInvalid)
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return fmt.Errorf("%w: wildcardDomain %q must contain at least two labels", ErrInvalid, domain)
	}
	for _, label := range labels {
		if !validLabel(label) {
			return fmt.Errorf("%w: wildcardDomain %q has an invalid label %q", ErrInvalid, domain, label)
		}
	}
	return nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// FormFields describes the inputs of the system settings form.
func FormFields() []api.FormField {
	return []api.FormField{
		{
			Name:        "wildcardDomain",
			Label:       "Wildcard Domain",
			Type:        "text",
			Placeholder: "apps.example.com",
		},
		{
			Name:        "mistAppName",
			Label:       "Mist App Name",
			Type:        "text",
			Placeholder: "mist",
			Required:    true,
		},
	}
}
