package api

import "time"

// Response is the envelope every API endpoint answers with.
type Response[T any] struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    T         `json:"data"`
	Error   *AppError `json:"error,omitempty"`

	// StatusCode is filled in by the client from the HTTP response.
	StatusCode int `json:"-"`
}

// ServiceTemplate describes a one-click deployable service (databases, caches, ...).
type ServiceTemplate struct {
	ID                 int64             `json:"id" yaml:"-"`
	Name               string            `json:"name" yaml:"name"`
	DisplayName        string            `json:"displayName" yaml:"displayName"`
	Category           string            `json:"category" yaml:"category"`
	Description        string            `json:"description,omitempty" yaml:"description"`
	DockerImage        string            `json:"dockerImage" yaml:"dockerImage"`
	DockerImageVersion string            `json:"dockerImageVersion,omitempty" yaml:"dockerImageVersion"`
	DefaultPort        int               `json:"defaultPort" yaml:"defaultPort"`
	DefaultEnvVars     map[string]string `json:"defaultEnvVars,omitempty" yaml:"defaultEnvVars"`
	DefaultVolumes     []string          `json:"defaultVolumes,omitempty" yaml:"defaultVolumes"`
	RecommendedCPU     float64           `json:"recommendedCpu,omitempty" yaml:"recommendedCpu"`
	RecommendedMemory  int               `json:"recommendedMemory,omitempty" yaml:"recommendedMemory"` // MiB
	IsActive           bool              `json:"isActive" yaml:"isActive"`
	IsFeatured         bool              `json:"isFeatured" yaml:"isFeatured"`
	SortOrder          int               `json:"sortOrder" yaml:"sortOrder"`
	CreatedAt          time.Time         `json:"createdAt" yaml:"-"`
	UpdatedAt          time.Time         `json:"updatedAt" yaml:"-"`
}

// VersionInfo identifies the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// UpdateCheck compares the running version with the latest published release.
type UpdateCheck struct {
	Current         string `json:"current"`
	Latest          string `json:"latest"`
	UpdateAvailable bool   `json:"updateAvailable"`
}

// SystemSettings holds instance-wide settings.
// WildcardDomain is nil when no wildcard domain is configured.
type SystemSettings struct {
	WildcardDomain *string `json:"wildcardDomain"`
	MistAppName    string  `json:"mistAppName"`
}

// UpdateSystemSettingsRequest is the PUT /settings/system body.
type UpdateSystemSettingsRequest struct {
	WildcardDomain *string `json:"wildcardDomain"`
	MistAppName    string  `json:"mistAppName"`
}

// GitHubApp is the GitHub App an instance uses to access repositories.
type GitHubApp struct {
	ID            int64     `json:"id"`
	AppID         int64     `json:"appId"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ClientID      string    `json:"clientId"`
	HTMLURL       string    `json:"htmlUrl,omitempty"`
	WebhookSecret string    `json:"webhookSecret,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Repository is a source repository available for deployment.
type Repository struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	FullName      string  `json:"fullName"`
	Description   *string `json:"description,omitempty"`
	Provider      string  `json:"provider"`
	URL           string  `json:"url"`
	DefaultBranch string  `json:"defaultBranch"`
	IsPrivate     bool    `json:"isPrivate"`
}

// SelectOption is one choice of a select input.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormField describes a single form input.
type FormField struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Type        string         `json:"type"` // "text", "select", ...
	Placeholder string         `json:"placeholder,omitempty"`
	Required    bool           `json:"required"`
	Options     []SelectOption `json:"options,omitempty"`
}

// AppError is the error payload carried by failed responses.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Error codes used in AppError.Code.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL"
	CodeUpstream   = "UPSTREAM"
)
