package types

import "time"

// HTTPConfig holds shared HTTP settings for components that call a service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharmazer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TaggerBackend identifies the named-entity recognition backend.
type TaggerBackend string

const (
	BackendService   TaggerBackend = "service"
	BackendContainer TaggerBackend = "container"
)

// TaggerConfig holds settings for the entity tagger.
type TaggerConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the tagger: service (HTTP) or container.
	Backend TaggerBackend `json:"backend" yaml:"backend"`

	// ServiceURL is the base URL of the NER HTTP service (service backend).
	ServiceURL string `json:"service_url" yaml:"service_url"`

	// Image is the NER container image (container backend).
	Image string `json:"image" yaml:"image"`

	// MaxRetries is the number of retry attempts on rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// MatchConfig holds settings for institution matching.
type MatchConfig struct {
	// MinScore is the minimum similarity score (0-100) a reference name
	// must reach to be accepted as a match (default 90).
	MinScore float64 `json:"min_score" yaml:"min_score"`
}

// ReferenceConfig holds settings for the institution reference dataset.
type ReferenceConfig struct {
	// Path is the local path of the reference CSV (columns: name, grid_id).
	Path string `json:"path" yaml:"path"`
}

// StorageConfig holds the S3 locations the pipeline reads from and writes to.
type StorageConfig struct {
	// Region is the AWS region of both buckets.
	Region string `json:"region" yaml:"region"`

	// SourceBucket and SourceKey locate the citation XML dump.
	SourceBucket string `json:"source_bucket" yaml:"source_bucket"`
	SourceKey    string `json:"source_key" yaml:"source_key"`

	// TargetBucket and TargetFolder locate the output table.
	TargetBucket string `json:"target_bucket" yaml:"target_bucket"`
	TargetFolder string `json:"target_folder" yaml:"target_folder"`
}

// NotifyConfig holds settings for pipeline status emails.
// Notification is skipped when Sender or Recipient is empty.
type NotifyConfig struct {
	// Region is the AWS region of the SES identity.
	Region string `json:"region" yaml:"region"`

	// Sender is the verified SES source address.
	Sender string `json:"sender" yaml:"sender"`

	// Recipient receives the start and end notifications.
	Recipient string `json:"recipient" yaml:"recipient"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Tagger    TaggerConfig    `json:"tagger" yaml:"tagger"`
	Match     MatchConfig     `json:"match" yaml:"match"`
	Reference ReferenceConfig `json:"reference" yaml:"reference"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Notify    NotifyConfig    `json:"notify" yaml:"notify"`
}
