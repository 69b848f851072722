package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfig holds the environment-driven settings.
type EnvConfig struct {
	// Kakao Local REST API
	KakaoRESTKey string
	KakaoBaseURL string

	// Public hospital registry; empty key disables the fallback source.
	RegistryKey     string
	RegistryBaseURL string

	// Server ports
	SkillPort   int
	ToolPort    int
	MonitorPort int

	// Session
	SessionExpirySeconds int

	// Logging
	LogLevel  string
	LogFormat string
}

// SkillEntry describes one tool the agent exposes.
type SkillEntry struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Examples    []string `yaml:"examples,omitempty" json:"examples,omitempty"`
}

// Manifest is the agent's published capability surface, validated against
// the JSON schema before the servers come up.
type Manifest struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Version     string       `yaml:"version" json:"version"`
	URL         string       `yaml:"url,omitempty" json:"url,omitempty"`
	Skills      []SkillEntry `yaml:"skills" json:"skills"`
}

// LoadEnv reads the .env file if present and resolves every setting with
// its default.
func LoadEnv() (*EnvConfig, error) {
	_ = godotenv.Load()

	cfg := &EnvConfig{
		KakaoRESTKey:    getEnv("KAKAO_REST_API_KEY", ""),
		KakaoBaseURL:    getEnv("KAKAO_API_BASE_URL", ""),
		RegistryKey:     getEnv("HOSPITAL_REGISTRY_API_KEY", ""),
		RegistryBaseURL: getEnv("HOSPITAL_REGISTRY_API_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	cfg.SkillPort = getEnvInt("SKILL_PORT", 8080)
	cfg.ToolPort = getEnvInt("TOOL_PORT", 8084)
	cfg.MonitorPort = getEnvInt("MONITOR_PORT", 8085)
	cfg.SessionExpirySeconds = getEnvInt("SESSION_EXPIRY_SECONDS", 1800)

	if cfg.SessionExpirySeconds <= 0 {
		return nil, fmt.Errorf("SESSION_EXPIRY_SECONDS must be positive, got %d", cfg.SessionExpirySeconds)
	}
	return cfg, nil
}

// SessionExpiry converts the configured window to a duration.
func (c *EnvConfig) SessionExpiry() time.Duration {
	return time.Duration(c.SessionExpirySeconds) * time.Second
}

// RequireKakaoKey fails fast when the upstream credential is missing.
func (c *EnvConfig) RequireKakaoKey() error {
	if c.KakaoRESTKey == "" {
		return fmt.Errorf("KAKAO_REST_API_KEY is not set")
	}
	return nil
}

// LoadManifest loads the capability manifest from YAML, expanding
// ${VAR} references against the environment.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		path = "configs/manifest.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var m Manifest
	if err := yaml.Unmarshal([]byte(expanded), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// SkillNames lists the declared skill names in manifest order.
func (m *Manifest) SkillNames() []string {
	names := make([]string, 0, len(m.Skills))
	for _, s := range m.Skills {
		names = append(names, s.Name)
	}
	return names
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
