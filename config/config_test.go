package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoadEnvDefaults tests the fallback values with a clean environment
func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"KAKAO_REST_API_KEY", "SKILL_PORT", "TOOL_PORT", "MONITOR_PORT",
		"SESSION_EXPIRY_SECONDS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if cfg.SkillPort != 8080 || cfg.ToolPort != 8084 || cfg.MonitorPort != 8085 {
		t.Errorf("Expected default ports 8080/8084/8085, got %d/%d/%d",
			cfg.SkillPort, cfg.ToolPort, cfg.MonitorPort)
	}
	if cfg.SessionExpiry() != 30*time.Minute {
		t.Errorf("Expected 30m default expiry, got %v", cfg.SessionExpiry())
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected info log level, got %s", cfg.LogLevel)
	}
	if err := cfg.RequireKakaoKey(); err == nil {
		t.Errorf("Expected missing-key error without KAKAO_REST_API_KEY")
	}
}

// TestLoadEnvOverrides tests that environment variables win over defaults
func TestLoadEnvOverrides(t *testing.T) {
	os.Setenv("KAKAO_REST_API_KEY", "test-key")
	os.Setenv("HOSPITAL_REGISTRY_API_KEY", "reg-key")
	os.Setenv("SKILL_PORT", "9090")
	os.Setenv("SESSION_EXPIRY_SECONDS", "600")
	defer func() {
		os.Unsetenv("KAKAO_REST_API_KEY")
		os.Unsetenv("HOSPITAL_REGISTRY_API_KEY")
		os.Unsetenv("SKILL_PORT")
		os.Unsetenv("SESSION_EXPIRY_SECONDS")
	}()

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if cfg.KakaoRESTKey != "test-key" {
		t.Errorf("Expected test-key, got %s", cfg.KakaoRESTKey)
	}
	if cfg.RegistryKey != "reg-key" {
		t.Errorf("Expected reg-key, got %s", cfg.RegistryKey)
	}
	if cfg.SkillPort != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.SkillPort)
	}
	if cfg.SessionExpiry() != 10*time.Minute {
		t.Errorf("Expected 10m expiry, got %v", cfg.SessionExpiry())
	}
	if err := cfg.RequireKakaoKey(); err != nil {
		t.Errorf("Expected key check to pass: %v", err)
	}
}

// TestLoadEnvRejectsNonPositiveExpiry tests the expiry guard
func TestLoadEnvRejectsNonPositiveExpiry(t *testing.T) {
	os.Setenv("SESSION_EXPIRY_SECONDS", "-5")
	defer os.Unsetenv("SESSION_EXPIRY_SECONDS")

	if _, err := LoadEnv(); err == nil {
		t.Errorf("Expected an error for negative expiry")
	}
}

const testManifest = `name: medimatch
description: symptom triage and hospital search
version: 1.0.0
skills:
  - name: analyze_symptoms
    description: map symptoms to departments
    tags: [analysis]
  - name: search_hospitals
    description: find nearby hospitals
`

// TestLoadManifest tests YAML parsing with env expansion
func TestLoadManifest(t *testing.T) {
	os.Setenv("TEST_MANIFEST_URL", "http://localhost:8084")
	defer os.Unsetenv("TEST_MANIFEST_URL")

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := testManifest + "url: ${TEST_MANIFEST_URL}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.Name != "medimatch" || m.Version != "1.0.0" {
		t.Errorf("Expected medimatch 1.0.0, got %s %s", m.Name, m.Version)
	}
	if m.URL != "http://localhost:8084" {
		t.Errorf("Expected the env-expanded URL, got %s", m.URL)
	}
	if got := m.SkillNames(); len(got) != 2 || got[0] != "analyze_symptoms" {
		t.Errorf("Expected skill names in order, got %v", got)
	}
}

// TestManifestValidator tests schema acceptance and rejection
func TestManifestValidator(t *testing.T) {
	mv, err := NewManifestValidator()
	if err != nil {
		t.Fatalf("building validator: %v", err)
	}

	valid := &Manifest{
		Name:    "medimatch",
		Version: "1.0.0",
		Skills: []SkillEntry{
			{Name: "analyze_symptoms", Description: "map symptoms to departments"},
			{Name: "search_hospitals", Description: "find nearby hospitals"},
		},
	}
	if err := mv.Validate(valid); err != nil {
		t.Errorf("Expected a valid manifest, got %v", err)
	}
	if err := ValidateSkills(valid); err != nil {
		t.Errorf("Expected skills to satisfy the requirements: %v", err)
	}

	tests := []struct {
		name     string
		manifest *Manifest
	}{
		{
			name:     "missing version",
			manifest: &Manifest{Name: "medimatch", Skills: valid.Skills},
		},
		{
			name:     "bad version format",
			manifest: &Manifest{Name: "medimatch", Version: "v1", Skills: valid.Skills},
		},
		{
			name:     "no skills",
			manifest: &Manifest{Name: "medimatch", Version: "1.0.0"},
		},
		{
			name: "skill without description",
			manifest: &Manifest{Name: "medimatch", Version: "1.0.0",
				Skills: []SkillEntry{{Name: "analyze_symptoms"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := mv.Validate(tt.manifest); err == nil {
				t.Errorf("Expected validation to fail")
			}
		})
	}
}

// TestValidateSkillsMissing tests the required-skill check
func TestValidateSkillsMissing(t *testing.T) {
	m := &Manifest{
		Name:    "medimatch",
		Version: "1.0.0",
		Skills:  []SkillEntry{{Name: "search_hospitals", Description: "find hospitals"}},
	}
	err := ValidateSkills(m)
	if err == nil {
		t.Fatalf("Expected a missing-skill error")
	}
	if !strings.Contains(err.Error(), "analyze_symptoms") {
		t.Errorf("Expected analyze_symptoms named, got %v", err)
	}
}
