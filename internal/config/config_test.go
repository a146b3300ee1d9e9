package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	var (
		cfg Config
		err error
	)

	cfg, err = ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.URI == "" {
		t.Error("DB.URI should not be empty")
	}

	if cfg.DB.Name == "" {
		t.Error("DB.Name should not be empty")
	}

	// Defaults must be filled in
	if cfg.Webserver.ShutDownTime == 0 {
		t.Error("Webserver.ShutDownTime should default to a non zero value")
	}

	if cfg.Webserver.JWT.ExpiryTime == 0 {
		t.Error("Webserver.JWT.ExpiryTime should default to a non zero value")
	}
}

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		return Config{
			DB: DB{
				URI:  "mongodb://localhost:27017",
				Name: "go-auth-admin",
			},
			Webserver: Webserver{
				Port:       8080,
				URL:        "http://localhost:8080",
				Argon2Salt: "0123456789abcdef",
				JWT: JWT{
					SigningKey: "secret",
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: true,
		},
		{
			name:    "missing URL",
			mutate:  func(c *Config) { c.Webserver.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing db uri",
			mutate:  func(c *Config) { c.DB.URI = "" },
			wantErr: true,
		},
		{
			name:    "missing db name",
			mutate:  func(c *Config) { c.DB.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing salt",
			mutate:  func(c *Config) { c.Webserver.Argon2Salt = "" },
			wantErr: true,
		},
		{
			name:    "missing signing key",
			mutate:  func(c *Config) { c.Webserver.JWT.SigningKey = "" },
			wantErr: true,
		},
		{
			name: "dev mode allows empty salt and key",
			mutate: func(c *Config) {
				c.DevMode = true
				c.Webserver.Argon2Salt = ""
				c.Webserver.JWT.SigningKey = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := validate(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	// Set JSON override environment variable
	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090}}`
	t.Setenv("GO_AUTH_ADMIN_CONFIG_JSON", jsonOverride)

	var (
		cfg Config
		err error
	)

	cfg, err = ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if tomlStr == "" {
		t.Error("DumpConfig() returned empty string")
	}

	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonStr == "" {
		t.Error("DumpConfigJSON() returned empty string")
	}

	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
