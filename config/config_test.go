package config

import "testing"

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "test-secret-key-for-unit-testing"},
		Branch: BranchConfig{Default: "calicut"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown branch", func(c *Config) { c.Branch.Default = "mumbai" }, true},
		{"branch case-insensitive", func(c *Config) { c.Branch.Default = "Global" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FETS_AUTH_JWT_SECRET", "env-secret-key-0123456789")
	t.Setenv("FETS_SERVER_PORT", "9090")
	t.Setenv("FETS_BRANCH_DEFAULT", "cochin")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Branch.Default != "cochin" {
		t.Errorf("expected branch cochin, got %s", cfg.Branch.Default)
	}
	if cfg.Database.Timezone != "Asia/Kolkata" {
		t.Errorf("expected default timezone Asia/Kolkata, got %s", cfg.Database.Timezone)
	}
}
