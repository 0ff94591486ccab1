package core

import (
	"os"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig() failed: %v", err)
		}
		if conf.AppName != "Chuo" {
			t.Errorf("AppName = %s, want Chuo", conf.AppName)
		}
		if !conf.Debug {
			t.Error("Debug = false, want true")
		}
		if conf.Server.JWTExpirationDelta != 7*24*time.Hour {
			t.Errorf("JWTExpirationDelta = %v, want %v", conf.Server.JWTExpirationDelta, 7*24*time.Hour)
		}
		assertOriginAllowed(t, conf, conf.FrontendBaseURL)
	})

	t.Run("custom frontend is always an allowed origin", func(t *testing.T) {
		frontend := "https://portal.chuo.cd"
		os.Setenv("DEV_FRONTENDBASEURL", frontend)
		defer os.Unsetenv("DEV_FRONTENDBASEURL")

		conf, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig() failed: %v", err)
		}
		if conf.FrontendBaseURL != frontend {
			t.Errorf("FrontendBaseURL = %s, want %s", conf.FrontendBaseURL, frontend)
		}
		assertOriginAllowed(t, conf, frontend)
	})
}

func assertOriginAllowed(t *testing.T, conf *Config, origin string) {
	t.Helper()
	for _, o := range conf.Server.AllowedOrigins {
		if o == origin {
			return
		}
	}
	t.Errorf("AllowedOrigins = %v, want it to contain %s", conf.Server.AllowedOrigins, origin)
}
