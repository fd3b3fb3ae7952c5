package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// GetEnv loads .env (when present) and fills Config from the environment.
// Fields without an envDefault tag are required.
func GetEnv() (config *Config, er error) {
	err := godotenv.Load()
	if err != nil {
		_ = godotenv.Load("../../.env")
	}

	config = &Config{}
	if er = loadFromEnv(config); er != nil {
		return nil, er
	}

	if er = config.validate(); er != nil {
		return nil, er
	}

	return config, nil
}

func (c *Config) validate() error {
	if !c.AppEnv.IsValid() {
		return fmt.Errorf("invalid value for APP_ENV: %q", c.AppEnv)
	}
	if !c.SessionDriver.IsValid() {
		return fmt.Errorf("invalid value for SESSION_DRIVER: %q", c.SessionDriver)
	}
	if c.DBEnabled && !c.DBDriver.IsValid() {
		return fmt.Errorf("invalid value for DB_DRIVER: %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DelegasiAPIKey) == "" || strings.TrimSpace(c.DelegasiAPISecret) == "" {
		return fmt.Errorf("DELEGASI_API_KEY and DELEGASI_API_SECRET must not be empty")
	}
	if c.AppEnv.IsDeployed() && !strings.HasPrefix(c.DelegasiBaseURL, "https://") {
		return fmt.Errorf("DELEGASI_BASE_URL must use https in %s", c.AppEnv)
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	return nil
}

// DelegasiTimeout is the per-request timeout for provider calls.
func (c *Config) DelegasiTimeout() time.Duration {
	return time.Duration(c.DelegasiTimeoutSeconds) * time.Second
}

// SecureCookie reports whether the session cookie needs the Secure flag.
func (c *Config) SecureCookie() bool {
	return c.AppEnv.IsDeployed() || strings.HasPrefix(c.AppBaseURL, "https://")
}

// SessionTTL is how long an idle session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func loadFromEnv(config *Config) (er error) {
	v := reflect.ValueOf(config).Elem()
	t := v.Type()

	for i := range make([]struct{}, v.NumField()) {
		field := t.Field(i)
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, exists := os.LookupEnv(envTag)
		if !exists {
			def, hasDefault := field.Tag.Lookup("envDefault")
			if !hasDefault {
				return fmt.Errorf("environment variable %s not set", envTag)
			}
			value = def
		}

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(value)
		case reflect.Int:
			intValue, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %v", envTag, err)
			}
			v.Field(i).SetInt(int64(intValue))
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean value for %s: %v", envTag, err)
			}
			v.Field(i).SetBool(boolValue)
		default:
			panic("unhandled default case")
		}
	}

	return nil
}
