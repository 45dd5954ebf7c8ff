package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every field the server cannot run without is
// present. The JWT secret deliberately has no default in any environment.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"server port": cfg.ServerPort,
		"server host": cfg.ServerHost,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db name":     cfg.DBName,
	}
	for name, value := range required {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is not set", name))
		}
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, "jwt secret is not set (JWT_SECRET env var or jwt_secret docker secret)")
	}

	switch cfg.StorageBackend {
	case StorageLocal, StorageS3:
	default:
		errs = append(errs, fmt.Sprintf("storage backend %q is not supported (use %q or %q)",
			cfg.StorageBackend, StorageLocal, StorageS3))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
