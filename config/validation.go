package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// driverRequirements lists the settings each store driver cannot run without
var driverRequirements = map[string]func(*Config) []ValidationError{
	DriverMongo: func(cfg *Config) []ValidationError {
		var errs []ValidationError
		if cfg.MongoURI == "" {
			errs = append(errs, ValidationError{Field: "MONGO_URI", Message: "is required"})
		}
		if cfg.MongoDatabase == "" {
			errs = append(errs, ValidationError{Field: "MONGO_DATABASE", Message: "is required"})
		}
		if cfg.MongoCollection == "" {
			errs = append(errs, ValidationError{Field: "MONGO_COLLECTION", Message: "is required"})
		}
		return errs
	},
	DriverPostgres: func(cfg *Config) []ValidationError {
		var errs []ValidationError
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "is required"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_NAME", Message: "is required"})
		}
		// Production passwords must come from the environment or a Docker secret
		if cfg.Environment.IsProduction() && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "db_password secret is required in production"})
		}
		return errs
	},
	DriverSQLite: func(cfg *Config) []ValidationError {
		if cfg.SQLitePath == "" {
			return []ValidationError{{Field: "SQLITE_PATH", Message: "is required"}}
		}
		return nil
	},
}

// ValidateConfig checks if the configuration meets the requirements of the selected store driver
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "is required"}.Error())
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "REQUEST_TIMEOUT", Message: "must be positive"}.Error())
	}

	check, ok := driverRequirements[cfg.DBDriver]
	if !ok {
		errors = append(errors, ValidationError{
			Field:   "DB_DRIVER",
			Message: fmt.Sprintf("unknown driver %q (want %s, %s or %s)", cfg.DBDriver, DriverMongo, DriverPostgres, DriverSQLite),
		}.Error())
	} else {
		for _, e := range check(cfg) {
			errors = append(errors, e.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
