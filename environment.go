package waypoint

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment names where a waypoint server is deployed.
// Middlewares such as ForceHTTPS and ReportPanic relax themselves in Development.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

var _ Enumerable = Development

// ParseEnvironment reads s, ignoring case and surrounding space, as an Environment.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToUpper(strings.TrimSpace(s)))
	if err := env.Valid(); err != nil {
		return "", fmt.Errorf("%w: environment %q", err, s)
	}

	return env, nil
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }

// envVarOr parses the value of the environment variable key with parse.
// def stands in when key is unset, blank, or fails to parse.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}

	parsed, err := parse(val)
	if err != nil {
		return def
	}

	return parsed
}

// EnvVarOrBool reads key as "true" or "false", in any case.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(val string) (bool, error) {
		switch strings.ToLower(val) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, ErrNotValid
		}
	})
}

// EnvVarOrDuration reads key as understood by [time.ParseDuration], e.g., "250ms".
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key with ParseEnvironment.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, ParseEnvironment)
}

// EnvVarOrInt reads key as a base 10 int.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrString reads key verbatim, with def standing in for a blank value.
func EnvVarOrString(key, def string) string {
	if val := os.Getenv(key); strings.TrimSpace(val) != "" {
		return val
	}

	return def
}
