package utils

import (
	"testing"

	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

func TestGetEnvHelpers(t *testing.T) {
	log := logger.Nop()

	t.Setenv("MOVIES_ETL_TEST_STR", "sqlite")
	if got := GetEnv("MOVIES_ETL_TEST_STR", "postgres", log); got != "sqlite" {
		t.Fatalf("GetEnv: got %q", got)
	}
	if got := GetEnv("MOVIES_ETL_TEST_MISSING", "postgres", nil); got != "postgres" {
		t.Fatalf("GetEnv default: got %q", got)
	}

	t.Setenv("MOVIES_ETL_TEST_INT", " 250 ")
	if got := GetEnvAsInt("MOVIES_ETL_TEST_INT", 100, log); got != 250 {
		t.Fatalf("GetEnvAsInt: got %d", got)
	}
	t.Setenv("MOVIES_ETL_TEST_INT", "many")
	if got := GetEnvAsInt("MOVIES_ETL_TEST_INT", 100, log); got != 100 {
		t.Fatalf("GetEnvAsInt fallback: got %d", got)
	}

	t.Setenv("MOVIES_ETL_TEST_BOOL", "yes")
	if !GetEnvAsBool("MOVIES_ETL_TEST_BOOL", false, log) {
		t.Fatalf("GetEnvAsBool: want true")
	}
	t.Setenv("MOVIES_ETL_TEST_BOOL", "maybe")
	if GetEnvAsBool("MOVIES_ETL_TEST_BOOL", false, log) {
		t.Fatalf("GetEnvAsBool fallback: want false")
	}

	t.Setenv("MOVIES_ETL_TEST_FLOAT", "0.25")
	if got := GetEnvAsFloat("MOVIES_ETL_TEST_FLOAT", 1, log); got != 0.25 {
		t.Fatalf("GetEnvAsFloat: got %v", got)
	}
	t.Setenv("MOVIES_ETL_TEST_FLOAT", "half")
	if got := GetEnvAsFloat("MOVIES_ETL_TEST_FLOAT", 1, log); got != 1 {
		t.Fatalf("GetEnvAsFloat fallback: got %v", got)
	}
}

func TestShownMasksCredentials(t *testing.T) {
	if got := shown("POSTGRES_PASSWORD", "hunter2"); got != "[REDACTED]" {
		t.Fatalf("password not masked: %q", got)
	}
	if got := shown("DATABASE_DSN", "postgres://u:p@h/db"); got != "[REDACTED]" {
		t.Fatalf("dsn not masked: %q", got)
	}
	if got := shown("DB_DRIVER", "sqlite"); got != "sqlite" {
		t.Fatalf("driver masked: %q", got)
	}
}
