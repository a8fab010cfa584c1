package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "launch", Password: "secret", DBName: "launch_booking"}
	assert.Equal(t, "postgres://launch:secret@db:5432/launch_booking?sslmode=disable", cfg.DSN())

	cfg.SSLMode = "require"
	assert.Equal(t, "postgres://launch:secret@db:5432/launch_booking?sslmode=require", cfg.DSN())
}
