package postgres

import (
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := config.Postgres{
		Host: "db", Port: 5433, User: "shop", Password: "secret", DBName: "storefront", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=shop password=secret dbname=storefront sslmode=disable", DSN(cfg))
}
