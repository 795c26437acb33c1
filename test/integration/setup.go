package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// Seed holds the IDs of the fixture rows inserted by SeedCatalog.
type Seed struct {
	UserID          int64
	OtherUserID     int64
	ChairsID        int64
	OutdoorChairsID int64
	DesksID         int64
	WoodenChairID   int64
	MetalChairID    int64
	StandingDeskID  int64
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing. It mirrors
// migrations/schema.sql.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			slug TEXT UNIQUE
		);

		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			slug TEXT UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL DEFAULT 0 CHECK (price >= 0),
			images TEXT[] NOT NULL DEFAULT '{}',
			category_id BIGINT REFERENCES categories (id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			text TEXT NOT NULL DEFAULT '',
			user_id BIGINT NOT NULL REFERENCES users (id),
			product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users (id),
			status TEXT NOT NULL DEFAULT 'PENDING',
			total BIGINT NOT NULL DEFAULT 0 CHECK (total >= 0),
			payment_reference UUID NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL CHECK (quantity >= 1),
			price BIGINT NOT NULL CHECK (price >= 0)
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalog inserts two users, three categories (two of which share the
// name "Chairs") and three products with staggered creation times.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) Seed {
	t.Helper()

	ctx := context.Background()
	var s Seed

	users := []struct {
		email string
		id    *int64
	}{
		{"buyer@example.com", &s.UserID},
		{"other@example.com", &s.OtherUserID},
	}
	for _, u := range users {
		err := pool.QueryRow(ctx,
			`INSERT INTO users (email) VALUES ($1) RETURNING id`, u.email).Scan(u.id)
		if err != nil {
			t.Fatalf("failed to seed user %s: %v", u.email, err)
		}
	}

	categories := []struct {
		name string
		slug string
		id   *int64
	}{
		{"Chairs", "chairs", &s.ChairsID},
		{"Chairs", "outdoor-chairs", &s.OutdoorChairsID},
		{"Desks", "desks", &s.DesksID},
	}
	for _, c := range categories {
		err := pool.QueryRow(ctx,
			`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`,
			c.name, c.slug).Scan(c.id)
		if err != nil {
			t.Fatalf("failed to seed category %s: %v", c.slug, err)
		}
	}

	products := []struct {
		name       string
		slug       string
		desc       string
		price      int64
		categoryID *int64
		age        string
		id         *int64
	}{
		{"Wooden Chair", "wooden-chair", "a sturdy oak chair", 100, &s.ChairsID, "3 days", &s.WoodenChairID},
		{"Metal Chair", "metal-chair", "weatherproof", 300, &s.OutdoorChairsID, "2 days", &s.MetalChairID},
		{"Standing Desk", "standing-desk", "height adjustable", 500, &s.DesksID, "1 day", &s.StandingDeskID},
	}
	for _, p := range products {
		err := pool.QueryRow(ctx,
			`INSERT INTO products (name, slug, description, price, category_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, now() - $6::interval)
			 RETURNING id`,
			p.name, p.slug, p.desc, p.price, *p.categoryID, p.age).Scan(p.id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.slug, err)
		}
	}

	return s
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "reviews", "products", "categories", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
