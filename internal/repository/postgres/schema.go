// internal/repository/postgres/schema.go
package postgres

import "context"

// EnsureSchema creates the desk tables when they do not exist yet. The desk
// runs against a single database it owns, so schema setup lives next to the
// repositories instead of a migration tool.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id          BIGSERIAL PRIMARY KEY,
			brand       TEXT NOT NULL,
			model       TEXT NOT NULL,
			year        INT NOT NULL,
			plate       TEXT NOT NULL UNIQUE,
			vtype       TEXT NOT NULL,
			daily_rate  DOUBLE PRECISION NOT NULL,
			available   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id               BIGSERIAL PRIMARY KEY,
			name             TEXT NOT NULL,
			phone            TEXT NOT NULL,
			email            TEXT NOT NULL UNIQUE,
			drivers_license  TEXT UNIQUE,
			government_id    TEXT,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id              BIGSERIAL PRIMARY KEY,
			reference       TEXT NOT NULL UNIQUE,
			vehicle_id      BIGINT NOT NULL REFERENCES vehicles(id),
			customer_id     BIGINT NOT NULL REFERENCES customers(id),
			driver_flag     BOOLEAN NOT NULL DEFAULT FALSE,
			start_datetime  TIMESTAMPTZ NOT NULL,
			end_datetime    TIMESTAMPTZ NOT NULL,
			location        TEXT NOT NULL,
			driver_fee      DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_cost      DOUBLE PRECISION NOT NULL DEFAULT 0,
			status          TEXT NOT NULL DEFAULT 'active',
			distance_km     DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS damage_records (
			id              BIGSERIAL PRIMARY KEY,
			reservation_id  BIGINT NOT NULL REFERENCES reservations(id),
			condition       TEXT NOT NULL,
			damage_cost     DOUBLE PRECISION NOT NULL,
			notes           TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id              BIGSERIAL PRIMARY KEY,
			reservation_id  BIGINT NOT NULL REFERENCES reservations(id),
			amount          DOUBLE PRECISION NOT NULL,
			status          TEXT NOT NULL,
			method          TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_records (
			id          BIGSERIAL PRIMARY KEY,
			vehicle_id  BIGINT NOT NULL REFERENCES vehicles(id),
			checklist   TEXT NOT NULL DEFAULT '',
			cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
			notes       TEXT NOT NULL DEFAULT '',
			start_date  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			end_date    TIMESTAMPTZ,
			status      TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_vehicle_status ON reservations (vehicle_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle_status ON maintenance_records (vehicle_id, status)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
