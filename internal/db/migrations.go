package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'employee_status') THEN
			CREATE TYPE employee_status AS ENUM ('AVAILABLE', 'ON_DUTY', 'ON_TRIP', 'ON_LEAVE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('AVAILABLE', 'ON_DUTY', 'ON_TRIP', 'MAINTENANCE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'request_status') THEN
			CREATE TYPE request_status AS ENUM ('PENDING', 'APPROVED', 'REJECTED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'request_priority') THEN
			CREATE TYPE request_priority AS ENUM ('LOW', 'MEDIUM', 'HIGH');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_status') THEN
			CREATE TYPE trip_status AS ENUM ('SCHEDULED', 'IN_PROGRESS', 'COMPLETED', 'CANCELED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'maintenance_status') THEN
			CREATE TYPE maintenance_status AS ENUM ('PENDING', 'IN_PROGRESS', 'COMPLETED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'maintenance_type') THEN
			CREATE TYPE maintenance_type AS ENUM ('CORRECTIVE', 'PREVENTIVE');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS sectors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(255) NOT NULL,
		job_title VARCHAR(128),
		can_drive BOOLEAN NOT NULL DEFAULT FALSE,
		sector_id UUID NOT NULL REFERENCES sectors(id),
		status employee_status NOT NULL DEFAULT 'AVAILABLE',
		license_number VARCHAR(32),
		license_category VARCHAR(8),
		license_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_sector_id ON employees (sector_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_status ON employees (status);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_can_drive ON employees (can_drive);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		model VARCHAR(128) NOT NULL,
		plate VARCHAR(16) NOT NULL UNIQUE,
		sector_id UUID NOT NULL REFERENCES sectors(id),
		mileage BIGINT NOT NULL DEFAULT 0,
		status vehicle_status NOT NULL DEFAULT 'AVAILABLE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_sector_id ON vehicles (sector_id);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE TABLE IF NOT EXISTS vehicle_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(255) NOT NULL,
		sector_id UUID NOT NULL REFERENCES sectors(id),
		details TEXT,
		destination VARCHAR(255),
		priority request_priority NOT NULL DEFAULT 'LOW',
		status request_status NOT NULL DEFAULT 'PENDING',
		requested_by UUID NOT NULL,
		requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_requests_status ON vehicle_requests (status);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_requests_requested_at ON vehicle_requests (requested_at);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_requests_requested_by ON vehicle_requests (requested_by);`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		request_id UUID NOT NULL REFERENCES vehicle_requests(id),
		title VARCHAR(255) NOT NULL,
		driver_id UUID NOT NULL REFERENCES employees(id),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		origin VARCHAR(255) NOT NULL,
		destination VARCHAR(255) NOT NULL,
		departure_at TIMESTAMPTZ NOT NULL,
		arrival_at TIMESTAMPTZ,
		status trip_status NOT NULL DEFAULT 'SCHEDULED',
		start_mileage BIGINT,
		end_mileage BIGINT,
		start_notes TEXT,
		end_notes TEXT,
		start_checklist JSONB,
		end_checklist JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT chk_trip_mileage CHECK (
			end_mileage IS NULL OR start_mileage IS NULL OR end_mileage >= start_mileage
		)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_status ON trips (status);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_driver_id ON trips (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_vehicle_id ON trips (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_departure_at ON trips (departure_at);`,
	`CREATE TABLE IF NOT EXISTS trip_refuelings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		liters NUMERIC NOT NULL,
		odometer BIGINT,
		cost NUMERIC,
		station VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_refuelings_trip_id ON trip_refuelings (trip_id);`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		type maintenance_type NOT NULL,
		description TEXT NOT NULL,
		status maintenance_status NOT NULL DEFAULT 'PENDING',
		requested_by UUID NOT NULL,
		requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_requests_vehicle_id ON maintenance_requests (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_requests_status ON maintenance_requests (status);`,
	`CREATE TABLE IF NOT EXISTS trip_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		old_status trip_status,
		new_status trip_status NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_status_log_trip_id ON trip_status_log (trip_id);`,
	`CREATE TABLE IF NOT EXISTS request_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		request_id UUID NOT NULL REFERENCES vehicle_requests(id) ON DELETE CASCADE,
		old_status request_status,
		new_status request_status NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_request_status_log_request_id ON request_status_log (request_id);`,
	`CREATE TABLE IF NOT EXISTS maintenance_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		maintenance_id UUID NOT NULL REFERENCES maintenance_requests(id) ON DELETE CASCADE,
		old_status maintenance_status,
		new_status maintenance_status NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_status_log_maintenance_id ON maintenance_status_log (maintenance_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_employees_updated_at') THEN
			CREATE TRIGGER trg_employees_updated_at
				BEFORE UPDATE ON employees
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicle_requests_updated_at') THEN
			CREATE TRIGGER trg_vehicle_requests_updated_at
				BEFORE UPDATE ON vehicle_requests
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_trips_updated_at') THEN
			CREATE TRIGGER trg_trips_updated_at
				BEFORE UPDATE ON trips
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_maintenance_requests_updated_at') THEN
			CREATE TRIGGER trg_maintenance_requests_updated_at
				BEFORE UPDATE ON maintenance_requests
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
