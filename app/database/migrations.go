package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema and applies incremental updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	tables := []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY,
			type VARCHAR(50) NOT NULL,
			category VARCHAR(100),
			amount NUMERIC NOT NULL,
			currency VARCHAR(10) NOT NULL DEFAULT 'NZD',
			date DATE NOT NULL,
			note TEXT,
			parent_expense_id UUID REFERENCES expenses(id) ON DELETE CASCADE,
			is_installment BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS membership_contracts (
			id UUID PRIMARY KEY,
			expense_id UUID NOT NULL REFERENCES expenses(id),
			total_amount NUMERIC NOT NULL,
			period_amount NUMERIC NOT NULL,
			period_type VARCHAR(20) NOT NULL DEFAULT 'weekly',
			day_of_week INTEGER,
			day_of_month INTEGER,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT chk_contract_dates CHECK (start_date < end_date)
		)`,
		`CREATE TABLE IF NOT EXISTS charges (
			id UUID PRIMARY KEY,
			contract_id UUID NOT NULL REFERENCES membership_contracts(id) ON DELETE CASCADE,
			expense_id UUID REFERENCES expenses(id),
			charge_date DATE NOT NULL,
			amount NUMERIC NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id UUID PRIMARY KEY,
			type VARCHAR(50) NOT NULL,
			date DATE NOT NULL,
			distance INTEGER NOT NULL DEFAULT 0,
			calculated_weight NUMERIC NOT NULL DEFAULT 0,
			note TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(100) PRIMARY KEY,
			value TEXT NOT NULL,
			description TEXT,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating tables: %v", err)
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_parent ON expenses(parent_expense_id)`,
		`CREATE INDEX IF NOT EXISTS idx_contracts_expense ON membership_contracts(expense_id)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_contract ON charges(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_expense ON charges(expense_id)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_date ON charges(charge_date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error creating index: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
