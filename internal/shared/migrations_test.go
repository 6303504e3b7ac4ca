package shared

import "testing"

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations creates job run tables", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("expected migrations to apply, got %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM job_runs").Scan(&count); err != nil {
			t.Fatalf("expected job_runs table to exist: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty job_runs table, got %d rows", count)
		}

		var seq int
		if err := db.QueryRow("SELECT value FROM job_runs_sequence WHERE id = 1").Scan(&seq); err != nil {
			t.Fatalf("expected sequence row to be seeded: %v", err)
		}
	})

	t.Run("RunMigrations is idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})

	t.Run("RollbackMigration drops tables", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migrations failed: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		if _, err := db.Exec("SELECT COUNT(*) FROM job_runs"); err == nil {
			t.Error("expected job_runs table to be dropped")
		}
	})

	t.Run("RollbackMigration fails with nothing applied", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migrations failed: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Fatal("expected error when no migrations remain")
		}
	})
}
