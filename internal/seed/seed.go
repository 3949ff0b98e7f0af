package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/acadsys/aims/internal/app/models"
	appRepos "github.com/acadsys/aims/internal/app/repositories"
	"github.com/acadsys/aims/internal/pkg/apperrors"
	"github.com/acadsys/aims/internal/pkg/auth"
)

// defaultSlots is the institutional timetable grid. Every offering bound to
// a slot occupies one of these labels; two offerings in the same slot clash.
var defaultSlots = []struct {
	label  string
	timing string
}{
	{"A", "Mon 08:00-08:50, Wed 09:00-09:50, Thu 10:00-10:50"},
	{"B", "Mon 09:00-09:50, Wed 10:00-10:50, Thu 08:00-08:50"},
	{"C", "Mon 10:00-10:50, Wed 08:00-08:50, Thu 09:00-09:50"},
	{"D", "Tue 08:00-08:50, Fri 09:00-09:50"},
	{"E", "Tue 09:00-09:50, Fri 10:00-10:50"},
	{"F", "Tue 10:00-10:50, Fri 08:00-08:50"},
	{"G", "Mon 14:00-15:15, Wed 14:00-15:15"},
	{"H", "Tue 14:00-15:15, Thu 14:00-15:15"},
}

var defaultDepartments = []struct {
	name string
	code string
}{
	{"Computer Science and Engineering", "CSE"},
	{"Electrical Engineering", "EE"},
	{"Mechanical Engineering", "ME"},
	{"Mathematics", "MA"},
	{"Physics", "PH"},
	{"Humanities and Social Sciences", "HS"},
}

// CreateDefaultData seeds the reference data a fresh installation needs:
// the slot grid, the base departments and the default admin account. Every
// step is idempotent, so running it on every startup is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for _, slot := range defaultSlots {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO slots (label, timing) VALUES ($1, $2)
			ON CONFLICT (label) DO NOTHING`,
			slot.label, slot.timing)
		if err != nil {
			lgr.Error().Err(err).Str("slot", slot.label).Msg("Error seeding slot")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, dept := range defaultDepartments {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO departments (name, code) VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING`,
			dept.name, dept.code)
		if err != nil {
			lgr.Error().Err(err).Str("department", dept.code).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Default admin account
	const adminEmail = "admin@aims.edu"
	exists, err := userRepo.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := auth.HashPassword("Admin123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     adminEmail,
				Password:  hashedPassword,
				FirstName: "System",
				LastName:  "Administrator",
				RoleType:  appModels.RoleAdmin,
				IsActive:  true,
			}

			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else if err == nil {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	}

	// A fresh installation gets a current term so enrollment can start
	// without an extra admin step.
	if err := seedCurrentTerm(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// seedCurrentTerm marks a bootstrap term current when no term exists yet.
func seedCurrentTerm(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM academic_terms`).Scan(&count); err != nil {
		lgr.Error().Err(err).Msg("Error counting academic terms")
		return err
	}
	if count > 0 {
		return nil
	}

	year := time.Now().Year()
	code := fmt.Sprintf("%d-I", year)
	name := fmt.Sprintf("First Semester %d", year)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	_, err := dbPool.Exec(ctx, `
		INSERT INTO academic_terms (code, name, start_date, end_date, is_current)
		VALUES ($1, $2, $3, $4, TRUE)`,
		code, name, start, end)
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding bootstrap term")
		return err
	}

	lgr.Info().Str("code", code).Msg("Bootstrap term created and marked current")
	return nil
}
