package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openkraft/archfit/internal/domain"
	"github.com/openkraft/archfit/internal/domain/migration"
)

// MigrationCheck flags destructive statements in migration files. It is
// advisory and never fails the run.
type MigrationCheck struct {
	source domain.MigrationSource
}

func NewMigrationCheck(source domain.MigrationSource) *MigrationCheck {
	return &MigrationCheck{source: source}
}

func (c *MigrationCheck) Name() string    { return domain.CheckMigrations }
func (c *MigrationCheck) Mandatory() bool { return false }

func (c *MigrationCheck) Run(_ context.Context, projectPath string, cfg domain.Config) domain.CheckOutcome {
	files, err := c.source.List(resolvePath(projectPath, cfg.Paths.Migrations))
	if errors.Is(err, os.ErrNotExist) {
		return domain.Skipped(c.Name(), fmt.Sprintf("Migrations directory %s not found", cfg.Paths.Migrations), false)
	}
	if err != nil {
		msg := fmt.Sprintf("Database migration check could not read migrations: %v", err)
		return domain.CheckOutcome{
			Name:    c.Name(),
			Status:  domain.StatusWarn,
			Message: msg,
			Details: []domain.Detail{{Status: domain.StatusWarn, Message: msg}},
		}
	}

	warnings := migration.Scan(files, cfg.MigrationPatterns)
	slog.Debug("scanned migrations", "files", len(files), "warnings", len(warnings))

	if len(warnings) == 0 {
		return pass(c.Name(), "Database migrations safety check passed", false, nil)
	}

	items := make([]string, 0, len(warnings)+1)
	for _, w := range warnings {
		items = append(items, w.String())
	}
	items = append(items, migration.RollbackReminder)
	return domain.CheckOutcome{
		Name:    c.Name(),
		Status:  domain.StatusWarn,
		Message: domain.FailureMessage("Database migration warnings", items),
		Details: details(domain.StatusWarn, items),
	}
}
