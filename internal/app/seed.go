package app

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawrenceChege/order-management/internal/config"
	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// SeedReferenceData provisions the canonical rows every operation depends
// on: lifecycle states, action types, default roles, currencies and
// categories. Safe to run on every startup.
func SeedReferenceData(
	ctx context.Context,
	states repositories.StateRepository,
	actionTypes repositories.ActionTypeRepository,
	roles repositories.RoleRepository,
	currencies repositories.CurrencyRepository,
	categories repositories.CategoryRepository,
) error {
	stateNames := []struct{ name, description string }{
		{models.StateActive, "Entity is live"},
		{models.StateComplete, "Terminal: finished successfully"},
		{models.StateFailed, "Terminal: finished unsuccessfully"},
		{models.StateDisabled, "Entity is switched off"},
	}
	for _, s := range stateNames {
		if _, err := states.GetOrCreate(ctx, s.name, s.description); err != nil {
			return err
		}
	}

	active, err := states.GetByName(ctx, models.StateActive)
	if err != nil {
		return err
	}
	for _, name := range constants.AllActionTypes {
		if _, err := actionTypes.GetOrCreate(ctx, name, active.ID); err != nil {
			return err
		}
	}

	if _, err := roles.GetOrCreate(ctx, "Admin", "Full back-office access", active.ID); err != nil {
		return err
	}
	if _, err := roles.GetOrCreate(ctx, "Clerk", "Day-to-day order handling", active.ID); err != nil {
		return err
	}

	if _, err := currencies.GetOrCreate(ctx, "Kenyan Shilling", "KES", active.ID); err != nil {
		return err
	}
	if _, err := currencies.GetOrCreate(ctx, "US Dollar", "USD", active.ID); err != nil {
		return err
	}

	if _, err := categories.GetOrCreate(ctx, "General", "Uncategorized products", active.ID); err != nil {
		return err
	}

	utils.Logger.Info("Reference data seeded")
	return nil
}

// SeedSuperuser creates the default superuser when it does not exist yet.
// Skipped when no seed password is configured.
func SeedSuperuser(
	ctx context.Context,
	cfg *config.Config,
	states repositories.StateRepository,
	users repositories.EUserRepository,
) error {
	if cfg.SeedAdminPassword == "" {
		utils.Logger.Info("SEED_ADMIN_PASSWORD not set; skipping superuser seed")
		return nil
	}
	if _, err := users.GetByUsername(ctx, cfg.SeedAdminUsername); err == nil {
		return nil
	}

	active, err := states.GetByName(ctx, models.StateActive)
	if err != nil {
		return err
	}
	disabled, err := states.GetByName(ctx, models.StateDisabled)
	if err != nil {
		return err
	}

	admin := &models.EUser{
		ID:          uuid.New(),
		Username:    cfg.SeedAdminUsername,
		Email:       cfg.SeedAdminEmail,
		PhoneNumber: utils.DefaultCountryCode + "000000000",
		IsSuperuser: true,
		StateID:     active.ID,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := users.SetPassword(ctx, admin.ID, string(hash), active.ID, disabled.ID); err != nil {
		return err
	}
	utils.Logger.Infof("Seeded superuser %q", admin.Username)
	return nil
}
