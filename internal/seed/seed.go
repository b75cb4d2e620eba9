package seed

import (
	"log/slog"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/config"
	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/repository"
	"github.com/amandla-civic/address-manager/backend/internal/utils"
)

const emailDomain = "example.co.za"

// SeedDemoData loads a small coherent dataset: approved leaders and
// officers, officers with live schedules and slots, and residents at
// various stages of the verification workflow.
func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	password := cfg.Seed.User.Password

	var leaders []*domain.User
	for i := 0; i < 2; i++ {
		user, err := utils.GenerateRandomUser(domain.RoleLeader, password, emailDomain)
		if err != nil {
			slog.Error("failed to generate leader", "error", err)
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert leader", "error", err)
			continue
		}
		if err := repo.CreateLeaderProfile(utils.GenerateRandomLeaderProfile(user)); err != nil {
			slog.Error("failed to insert leader profile", "error", err)
			continue
		}
		leaders = append(leaders, user)
	}

	for i := 0; i < 3; i++ {
		user, err := utils.GenerateRandomUser(domain.RoleOfficer, password, emailDomain)
		if err != nil {
			slog.Error("failed to generate officer", "error", err)
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert officer", "error", err)
			continue
		}
		profile := utils.GenerateRandomOfficerProfile(user)
		if err := repo.CreateOfficerProfile(profile); err != nil {
			slog.Error("failed to insert officer profile", "error", err)
			continue
		}

		schedule := utils.GenerateRandomWeeklySchedule(user.ID)
		if err := repo.CreateWeeklySchedule(schedule); err != nil {
			slog.Error("failed to insert weekly schedule", "error", err)
			continue
		}
		added, err := repo.GenerateSlots(schedule, profile, time.Now())
		if err != nil {
			slog.Error("failed to generate slots", "error", err)
			continue
		}
		slog.Info("officer seeded", "email", user.Email, "slots", added)
	}

	for i := 0; i < 6; i++ {
		user, err := utils.GenerateRandomUser(domain.RoleResident, password, emailDomain)
		if err != nil {
			slog.Error("failed to generate resident", "error", err)
			continue
		}
		user.IsVerified = false
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert resident", "error", err)
			continue
		}
		if err := repo.CreateResidentProfile(utils.GenerateRandomResidentProfile(user)); err != nil {
			slog.Error("failed to insert resident profile", "error", err)
			continue
		}

		application := &domain.AddressApplication{
			ApplicantID: user.ID,
			Status:      domain.ApplicationPending,
		}
		if err := repo.CreateApplication(application); err != nil {
			slog.Error("failed to insert application", "error", err)
			continue
		}

		// the first half of the residents are already past leader review
		if i < 3 && len(leaders) > 0 {
			leader := leaders[i%len(leaders)]
			if err := application.Transition(domain.ApplicationLeaderApproved); err != nil {
				slog.Error("failed to approve application", "error", err)
				continue
			}
			application.LeaderID = &leader.ID
			application.LeaderNotes = "Resident known to the ward office."
			if err := repo.UpdateApplication(application); err != nil {
				slog.Error("failed to update application", "error", err)
				continue
			}
		}
	}

	slog.Info("demo data seeded")
}
