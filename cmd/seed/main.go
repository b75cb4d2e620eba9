package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/config"
	"github.com/amandla-civic/address-manager/backend/internal/domain"
	"github.com/amandla-civic/address-manager/backend/internal/repository"
	"github.com/amandla-civic/address-manager/backend/internal/seed"
	"github.com/amandla-civic/address-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const emailDomain = "example.co.za"

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: random residents, 2: random leaders, 3: random officers, 4: schedules for every officer, 5: demo dataset)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		insertUsers(repo, cfg, domain.RoleResident, n)
	case 2:
		insertUsers(repo, cfg, domain.RoleLeader, n)
	case 3:
		insertUsers(repo, cfg, domain.RoleOfficer, n)
	case 4:
		insertSchedules(repo)
	case 5:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation")
	}
}

func insertUsers(repo *repository.Repository, cfg *config.Config, role domain.Role, n int) {
	if n <= 0 {
		slog.Error("please supply a positive count")
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(role, cfg.Seed.User.Password, emailDomain)
		if err != nil {
			slog.Error("failed to generate user", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert user", slog.String("error", err.Error()))
			continue
		}

		switch role {
		case domain.RoleResident:
			err = repo.CreateResidentProfile(utils.GenerateRandomResidentProfile(user))
		case domain.RoleLeader:
			err = repo.CreateLeaderProfile(utils.GenerateRandomLeaderProfile(user))
		case domain.RoleOfficer:
			err = repo.CreateOfficerProfile(utils.GenerateRandomOfficerProfile(user))
		}
		if err != nil {
			slog.Error("failed to insert profile", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("users inserted", slog.Int("count", cnt))
}

func insertSchedules(repo *repository.Repository) {
	officers, err := repo.GetUsersByRole(domain.RoleOfficer)
	if err != nil {
		slog.Error("failed to list officers", slog.String("error", err.Error()))
		return
	}

	cnt := 0
	for _, officer := range officers {
		profile, err := repo.GetOfficerProfile(officer.ID)
		if err != nil {
			slog.Error("failed to load officer profile", slog.String("error", err.Error()))
			continue
		}

		schedule := utils.GenerateRandomWeeklySchedule(officer.ID)
		if err := repo.CreateWeeklySchedule(schedule); err != nil {
			slog.Error("failed to insert weekly schedule", slog.String("error", err.Error()))
			continue
		}
		added, err := repo.GenerateSlots(schedule, profile, time.Now())
		if err != nil {
			slog.Error("failed to generate slots", slog.String("error", err.Error()))
			continue
		}

		slog.Info("schedule inserted", slog.String("officer", officer.Email), slog.Int("slots", added))
		cnt++
	}

	slog.Info("schedules inserted", slog.Int("count", cnt))
}
