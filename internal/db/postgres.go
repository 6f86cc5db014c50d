package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/types"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "ballotwise", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	theDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: theDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Election{},
		&types.Candidate{},
		&types.CandidateProfile{},
		&types.CandidateDataSource{},
		&types.CandidatePosition{},
		&types.CandidateQA{},
		&types.CampaignContent{},
		&types.RealTimePolling{},
		&types.CandidateAccount{},
		&types.CampaignAccount{},
		&types.CampaignAccessLog{},
		&types.User{},
		&types.WatchlistItem{},
		&types.InteractionLog{},
		&types.ElectionResult{},
		&types.CongressMember{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{"fk_candidates_election_id", `ALTER TABLE "candidates" ADD CONSTRAINT "fk_candidates_election_id" FOREIGN KEY ("election_id") REFERENCES "elections"("id") ON DELETE CASCADE`},
		{"fk_candidate_profiles_candidate_id", `ALTER TABLE "candidate_profiles" ADD CONSTRAINT "fk_candidate_profiles_candidate_id" FOREIGN KEY ("candidate_id") REFERENCES "candidates"("id") ON DELETE CASCADE`},
		{"fk_candidate_data_sources_candidate_id", `ALTER TABLE "candidate_data_sources" ADD CONSTRAINT "fk_candidate_data_sources_candidate_id" FOREIGN KEY ("candidate_id") REFERENCES "candidates"("id") ON DELETE CASCADE`},
		{"fk_real_time_polling_candidate_id", `ALTER TABLE "real_time_polling" ADD CONSTRAINT "fk_real_time_polling_candidate_id" FOREIGN KEY ("candidate_id") REFERENCES "candidates"("id") ON DELETE CASCADE`},
		{"fk_watchlist_election_id", `ALTER TABLE "watchlist" ADD CONSTRAINT "fk_watchlist_election_id" FOREIGN KEY ("election_id") REFERENCES "elections"("id") ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		if err := s.db.Exec(c.stmt).Error; err != nil {
			// Re-running migrations against an existing schema hits
			// duplicate-constraint errors; those are fine.
			s.log.Debug("FK constraint not applied", "constraint", c.name, "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
