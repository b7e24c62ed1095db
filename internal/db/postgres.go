package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/yungbote/ripple-backend/internal/logger"
  "github.com/yungbote/ripple-backend/internal/types"
  "github.com/yungbote/ripple-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "ripple", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Post{},
    &types.Like{},
    &types.Bookmark{},
    &types.Comment{},
    &types.Notification{},
    &types.PendingRecipientMatch{},
    &types.VerificationRequest{},
    &types.UserBlock{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    ddl  string
  }{
    {"fk_user_token_user_id", `
      ALTER TABLE "user_token"
      ADD CONSTRAINT "fk_user_token_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_post_author_id", `
      ALTER TABLE "post"
      ADD CONSTRAINT "fk_post_author_id"
      FOREIGN KEY ("author_id") REFERENCES "user"("id")
      ON DELETE SET NULL`},
    {"fk_post_recipient_id", `
      ALTER TABLE "post"
      ADD CONSTRAINT "fk_post_recipient_id"
      FOREIGN KEY ("recipient_id") REFERENCES "user"("id")
      ON DELETE SET NULL`},
    {"fk_like_post_id", `
      ALTER TABLE "like"
      ADD CONSTRAINT "fk_like_post_id"
      FOREIGN KEY ("post_id") REFERENCES "post"("id")
      ON DELETE CASCADE`},
    {"fk_like_user_id", `
      ALTER TABLE "like"
      ADD CONSTRAINT "fk_like_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_bookmark_post_id", `
      ALTER TABLE "bookmark"
      ADD CONSTRAINT "fk_bookmark_post_id"
      FOREIGN KEY ("post_id") REFERENCES "post"("id")
      ON DELETE CASCADE`},
    {"fk_bookmark_user_id", `
      ALTER TABLE "bookmark"
      ADD CONSTRAINT "fk_bookmark_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_comment_post_id", `
      ALTER TABLE "comment"
      ADD CONSTRAINT "fk_comment_post_id"
      FOREIGN KEY ("post_id") REFERENCES "post"("id")
      ON DELETE CASCADE`},
    {"fk_comment_author_id", `
      ALTER TABLE "comment"
      ADD CONSTRAINT "fk_comment_author_id"
      FOREIGN KEY ("author_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_comment_parent_comment_id", `
      ALTER TABLE "comment"
      ADD CONSTRAINT "fk_comment_parent_comment_id"
      FOREIGN KEY ("parent_comment_id") REFERENCES "comment"("id")
      ON DELETE CASCADE`},
    {"fk_notification_user_id", `
      ALTER TABLE "notification"
      ADD CONSTRAINT "fk_notification_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_notification_post_id", `
      ALTER TABLE "notification"
      ADD CONSTRAINT "fk_notification_post_id"
      FOREIGN KEY ("post_id") REFERENCES "post"("id")
      ON DELETE CASCADE`},
    {"fk_pending_recipient_match_post_id", `
      ALTER TABLE "pending_recipient_match"
      ADD CONSTRAINT "fk_pending_recipient_match_post_id"
      FOREIGN KEY ("post_id") REFERENCES "post"("id")
      ON DELETE CASCADE`},
    {"fk_verification_request_user_id", `
      ALTER TABLE "verification_request"
      ADD CONSTRAINT "fk_verification_request_user_id"
      FOREIGN KEY ("user_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_user_block_blocker_id", `
      ALTER TABLE "user_block"
      ADD CONSTRAINT "fk_user_block_blocker_id"
      FOREIGN KEY ("blocker_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
    {"fk_user_block_blocked_id", `
      ALTER TABLE "user_block"
      ADD CONSTRAINT "fk_user_block_blocked_id"
      FOREIGN KEY ("blocked_id") REFERENCES "user"("id")
      ON DELETE CASCADE`},
  }
  for _, c := range constraints {
    var exists bool
    if err := s.db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if exists {
      continue
    }
    if err := s.db.Exec(c.ddl).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
