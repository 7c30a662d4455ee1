package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	localblob "protrack-backend/internal/adapter/blob/local"
	httpadp "protrack-backend/internal/adapter/http"
	"protrack-backend/internal/adapter/middleware"
	"protrack-backend/internal/adapter/repository/mysql"
	"protrack-backend/internal/config"
	"protrack-backend/internal/domain/audit"
	"protrack-backend/internal/domain/project"
	"protrack-backend/internal/domain/report"
	"protrack-backend/internal/domain/user"
	"protrack-backend/internal/infrastructure/cache"
	"protrack-backend/internal/infrastructure/db"
	adminuc "protrack-backend/internal/usecase/admin"
	authuc "protrack-backend/internal/usecase/auth"
	projectuc "protrack-backend/internal/usecase/project"
	reportuc "protrack-backend/internal/usecase/report"
	"protrack-backend/pkg/id"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&user.User{},
		&project.Project{},
		&project.ProjectCustomer{},
		&project.ProjectFile{},
		&project.ProjectRating{},
		&report.Report{},
		&report.ReportPhoto{},
		&report.ReportComment{},
		&audit.Entry{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	blobs, err := localblob.New(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	users := mysql.NewUserRepository(gdb)
	projects := mysql.NewProjectRepository(gdb)
	reports := mysql.NewReportRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	recorder := mysql.NewAuditRecorder(gdb)

	seedAdmin(gdb, users)

	authUC := authuc.NewUsecase(users, recorder, cfg.JWTSecret, cfg.TokenExpiry)
	adminUC := adminuc.NewUsecase(users, recorder, recorder)
	projectUC := projectuc.NewUsecase(projects, reports, uow, blobs, recorder)
	reportUC := reportuc.NewUsecase(reports, projects, uow, blobs, recorder)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()
	e.Static(cfg.BlobBaseURL, cfg.BlobDir)

	httpadp.RegisterRoutes(
		e,
		httpadp.NewHandler(),
		httpadp.NewAuthHandler(authUC),
		httpadp.NewAdminHandler(adminUC),
		httpadp.NewProjectHandler(projectUC),
		httpadp.NewReportHandler(reportUC),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the bootstrap admin account on an empty user table.
// Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD; skipped when unset.
func seedAdmin(gdb *gorm.DB, users user.Repository) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := gdb.Model(&user.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := users.Create(ctx, &user.User{
		UserID:       id.NewID32(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}); err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	log.Printf("seeded admin account %s", email)
}
