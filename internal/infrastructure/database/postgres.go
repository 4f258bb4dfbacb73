package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/gymcore-api/internal/config"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Access control
		&entity.Permission{},
		&entity.Role{},
		&entity.Staff{},
		&entity.User{},

		// Members
		&entity.Member{},
		&entity.MemberCheckIn{},

		// Money
		&entity.Receipt{},
		&entity.ServiceSession{},
		&entity.SessionAttendance{},
		&entity.Commission{},

		// System
		&entity.CommissionSettings{},
		&entity.SystemSetting{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the permissions, the four roles, the commission settings row,
// the default calculation method and, when credentials are configured, the first admin.
// Existing rows are left untouched.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	log.Println("Seeding default data...")

	for _, name := range enum.AllPermissions() {
		p := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed permission %s: %w", name, err)
		}
	}

	var allPermissions []entity.Permission
	if err := db.Find(&allPermissions).Error; err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}
	byName := make(map[string]entity.Permission, len(allPermissions))
	for _, p := range allPermissions {
		byName[p.Name] = p
	}

	rolePermissions := enum.DefaultRolePermissions()
	rolePermissions[enum.RoleAdmin] = enum.AllPermissions()

	for _, roleName := range []string{enum.RoleAdmin, enum.RoleManager, enum.RoleStaff, enum.RoleCoach} {
		var role entity.Role
		err := db.Where("name = ?", roleName).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load role %s: %w", roleName, err)
		}

		role = entity.Role{Name: roleName}
		for _, permName := range rolePermissions[roleName] {
			role.Permissions = append(role.Permissions, byName[permName])
		}
		if err := db.Create(&role).Error; err != nil {
			log.Warnf("failed to create role %s: %v", roleName, err)
		}
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entity.DefaultCommissionSettings()).Error; err != nil {
		log.Warnf("failed to seed commission settings: %v", err)
	}
	method := entity.SystemSetting{Key: entity.SettingDefaultCommissionMethod, Value: enum.MethodRevenue.String()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&method).Error; err != nil {
		log.Warnf("failed to seed default commission method: %v", err)
	}

	seedAdmin(db, admin)

	log.Println("Default data seeding completed")
	return nil
}

func seedAdmin(db *gorm.DB, admin config.AdminConfig) {
	if admin.Email == "" || admin.Password == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		log.Printf("Admin user already exists: %s", admin.Email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Warnf("failed to hash admin password: %v", err)
		return
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", enum.RoleAdmin).First(&adminRole).Error; err != nil {
		log.Warnf("admin role missing, skipping admin account: %v", err)
		return
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}
	user := entity.User{
		Name:     name,
		Email:    admin.Email,
		Password: string(hashedPassword),
		IsActive: true,
		Roles:    []entity.Role{adminRole},
	}
	if err := db.Create(&user).Error; err != nil {
		log.Warnf("failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", admin.Email)
}
