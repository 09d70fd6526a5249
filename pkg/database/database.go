package database

import (
	"adaptive_learning_backend/internal/config"
	"adaptive_learning_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不自动迁移，需通过 -migrate/-migrate-only 显式触发
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.LearningProfile{},
			&model.ContentEffectiveness{},
			&model.AssessmentRecord{},
			&model.ServiceClient{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 默认的协作方客户端（仅空表时插入，生产环境应及时改密）
	var count int64
	db.Model(&model.ServiceClient{}).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("dev-lesson-secret"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		defaultClients := []model.ServiceClient{
			{ClientID: "lesson-generator", SecretHash: string(hash), Description: "课程内容生成服务", Enabled: true},
			{ClientID: "content-renderer", SecretHash: string(hash), Description: "课件渲染服务", Enabled: true},
		}
		for _, c := range defaultClients {
			db.Create(&c)
		}
	}

	return db, nil
}
