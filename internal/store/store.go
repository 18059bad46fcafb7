package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Profile 已保存的连接配置，token 登录成功后回写
type Profile struct {
	ID        uint      `gorm:"primarykey"`
	Name      string    `gorm:"uniqueIndex;size:64"`
	BaseURL   string    `gorm:"size:255"`
	Token     string    `gorm:"size:1024"`
	Active    bool      `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 表名
func (Profile) TableName() string {
	return "profiles"
}

// Store 本地配置库，SQLite 单文件
type Store struct {
	db *gorm.DB
}

// Open 打开或初始化本地库
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	if err := db.AutoMigrate(&Profile{}); err != nil {
		return nil, fmt.Errorf("migrate profile store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save 新建或按名字覆盖配置
func (s *Store) Save(p *Profile) error {
	var existing Profile
	err := s.db.Where("name = ?", p.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(p).Error
	}
	if err != nil {
		return err
	}
	p.ID = existing.ID
	return s.db.Save(p).Error
}

// Get 按名字取配置
func (s *Store) Get(name string) (*Profile, error) {
	var p Profile
	if err := s.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Active 当前激活的配置，没有则返回 gorm.ErrRecordNotFound
func (s *Store) Active() (*Profile, error) {
	var p Profile
	if err := s.db.Where("active = ?", true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetActive 切换激活配置，同一时刻只有一个激活
func (s *Store) SetActive(name string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Profile{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&Profile{}).Where("name = ?", name).Update("active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetToken 登录成功后回写 token
func (s *Store) SetToken(name, token string) error {
	res := s.db.Model(&Profile{}).Where("name = ?", name).Update("token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 全部配置
func (s *Store) List() ([]Profile, error) {
	var out []Profile
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete 删除配置
func (s *Store) Delete(name string) error {
	return s.db.Where("name = ?", name).Delete(&Profile{}).Error
}

// Close 关闭底层连接
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
