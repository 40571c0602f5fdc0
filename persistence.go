package bfint

import (
	"fmt"
	"log"
	"path/filepath"
	str "strings"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence stores RunReports in a local sqlite database so repeated runs
// of the same programs can be compared over time.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var params []string
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var dsn str.Builder
	dsn.WriteString(filepath.Join(config.Path, config.Name))
	if len(params) > 0 {
		dsn.WriteRune('?')
		dsn.WriteString(str.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(dsn.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(&RunReport{}); err != nil {
		return fmt.Errorf("Failed to migrate RunReport schema. %w", err)
	}
	return nil
}

func (p *Persistence) SaveReport(report *RunReport) (uint, error) {
	if report == nil {
		return 0, fmt.Errorf("RunReport cannot be nil")
	}

	if result := p.DB.Create(report); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return report.ID, nil
}

// RecentReports returns up to count reports, newest first.
func (p *Persistence) RecentReports(count int) ([]*RunReport, error) {
	var reports []*RunReport
	result := p.DB.Order("id desc").Limit(count).Find(&reports)
	if result.Error != nil {
		return nil, fmt.Errorf("Failed to load recent RunReports: %w", result.Error)
	}
	return reports, nil
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}
