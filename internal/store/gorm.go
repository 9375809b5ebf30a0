package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/gradecalc/internal/config"
	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
)

// ProfileRow is one local profile. SaveEnabled is the always-written save
// preference; the remaining columns are only populated while HasState is
// true.
type ProfileRow struct {
	ProfileKey    string `gorm:"primaryKey;column:profile_key;size:64"`
	SaveEnabled   bool   `gorm:"column:save_enabled;not null"`
	HasState      bool   `gorm:"column:has_state;not null"`
	Language      string `gorm:"column:language;size:8"`
	Theme         string `gorm:"column:theme;size:16"`
	SchemeID      string `gorm:"column:calculation_method_id;size:64"`
	DebtThreshold int    `gorm:"column:required_credits_for_debt"`

	CustomSchemes datatypes.JSON `gorm:"column:custom_calculation_methods"`
	Modules       datatypes.JSON `gorm:"column:modules"`

	S1AvgText     string `gorm:"column:s1_avg_text;size:8"`
	S1CreditsText string `gorm:"column:s1_credits_text;size:8"`
	S2AvgText     string `gorm:"column:s2_avg_text;size:8"`
	S2CreditsText string `gorm:"column:s2_credits_text;size:8"`

	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (ProfileRow) TableName() string { return "calculator_profile" }

// OpenGormDB connects to sqlite or postgres.
func OpenGormDB(driver, dsn string, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", driver)
	}
	if log != nil {
		log.Info("Connecting to database...", "driver", driver, "dsn", dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

type GormStore struct {
	db  *gorm.DB
	key string
	log *logger.Logger
}

// NewGormStore migrates the profile table and returns a store bound to key.
func NewGormStore(ctx context.Context, db *gorm.DB, key string, baseLog *logger.Logger) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("gorm db required")
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	if key == "" {
		key = "default"
	}
	if err := db.WithContext(ctx).AutoMigrate(&ProfileRow{}); err != nil {
		return nil, fmt.Errorf("migrate calculator_profile: %w", err)
	}
	return &GormStore{db: db, key: key, log: baseLog.With("repo", "ProfileStore", "profile_key", key)}, nil
}

func (s *GormStore) Load(ctx context.Context) (state.State, bool, error) {
	var rows []ProfileRow
	err := s.db.WithContext(ctx).
		Where("profile_key = ?", s.key).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return state.State{}, false, err
	}
	if len(rows) == 0 {
		st, found := restore(s.log, nil, nil)
		return st, found, nil
	}
	row := rows[0]
	pref := row.SaveEnabled
	if !row.HasState || !pref {
		st, found := restore(s.log, &pref, nil)
		return st, found, nil
	}
	blob, err := rowBlob(row)
	if err != nil {
		s.log.Warn("profile row unreadable; starting from defaults", "error", err)
		st, _ := restore(s.log, &pref, nil)
		return st, false, nil
	}
	st, found := restore(s.log, &pref, blob)
	return st, found, nil
}

func (s *GormStore) Save(ctx context.Context, st state.State) error {
	row, err := toRow(s.key, st)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_key"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("profile_key = ?", s.key).
		Delete(&ProfileRow{}).Error
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(key string, st state.State) (ProfileRow, error) {
	row := ProfileRow{
		ProfileKey:  key,
		SaveEnabled: st.SaveEnabled,
		UpdatedAt:   time.Now().UTC(),
	}
	if !st.SaveEnabled {
		return row, nil
	}
	schemes, err := json.Marshal(nonNil(st.CustomSchemes))
	if err != nil {
		return ProfileRow{}, fmt.Errorf("encode custom schemes: %w", err)
	}
	modules, err := json.Marshal(nonNil(st.Modules))
	if err != nil {
		return ProfileRow{}, fmt.Errorf("encode modules: %w", err)
	}
	row.HasState = true
	row.Language = string(st.Language)
	row.Theme = string(st.Theme)
	row.SchemeID = st.SchemeID
	row.DebtThreshold = st.DebtThreshold
	row.CustomSchemes = datatypes.JSON(schemes)
	row.Modules = datatypes.JSON(modules)
	row.S1AvgText = st.S1Avg
	row.S1CreditsText = st.S1Credits
	row.S2AvgText = st.S2Avg
	row.S2CreditsText = st.S2Credits
	return row, nil
}

// rowBlob rebuilds the JSON state record from the row's columns so the
// shared decode path applies.
func rowBlob(row ProfileRow) ([]byte, error) {
	var schemes []grading.Scheme
	if len(row.CustomSchemes) > 0 {
		if err := json.Unmarshal(row.CustomSchemes, &schemes); err != nil {
			return nil, fmt.Errorf("decode custom schemes: %w", err)
		}
	}
	var modules []grading.Module
	if len(row.Modules) > 0 {
		if err := json.Unmarshal(row.Modules, &modules); err != nil {
			return nil, fmt.Errorf("decode modules: %w", err)
		}
	}
	st := state.State{
		Language:      i18n.Language(row.Language),
		Theme:         state.Theme(row.Theme),
		SchemeID:      row.SchemeID,
		CustomSchemes: nonNil(schemes),
		DebtThreshold: row.DebtThreshold,
		SaveEnabled:   true,
		Modules:       nonNil(modules),
		AnnualInputs: state.AnnualInputs{
			S1Avg:     row.S1AvgText,
			S1Credits: row.S1CreditsText,
			S2Avg:     row.S2AvgText,
			S2Credits: row.S2CreditsText,
		},
	}
	return encodeState(st)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
