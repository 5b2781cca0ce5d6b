package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akeren/consent-intake/domain/submission"
	"github.com/akeren/consent-intake/internal/log"
	"github.com/supabase-community/supabase-go"
	"gorm.io/gorm"
)

const (
	StorageDriverSupabase = "supabase"
	StorageDriverPostgres = "postgres"
)

var ErrUnknownStorageDriver = errors.New("unknown storage driver")

type StoreConfig struct {
	Driver      string
	SupabaseURL string
	SupabaseKey string
}

func NewStoreConfig() *StoreConfig {
	driver := strings.ToLower(envValue("STORAGE_DRIVER"))
	if driver == "" {
		driver = StorageDriverSupabase
	}

	return &StoreConfig{
		Driver:      driver,
		SupabaseURL: envValue("SUPABASE_URL"),
		SupabaseKey: envValue("SUPABASE_ANON_KEY"),
	}
}

// Validate checks that the values the selected driver needs are present.
// The postgres driver is validated by NewDatabase when it builds the DSN.
func (sc *StoreConfig) Validate() error {
	switch sc.Driver {
	case StorageDriverSupabase:
		missing := []string{}
		if sc.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if sc.SupabaseKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required store env vars: %s", strings.Join(missing, ", "))
		}
		return nil
	case StorageDriverPostgres:
		return nil
	default:
		return fmt.Errorf("%w %q (allowed: %s, %s)", ErrUnknownStorageDriver, sc.Driver, StorageDriverSupabase, StorageDriverPostgres)
	}
}

// NewStore builds the submission repository for the configured driver. The
// returned *gorm.DB is nil unless the postgres driver is selected.
func (sc *StoreConfig) NewStore(logger *log.Logger, dbCfg *DBConfig) (submission.SubmissionRepository, *gorm.DB, error) {
	if err := sc.Validate(); err != nil {
		logger.Error("Invalid store configuration", "driver", sc.Driver, "error", err)
		return nil, nil, err
	}

	switch sc.Driver {
	case StorageDriverPostgres:
		db, err := NewDatabase(logger, dbCfg)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("Using postgres submission store")
		return submission.NewGormSubmissionRepository(db), db, nil
	default:
		client, err := NewSupabaseClient(sc.SupabaseURL, sc.SupabaseKey)
		if err != nil {
			logger.Error("Failed to create Supabase client", "error", err)
			return nil, nil, err
		}

		logger.Info("Using supabase submission store", "url", sc.SupabaseURL)
		return submission.NewSupabaseSubmissionRepository(client), nil, nil
	}
}

func NewSupabaseClient(url, key string) (*supabase.Client, error) {
	client, err := supabase.NewClient(strings.TrimRight(url, "/"), key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	return client, nil
}
