package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env           string
	DataDir       string
	StorageDriver string // "file" or "sqlite"
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("STORAGE_DRIVER", "file")
	v.AutomaticEnv()

	return Config{
		Env:           v.GetString("APP_ENV"),
		DataDir:       v.GetString("DATA_DIR"),
		StorageDriver: v.GetString("STORAGE_DRIVER"),
	}
}
