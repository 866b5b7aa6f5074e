package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort int
	ServerHost string

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	// Sheet registry identifiers (gid) of the three workflow tables.
	SheetContractsGID   int64
	SheetBankInfoGID    int64
	SheetConversionsGID int64

	// Write lock acquisition bound in seconds.
	WriteLockTimeoutSeconds int

	Timezone string

	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	ContactRecipient string
	ContactSender    string
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")

	v.SetDefault("DATABASE_DB_PATH", "data/sheets.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)

	v.SetDefault("SHEET_CONTRACTS_GID", int64(358495717))
	v.SetDefault("SHEET_BANK_INFO_GID", int64(1361799622))
	v.SetDefault("SHEET_CONVERSIONS_GID", int64(107328201))

	v.SetDefault("WRITE_LOCK_TIMEOUT_SECONDS", 10)

	v.SetDefault("TIMEZONE", "Asia/Tokyo")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("CONTACT_RECIPIENT", "info@chainsoda.world")
	v.SetDefault("CONTACT_SENDER", "no-reply@chainsoda.world")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := Config{
		ServerPort:              v.GetInt("SERVER_PORT"),
		ServerHost:              v.GetString("SERVER_HOST"),
		DatabaseDbPath:          v.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress:    v.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:       v.GetInt("DATABASE_CACHE_PORT"),
		SheetContractsGID:       v.GetInt64("SHEET_CONTRACTS_GID"),
		SheetBankInfoGID:        v.GetInt64("SHEET_BANK_INFO_GID"),
		SheetConversionsGID:     v.GetInt64("SHEET_CONVERSIONS_GID"),
		WriteLockTimeoutSeconds: v.GetInt("WRITE_LOCK_TIMEOUT_SECONDS"),
		Timezone:                v.GetString("TIMEZONE"),
		SMTPHost:                v.GetString("SMTP_HOST"),
		SMTPPort:                v.GetInt("SMTP_PORT"),
		SMTPUser:                v.GetString("SMTP_USER"),
		SMTPPassword:            v.GetString("SMTP_PASSWORD"),
		ContactRecipient:        v.GetString("CONTACT_RECIPIENT"),
		ContactSender:           v.GetString("CONTACT_SENDER"),
	}

	return config, nil
}
