package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server          Server
	Database        Database
	JWTSecret       string
	GeminiApiKey    string
	TranscribeKey   string
	TranscribeURL   string
	DefaultUserRole string
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("TRANSCRIBE_BASE_URL", "https://api.assemblyai.com/v2")
	viper.SetDefault("DEFAULT_USER_ROLE", "student")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.TranscribeKey = viper.GetString("TRANSCRIBE_API_KEY")
	config.TranscribeURL = viper.GetString("TRANSCRIBE_BASE_URL")
	config.DefaultUserRole = viper.GetString("DEFAULT_USER_ROLE")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
