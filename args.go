package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func ParseArgs() Args {
	// server config
	pflag.String("server-addr", "0.0.0.0:8080", "")
	pflag.String("log-level", "info", "")

	// db config
	pflag.String("db-host", "", "")
	pflag.Int("db-port", 5432, "")
	pflag.String("db-user", "", "")
	pflag.String("db-password", "", "")
	pflag.String("db-name", "", "")

	// auth config
	pflag.String("jwt-secret", "", "")
	pflag.Duration("token-ttl", time.Hour, "")
	pflag.Duration("reset-ttl", time.Hour, "")
	pflag.String("reset-base-url", "http://localhost:8080", "")

	// mail config
	pflag.String("smtp-host", "", "")
	pflag.Int("smtp-port", 587, "")
	pflag.String("smtp-username", "", "")
	pflag.String("smtp-password", "", "")
	pflag.String("smtp-from", "auctions@localhost", "")

	// rate limit config
	pflag.Duration("rate-limit-window", 15*time.Minute, "")
	pflag.Int("rate-limit-max", 20, "")

	// bind pflag to viper
	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("AUCTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return Args{
		ServerAddr: viper.GetString("server-addr"),
		LogLevel:   viper.GetString("log-level"),
		DB: DBConfig{
			Host:     viper.GetString("db-host"),
			Port:     viper.GetInt("db-port"),
			User:     viper.GetString("db-user"),
			Password: viper.GetString("db-password"),
			Name:     viper.GetString("db-name"),
		},
		Auth: AuthConfig{
			JWTSecret:    viper.GetString("jwt-secret"),
			TokenTTL:     viper.GetDuration("token-ttl"),
			ResetTTL:     viper.GetDuration("reset-ttl"),
			ResetBaseURL: viper.GetString("reset-base-url"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp-host"),
			Port:     viper.GetInt("smtp-port"),
			Username: viper.GetString("smtp-username"),
			Password: viper.GetString("smtp-password"),
			From:     viper.GetString("smtp-from"),
		},
		RateLimitWindow: viper.GetDuration("rate-limit-window"),
		RateLimitMax:    viper.GetInt("rate-limit-max"),
	}
}

type Args struct {
	ServerAddr      string
	LogLevel        string
	DB              DBConfig
	Auth            AuthConfig
	SMTP            SMTPConfig
	RateLimitWindow time.Duration
	RateLimitMax    int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	ResetTTL     time.Duration
	ResetBaseURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (args Args) Validate() bool {
	return args.ServerAddr != "" && args.Auth.JWTSecret != ""
}
