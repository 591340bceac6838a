package email

import (
	"time"

	"jobportal_backend/internal/config"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:    "localhost",
		Port:    587,
		Timeout: 30 * time.Second,
	}
}

// ConfigFrom maps the application config onto an SMTPConfig.
func ConfigFrom(cfg *config.Config) *SMTPConfig {
	c := DefaultConfig()
	c.Host = cfg.Email.SMTPHost
	if cfg.Email.SMTPPort != 0 {
		c.Port = cfg.Email.SMTPPort
	}
	c.Username = cfg.Email.SMTPUsername
	c.Password = cfg.Email.SMTPPassword
	c.FromEmail = cfg.Email.FromEmail
	if c.FromEmail == "" {
		c.FromEmail = cfg.Email.SMTPUsername
	}
	c.FromName = cfg.Email.FromName
	return c
}

// Configured reports whether enough is set to actually deliver mail.
func (c *SMTPConfig) Configured() bool {
	return c.Host != "" && c.FromEmail != ""
}
