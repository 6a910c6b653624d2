package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mattmoss82/schoolsum/internal/schoology"
)

// Default endpoints; both can be overridden from the environment, which the
// portal client tests rely on.
const (
	DefaultPortalURL = "https://app.schoology.com"
	DefaultSMTPHost  = "smtp.gmail.com"
	DefaultSMTPPort  = 465
)

// Config holds everything the run needs, built once at startup. Components
// receive it (or the slice of it they need) explicitly; nothing reads the
// environment after Load returns.
type Config struct {
	PortalURL  string
	PortalUser string
	PortalPass string

	MailUser string
	MailPass string
	SMTPHost string
	SMTPPort int

	Children   []schoology.Child
	Recipients []string

	// Preview prints the report to stdout instead of mailing it.
	Preview bool
}

// Load reads configuration from a .env file (when present) and the process
// environment, the environment taking precedence. It validates everything the
// run will need so that misconfiguration aborts before any network I/O.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		PortalURL:  getEnv("SCHOOLOGY_URL", DefaultPortalURL),
		PortalUser: os.Getenv("SCHOOLOGY_USER"),
		PortalPass: os.Getenv("SCHOOLOGY_PASS"),
		MailUser:   os.Getenv("EMAIL_USER"),
		MailPass:   os.Getenv("EMAIL_PASS"),
		SMTPHost:   getEnv("SMTP_HOST", DefaultSMTPHost),
		Preview:    os.Getenv("PREVIEW_ONLY") == "true",
	}

	port := getEnv("SMTP_PORT", strconv.Itoa(DefaultSMTPPort))
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT %q is not a number: %w", port, err)
	}
	cfg.SMTPPort = p

	if raw := os.Getenv("CHILDREN"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Children); err != nil {
			return nil, fmt.Errorf("CHILDREN is not a valid JSON list: %w", err)
		}
	}
	if raw := os.Getenv("EMAIL_TO"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cfg.Recipients); err != nil {
			return nil, fmt.Errorf("EMAIL_TO is not a valid JSON list: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PortalUser == "" || c.PortalPass == "" {
		return fmt.Errorf("portal credentials missing: set SCHOOLOGY_USER and SCHOOLOGY_PASS")
	}
	if len(c.Children) == 0 {
		return fmt.Errorf("no children configured: set CHILDREN to a JSON list of {name, id}")
	}
	for i, child := range c.Children {
		if child.Name == "" || child.ID == "" {
			return fmt.Errorf("CHILDREN entry %d is missing a name or id", i)
		}
	}
	if c.Preview {
		return nil
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("no recipients configured: set EMAIL_TO or enable PREVIEW_ONLY")
	}
	if c.MailUser == "" || c.MailPass == "" {
		return fmt.Errorf("mail credentials missing: set EMAIL_USER and EMAIL_PASS")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
