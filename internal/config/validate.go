package config

import (
	"strings"

	"github.com/pngalemo/portfolio/internal/apperr"
)

// Validate checks that every required setting is present and consistent.
// Violations are reported together as a single configuration error.
func (o *Options) Validate() error {
	var problems []string

	if o.Database.DSN == "" {
		problems = append(problems, "database dsn is required (DATABASE_DSN, MONGODB_URI or -d)")
	} else if _, err := o.Database.Backend(); err != nil {
		problems = append(problems, err.Error())
	}
	if o.Mail.Username == "" {
		problems = append(problems, "mail username is required (EMAIL_USER)")
	}
	if o.Mail.Password == "" {
		problems = append(problems, "mail password is required (EMAIL_PASS)")
	}
	if o.Mail.Recipient == "" {
		problems = append(problems, "mail recipient is required (RECIPIENT_EMAIL)")
	}
	if o.Mail.Host == "" || o.Mail.Port <= 0 {
		problems = append(problems, "mail host and port are required")
	}
	if (o.Server.TLSCert == "") != (o.Server.TLSKey == "") {
		problems = append(problems, "tls cert and key must be set together")
	}
	if o.RateLimit.Requests <= 0 || o.RateLimit.Window <= 0 {
		problems = append(problems, "contact rate limit must be positive")
	}

	if len(problems) > 0 {
		return apperr.Configuration(strings.Join(problems, "; "))
	}
	return nil
}
