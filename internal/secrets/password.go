package secrets

import (
	"errors"
	"fmt"
	"strings"

	"boardfeed-engine/internal/domain"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups this app's secrets in the OS keychain.
	KeyringService = "boardfeed"
)

// Keychain resolves per-employer feed credentials and the SMTP password
// from the OS keyring. Accounts are namespaced by concern so entries for
// different employers never collide.
type Keychain struct{}

// WorkdayCredentials returns the basic-auth pair for an employer's Workday
// CXS endpoint, stored as "user:password" under one account.
func (Keychain) WorkdayCredentials(emp domain.Employer) (string, string, error) {
	account := fmt.Sprintf("workday:%d", emp.ID)
	raw, err := keyring.Get(KeyringService, account)
	if err != nil {
		return "", "", fmt.Errorf("workday credentials for employer %d: %w", emp.ID, err)
	}
	user, pass, ok := strings.Cut(raw, ":")
	if !ok || user == "" {
		return "", "", fmt.Errorf("workday credentials for employer %d: malformed entry", emp.ID)
	}
	return user, pass, nil
}

// SetWorkdayCredentials stores the basic-auth pair for an employer.
func (Keychain) SetWorkdayCredentials(employerID int64, user, pass string) error {
	if strings.TrimSpace(user) == "" {
		return errors.New("workday user is empty")
	}
	account := fmt.Sprintf("workday:%d", employerID)
	return keyring.Set(KeyringService, account, user+":"+pass)
}

// SMTPPassword returns the mail password for the notifier account.
func (Keychain) SMTPPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("smtp keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("SMTP password not found in keychain")
	}
	return pw, nil
}

// SetSMTPPassword stores the mail password for the notifier account.
func (Keychain) SetSMTPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("smtp keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}
