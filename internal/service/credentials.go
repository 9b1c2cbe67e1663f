// Package service contains the service layer for the Guestbook API
package service

import (
	"crypto/subtle"
	"fmt"

	"github.com/akinsira/guestbookapi/internal/config"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
	"golang.org/x/crypto/bcrypt"
)

// defaultAdminPassword is the fallback used when no admin credentials are
// configured. Deployments must override it; startup warns loudly when the
// fallback is active.
const defaultAdminPassword = "VeryVerySecure!"

// AdminCredentials holds the single admin identity. Immutable for the
// process lifetime, the hash is a bcrypt digest, never the raw password.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// ResolveAdminCredentials builds the admin identity from configuration. An
// explicit bcrypt hash wins over a plain password digested at boot; with
// neither set, the built-in default password is digested and a warning is
// logged.
func ResolveAdminCredentials(cfg *config.Config) (AdminCredentials, error) {
	creds := AdminCredentials{Username: cfg.AdminUsername}

	switch {
	case cfg.AdminPasswordHash != "":
		creds.PasswordHash = cfg.AdminPasswordHash
	case cfg.AdminPassword != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return AdminCredentials{}, fmt.Errorf("failed to hash admin password: %w", err)
		}
		creds.PasswordHash = string(hash)
	default:
		zaplogger.Warn("ADMIN_PASSWORD_HASH and ADMIN_PASSWORD are both unset, using the built-in default admin password")
		zaplogger.Warn("the default admin password is publicly known, set ADMIN_PASSWORD_HASH before exposing this deployment")
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return AdminCredentials{}, fmt.Errorf("failed to hash default admin password: %w", err)
		}
		creds.PasswordHash = string(hash)
	}

	return creds, nil
}

// Verify reports whether the given username and password match the stored
// identity. The password check always runs so a wrong username costs the
// same as a wrong password.
func (a AdminCredentials) Verify(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	return usernameOK && passwordOK
}
