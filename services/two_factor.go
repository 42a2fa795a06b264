package services

import (
	"errors"

	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret creates a new TOTP secret for the user. The returned URL
// is the otpauth:// provisioning URI to encode into a QR code client-side.
func GenerateTOTPSecret(username string) (secret string, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "dayboard",
		AccountName: username,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTPCode checks a 6-digit code against the stored secret.
func ValidateTOTPCode(secret, code string) error {
	if secret == "" {
		return errors.New("two-factor authentication not set up")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid two-factor code")
	}
	return nil
}
