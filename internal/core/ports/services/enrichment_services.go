package services

import "context"

// MailerSvc delivers the transactional emails of the auth flows.
type MailerSvc interface {
	// SendVerificationEmail sends the email verification link carrying the unhashed token.
	SendVerificationEmail(ctx context.Context, toEmail, fullname, token string) error

	// SendPasswordResetEmail sends the password reset link carrying the unhashed token.
	SendPasswordResetEmail(ctx context.Context, toEmail, fullname, token string) error
}

// GeoLocatorSvc resolves an IP address to a coarse human-readable location.
type GeoLocatorSvc interface {
	// LocateIP never fails the enclosing request: lookup errors and timeouts degrade
	// to "Unknown Location", loopback addresses resolve to "Localhost".
	LocateIP(ctx context.Context, ip string) string
}
