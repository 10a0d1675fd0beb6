// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// CORS, body limits). AppConfig is everything specific to PitchSide: the
// MongoDB connection, token signing, and domain defaults.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Token configuration for the bearer-token API
	TokenSecret string        // Secret key for signing JWTs (must be strong in production)
	TokenIssuer string        // Issuer claim stamped into tokens
	TokenExpiry time.Duration // Lifetime of issued tokens

	// Password hashing
	BcryptCost int

	// Base URL used in notification deep links
	BaseURL string
}
