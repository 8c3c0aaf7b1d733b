package config

// CORSConfig holds cross-origin settings for the browser client
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" env-default:"300"`
}
