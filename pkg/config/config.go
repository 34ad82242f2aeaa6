package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultSessionSecret signs session cookies when nothing else is configured.
const DefaultSessionSecret = "change-me-in-production"

var ErrDefaultSessionSecret = errors.New("session secret is not set, export SESSION_SECRET")

var (
	Addr     = ":8080"
	GinMode  = "debug"
	SiteName = "Coffee House"

	// Content settings. An empty ContentDir serves the embedded datasets.
	ContentDir     = ""
	WatchContent   = false
	ReloadDebounce = 500 * time.Millisecond

	// Session settings
	SessionName   = "coffeehouse"
	SessionSecret = DefaultSessionSecret

	// Form submission settings
	ContactDelay     = 1500 * time.Millisecond
	ReservationDelay = 1500 * time.Millisecond
	NewsletterDelay  = 1000 * time.Millisecond
	SubmitTimeout    = 10 * time.Second

	// Listing settings
	FeaturedLimit = 3
	RelatedLimit  = 3

	// Logging settings
	LogLevel  = "info"
	LogFormat = "text"

	ShutdownTimeout = 15 * time.Second
)

// SetDefaults registers every setting with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", Addr)
	v.SetDefault("server.mode", GinMode)
	v.SetDefault("server.shutdown_timeout", ShutdownTimeout)
	v.SetDefault("site.name", SiteName)

	v.SetDefault("content.dir", ContentDir)
	v.SetDefault("content.watch", WatchContent)
	v.SetDefault("content.reload_debounce", ReloadDebounce)

	v.SetDefault("session.name", SessionName)
	v.SetDefault("session.secret", SessionSecret)

	v.SetDefault("forms.contact_delay", ContactDelay)
	v.SetDefault("forms.reservation_delay", ReservationDelay)
	v.SetDefault("forms.newsletter_delay", NewsletterDelay)
	v.SetDefault("forms.timeout", SubmitTimeout)

	v.SetDefault("listing.featured_limit", FeaturedLimit)
	v.SetDefault("listing.related_limit", RelatedLimit)

	v.SetDefault("log.level", LogLevel)
	v.SetDefault("log.format", LogFormat)
}

// Init loads .env, reads the optional config file named by cfgFile (or
// ./config.yaml) and environment variables prefixed CAFE_, then publishes the
// result in the package variables.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load .env: %v", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("session.secret", "CAFE_SESSION_SECRET", "SESSION_SECRET"); err != nil {
		return fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Infof("Using config file: %s", v.ConfigFileUsed())
	}

	Addr = v.GetString("server.addr")
	GinMode = v.GetString("server.mode")
	ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	SiteName = v.GetString("site.name")

	ContentDir = v.GetString("content.dir")
	WatchContent = v.GetBool("content.watch")
	ReloadDebounce = v.GetDuration("content.reload_debounce")

	SessionName = v.GetString("session.name")
	SessionSecret = v.GetString("session.secret")

	ContactDelay = v.GetDuration("forms.contact_delay")
	ReservationDelay = v.GetDuration("forms.reservation_delay")
	NewsletterDelay = v.GetDuration("forms.newsletter_delay")
	SubmitTimeout = v.GetDuration("forms.timeout")

	FeaturedLimit = v.GetInt("listing.featured_limit")
	RelatedLimit = v.GetInt("listing.related_limit")

	LogLevel = v.GetString("log.level")
	LogFormat = v.GetString("log.format")

	return setupLogging()
}

// CheckSessionSecret rejects the built-in secret in release mode and warns
// about it in every other mode.
func CheckSessionSecret() error {
	if SessionSecret != "" && SessionSecret != DefaultSessionSecret {
		return nil
	}
	if GinMode == "release" {
		return ErrDefaultSessionSecret
	}
	log.Warn("Using the built-in session secret, set SESSION_SECRET outside development")
	return nil
}

func setupLogging() error {
	level, err := log.ParseLevel(LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	switch LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", LogFormat)
	}
	return nil
}
