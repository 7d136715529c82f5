/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	credits        string
	movies         string
	port           int
	prefix         string
	profile        bool
	seed           int64
	sessionTimeout time.Duration
	snapshot       string
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if (c.movies == "") != (c.credits == "") {
		return errors.New("both --movies and --credits must be provided together")
	}
	if c.movies == "" && c.snapshot == "" {
		return errors.New("either --movies and --credits, or --snapshot, must be provided")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.sessionTimeout < 0 || (c.sessionTimeout > 0 && c.sessionTimeout < time.Second) {
		return fmt.Errorf("invalid session timeout (must be 0 or at least 1s): %s", c.sessionTimeout)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CINEMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "cinemaster",
		Short:         "A guess-the-movie game, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CINEMASTER_BIND)")
	fs.StringVar(&cfg.credits, "credits", "", "path to credits csv or parquet file with title, cast and crew columns (env: CINEMASTER_CREDITS)")
	fs.StringVar(&cfg.movies, "movies", "", "path to movies csv or parquet file with title, release_date and genres columns (env: CINEMASTER_MOVIES)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CINEMASTER_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CINEMASTER_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CINEMASTER_PROFILE)")
	fs.Int64Var(&cfg.seed, "seed", 0, "seed for target selection, 0 for random (env: CINEMASTER_SEED)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle players' rounds are ended (env: CINEMASTER_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.snapshot, "snapshot", "", "path to sqlite file caching the cleaned catalog (env: CINEMASTER_SNAPSHOT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CINEMASTER_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CINEMASTER_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CINEMASTER_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CINEMASTER_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("cinemaster v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
