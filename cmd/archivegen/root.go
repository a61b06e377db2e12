package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/archivegen"
	"github.com/eringen/archivegen/content"
	"github.com/eringen/archivegen/views"
)

// options are the persistent flags shared by every command.
type options struct {
	cfgFile string
	envFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "archivegen",
		Short: "archivegen - category archive pages for static blogs",
		Long: `archivegen groups blog posts by category and writes one archive
index page per category to <destination>/<category_archive.path>/<category>/index.html.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every generated archive")

	root.AddCommand(
		newBuildCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newImportCmd(opts),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the site config from file, environment and defaults.
// A missing config file is fine unless one was named explicitly.
func loadConfig(opts *options) (archivegen.SiteConfig, error) {
	var cfg archivegen.SiteConfig

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", opts.envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:4000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("destination", "_site")
	v.SetDefault("content_dir", "_posts")
	v.SetDefault("images_dir", "images")
	v.SetDefault("database_path", "")
	v.SetDefault("addr", ":4000")
	v.SetDefault("concurrency", 4)
	v.SetDefault("category_archive.path", "")
	v.SetDefault("category_archive.layout", archivegen.DefaultArchiveLayout)

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ARCHIVEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.cfgFile != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(opts *options) *log.Logger {
	l := log.New("archivegen")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if opts.verbose {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.INFO)
	}
	return l
}

// openSource picks the SQLite store when database_path is set, otherwise
// the markdown content dir. The returned func releases the source.
func openSource(cfg archivegen.SiteConfig) (archivegen.PostSource, func(), error) {
	if cfg.DatabasePath != "" {
		store, err := archivegen.NewStore(cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return store, func() { store.Close() }, nil
	}
	return content.NewDir(cfg.ContentDir), func() {}, nil
}

func defaultTemplates() *archivegen.Templates {
	t := archivegen.NewTemplates()
	views.Register(t)
	return t
}
