// Package config loads how restrictions are rendered for a deployment:
// target dialect, locale conventions and operator translations.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/dialect"
	"github.com/theplant/restriction/locale"
)

// FileName is looked up in the working directory when no file is given.
const FileName = "restrict.yaml"

// EnvPrefix prefixes the environment variables overriding the file.
const EnvPrefix = "RESTRICT_"

type Locale struct {
	Tag             string `koanf:"tag"`
	ListSeparator   string `koanf:"list_separator"`
	ShortDateLayout string `koanf:"short_date_layout"`
	DateTimeLayout  string `koanf:"date_time_layout"`
}

type Config struct {
	Dialect    string `koanf:"dialect"`
	DateLayout string `koanf:"date_layout"`
	// SQLCapable is false for sources that cannot evaluate BETWEEN.
	SQLCapable bool   `koanf:"sql_capable"`
	Locale     Locale `koanf:"locale"`
	// Translations maps operator labels and "AND" to the locale's wording.
	Translations map[string]string `koanf:"translations"`
}

func defaults() map[string]any {
	return map[string]any{
		"dialect":     dialect.Default.String(),
		"date_layout": dialect.DefaultDateLayout,
		"sql_capable": true,
		"locale.tag":  locale.Default.Tag.String(),
	}
}

// Load reads the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		slog.Debug("config file loaded", "path", path)
	}

	// RESTRICT_LOCALE__TAG -> locale.tag
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys lists the command line flags that override configuration keys.
var flagKeys = map[string]string{
	"dialect":     "dialect",
	"date-layout": "date_layout",
	"sql-capable": "sql_capable",
	"locale":      "locale.tag",
}

func (c *Config) Validate() error {
	if _, err := dialect.Parse(c.Dialect); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if _, err := locale.Parse(c.Locale.Tag); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// ResolveLocale resolves the locale conventions, layouts overriding the defaults of the tag.
func (c *Config) ResolveLocale() (locale.Locale, error) {
	l, err := locale.Parse(c.Locale.Tag)
	if err != nil {
		return locale.Locale{}, err
	}
	if c.Locale.ListSeparator != "" {
		l.ListSeparator = c.Locale.ListSeparator
	}
	if c.Locale.ShortDateLayout != "" {
		l.ShortDateLayout = c.Locale.ShortDateLayout
	}
	if c.Locale.DateTimeLayout != "" {
		l.DateTimeLayout = c.Locale.DateTimeLayout
	}
	return l, nil
}

// Env builds the rendering environment of a restriction on column.
func (c *Config) Env(column, label string) (restriction.Env, error) {
	d, err := dialect.Parse(c.Dialect)
	if err != nil {
		return restriction.Env{}, err
	}
	var opts []dialect.Option
	if c.DateLayout != "" {
		opts = append(opts, dialect.WithDateLayout(c.DateLayout))
	}
	l, err := c.ResolveLocale()
	if err != nil {
		return restriction.Env{}, err
	}

	e := restriction.Env{
		Encoder: dialect.New(d, opts...),
		Locale:  l,
		Column:  column,
		Label:   label,
		NoSQL:   !c.SQLCapable,
	}
	if len(c.Translations) > 0 {
		e.Translator, err = locale.NewCatalog(l.Tag, c.Translations)
		if err != nil {
			return restriction.Env{}, err
		}
	}
	return e, nil
}
