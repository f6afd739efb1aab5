package query

import "github.com/spf13/viper"

// Directive names a query directive.
type Directive string

const (
	DirectiveSelect   Directive = "select"
	DirectiveSort     Directive = "sort"
	DirectiveSkip     Directive = "skip"
	DirectiveLimit    Directive = "limit"
	DirectiveFilter   Directive = "filter"
	DirectiveSearch   Directive = "search"
	DirectiveCursor   Directive = "cursor"
	DirectivePopulate Directive = "populate"
)

// Directives lists every directive in pipeline order.
var Directives = []Directive{
	DirectiveSelect,
	DirectiveSort,
	DirectiveSkip,
	DirectiveLimit,
	DirectiveFilter,
	DirectiveSearch,
	DirectivePopulate,
	DirectiveCursor,
}

const (
	// DefaultSkip is the page number used when none is given.
	DefaultSkip = 1
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 100
	// MaxResultWindow bounds the page size.
	MaxResultWindow = 10000
)

// Config query compiler config struct
type Config struct {
	// Keys maps a directive to the dotted lookup key of its raw value.
	Keys            map[Directive]string `json:"keys" yaml:"keys"`
	DefaultLimit    int                  `json:"default_limit" yaml:"default_limit" validate:"gte=0"`
	MaxResultWindow int                  `json:"max_result_window" yaml:"max_result_window" validate:"gte=1"`
	// Exclude lists directives that are never parsed.
	Exclude []Directive `json:"exclude" yaml:"exclude"`
}

// DefaultKeys returns the default lookup keys.
func DefaultKeys() map[Directive]string {
	return map[Directive]string{
		DirectiveSelect:   "select",
		DirectiveSort:     "sort",
		DirectiveSkip:     "page.number",
		DirectiveLimit:    "page.size",
		DirectiveFilter:   "filter",
		DirectiveSearch:   "search",
		DirectiveCursor:   "page.cursor",
		DirectivePopulate: "populate",
	}
}

// DefaultConfig returns the default query config.
func DefaultConfig() *Config {
	return &Config{
		Keys:            DefaultKeys(),
		DefaultLimit:    DefaultLimit,
		MaxResultWindow: MaxResultWindow,
	}
}

// Key returns the lookup key of d.
func (c *Config) Key(d Directive) string {
	if c != nil {
		if k, ok := c.Keys[d]; ok && k != "" {
			return k
		}
	}
	return DefaultKeys()[d]
}

func (c *Config) maxWindow() int {
	if c == nil || c.MaxResultWindow <= 0 {
		return MaxResultWindow
	}
	return c.MaxResultWindow
}

func (c *Config) defaultLimit() int {
	if c == nil || c.DefaultLimit <= 0 {
		return DefaultLimit
	}
	return c.DefaultLimit
}

// GetConfig reads the query section
func GetConfig(v *viper.Viper) *Config {
	cfg := DefaultConfig()
	for name, key := range v.GetStringMapString("query.keys") {
		if key != "" {
			cfg.Keys[Directive(name)] = key
		}
	}
	if v.IsSet("query.default_limit") {
		cfg.DefaultLimit = v.GetInt("query.default_limit")
	}
	if v.IsSet("query.max_result_window") {
		cfg.MaxResultWindow = v.GetInt("query.max_result_window")
	}
	for _, name := range v.GetStringSlice("query.exclude") {
		cfg.Exclude = append(cfg.Exclude, Directive(name))
	}
	return cfg
}
