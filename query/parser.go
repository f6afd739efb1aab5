package query

import (
	"fmt"
	"strings"

	"github.com/ncobase/geocontent/ecode"
)

// Parser compiles request params into Options.
type Parser struct {
	cfg *Config
}

// NewParser creates a parser. A nil config uses DefaultConfig.
func NewParser(cfg *Config) *Parser {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Parser{cfg: cfg}
}

// Config returns the parser config.
func (p *Parser) Config() *Config {
	return p.cfg
}

// ParseOption customizes a single Parse call.
type ParseOption func(*parseState)

// WithPredefined adds server-side filter clauses, such as tenant scoping,
// that are never dropped by client input or directive exclusion.
func WithPredefined(clauses ...FilterClause) ParseOption {
	return func(s *parseState) {
		s.predefined = append(s.predefined, clauses...)
	}
}

// WithExclude skips directives for this call, in addition to Config.Exclude.
func WithExclude(directives ...Directive) ParseOption {
	return func(s *parseState) {
		for _, d := range directives {
			s.exclude[d] = true
		}
	}
}

type parseState struct {
	params     Params
	cfg        *Config
	predefined []FilterClause
	exclude    map[Directive]bool
}

func (s *parseState) raw(d Directive) (any, bool) {
	return s.params.Lookup(s.cfg.Key(d))
}

// stage is one step of the pipeline; it never mutates its input.
type stage func(Options, *parseState) (Options, error)

// handlers apply one directive's raw value.
var handlers = map[Directive]func(o Options, raw any, s *parseState) (Options, error){
	DirectiveSelect: func(o Options, raw any, _ *parseState) (Options, error) {
		o.Select = o.Select.Merge(ParseSelect(raw))
		return o, nil
	},
	DirectiveSort: func(o Options, raw any, _ *parseState) (Options, error) {
		o.Sort = o.Sort.Merge(ParseSort(raw))
		return o, nil
	},
	DirectiveSkip: func(o Options, raw any, _ *parseState) (Options, error) {
		o.Skip = ParseSkip(raw)
		return o, nil
	},
	DirectiveLimit: func(o Options, raw any, s *parseState) (Options, error) {
		o.Limit = ParseLimit(raw, s.cfg.defaultLimit(), s.cfg.maxWindow())
		return o, nil
	},
	DirectiveFilter: func(o Options, raw any, _ *parseState) (Options, error) {
		tree, err := ParseFilter(raw)
		if err != nil {
			return o, err
		}
		o.Filter = o.Filter.Append(tree...)
		return o, nil
	},
	DirectiveSearch: func(o Options, raw any, _ *parseState) (Options, error) {
		o.Search = ParseSearch(raw)
		return o, nil
	},
	DirectivePopulate: func(o Options, raw any, _ *parseState) (Options, error) {
		o.Populate = append(o.Populate, ParsePopulate(raw)...)
		return o, nil
	},
	DirectiveCursor: func(o Options, raw any, s *parseState) (Options, error) {
		c, err := ParseCursor(raw, s.cfg.Key(DirectiveCursor))
		if err != nil {
			return o, err
		}
		o.Cursor = c
		return o, nil
	},
}

func directiveStage(d Directive) stage {
	apply := handlers[d]
	return func(o Options, s *parseState) (Options, error) {
		raw, ok := s.raw(d)
		if !ok {
			return o, nil
		}
		return apply(o.Clone(), raw, s)
	}
}

func predefinedStage(o Options, s *parseState) (Options, error) {
	clauses := Predefined(s.predefined...)
	if len(clauses) == 0 {
		return o, nil
	}
	out := o.Clone()
	out.Filter = out.Filter.Append(clauses...)
	return out, nil
}

func mergeStage(o Options, _ *parseState) (Options, error) {
	return MergePopulation(o), nil
}

// cursorStage rejects a cursor issued under a different sort.
func cursorStage(o Options, s *parseState) (Options, error) {
	if o.Cursor.IsEmpty() || o.Cursor.Matches(o.Sort.Keys()) {
		return o, nil
	}
	raw, _ := s.raw(DirectiveCursor)
	return o, ecode.NewValidation(ecode.CursorErr, s.cfg.Key(DirectiveCursor), strings.TrimSpace(rawString(raw)),
		fmt.Sprintf("cursor sort %s does not match requested sort %s", describeCursor(o), describeSort(o.Sort)))
}

func describeCursor(o Options) string {
	parts := make([]string, 0, len(o.Cursor.Sort))
	for _, f := range o.Cursor.Sort {
		order := f.Order
		if o.Cursor.Reverse {
			order = -order
		}
		parts = append(parts, fmt.Sprintf("%s:%d", f.Path, order))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func describeSort(s SortMask) string {
	parts := make([]string, 0, len(s))
	for _, f := range s {
		parts = append(parts, fmt.Sprintf("%s:%d", f.Path, f.Order))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (p *Parser) stages(s *parseState) []stage {
	var out []stage
	for _, d := range Directives {
		if s.exclude[d] {
			continue
		}
		out = append(out, directiveStage(d))
	}
	out = append(out, predefinedStage, mergeStage)
	if !s.exclude[DirectiveCursor] {
		out = append(out, cursorStage)
	}
	return out
}

// Parse compiles params into Options. Skip and Limit always carry a value;
// Cursor is nil unless the cursor directive was given.
func (p *Parser) Parse(params Params, opts ...ParseOption) (Options, error) {
	s := &parseState{params: params, cfg: p.cfg, exclude: map[Directive]bool{}}
	for _, d := range p.cfg.Exclude {
		s.exclude[d] = true
	}
	for _, opt := range opts {
		opt(s)
	}

	o := Options{Skip: DefaultSkip, Limit: p.cfg.defaultLimit()}
	if o.Limit > p.cfg.maxWindow() {
		o.Limit = p.cfg.maxWindow()
	}
	var err error
	for _, st := range p.stages(s) {
		if o, err = st(o, s); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

// ParseQuery decodes a raw query string and compiles it.
func (p *Parser) ParseQuery(raw string, opts ...ParseOption) (Options, error) {
	params, err := DecodeQuery(raw)
	if err != nil {
		return Options{}, err
	}
	return p.Parse(params, opts...)
}
