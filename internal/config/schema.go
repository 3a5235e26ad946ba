package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// ConfigError reports a config value rejected by the schema.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks c against the embedded schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError reduces a CUE error list to its first entry, keeping the
// offending field path.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	first := errs[0]
	field := strings.Join(first.Path(), ".")
	if field == "" {
		field = "config"
	}
	format, args := first.Msg()
	ce := &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
