package analysis

import (
	"go.uber.org/zap"

	"github.com/rlch/gqlcore"
)

// IR is the validator's output once a program has passed every enabled
// pass with no error-severity diagnostic (spec §6.1): the parsed program,
// its symbol table, and its per-expression type table.
type IR struct {
	Program     *gql.Program
	SymbolTable *Scope
	TypeTable   TypeTable
}

// Outcome is ParseAndValidate/Validate's combined result: IR is non-nil iff
// Diagnostics contains no SeverityError entry.
type Outcome struct {
	IR          *IR
	Diagnostics []gql.Diagnostic
}

// Validator runs the nine semantic passes over a parsed program in a fixed
// order (spec §4.11). Schema and Catalog are optional collaborators for
// passes 8-9; a nil collaborator suppresses its pass.
type Validator struct {
	Config  gql.Config
	Schema  Schema
	Catalog Catalog
	Logger  *zap.Logger
}

// NewValidator returns a Validator configured with cfg and a no-op logger.
func NewValidator(cfg gql.Config) *Validator {
	return &Validator{Config: cfg, Logger: zap.NewNop()}
}

func (v *Validator) logger() *zap.Logger {
	if v.Logger == nil {
		return zap.NewNop()
	}

	return v.Logger
}

// ParseAndValidate lexes, parses, and validates source in one call (spec
// §6.1).
func ParseAndValidate(source []byte, cfg gql.Config) Outcome {
	prog, diags := gql.Parse(source)

	v := NewValidator(cfg)

	out := v.Validate(prog)
	out.Diagnostics = append(append([]gql.Diagnostic(nil), diags...), out.Diagnostics...)

	if hasError(diags) {
		out.IR = nil
	}

	return out
}

// Validate runs the fixed nine-pass pipeline over an already-parsed
// program.
func (v *Validator) Validate(prog *gql.Program) Outcome {
	log := v.logger()

	var diags []gql.Diagnostic

	log.Debug("pass 1: symbol table construction")

	root, d := BuildSymbolTable(prog)
	diags = append(diags, d...)

	log.Debug("pass 2: type inference")

	table, d := InferTypes(prog, root, v.Config)
	diags = append(diags, d...)

	log.Debug("pass 3: variable validation")
	diags = append(diags, ValidateVariables(prog, root, v.Config)...)

	log.Debug("pass 4: pattern validation")
	diags = append(diags, ValidatePatterns(prog, v.Config)...)

	log.Debug("pass 5: context validation")
	diags = append(diags, ValidateContext(prog, v.Config)...)

	log.Debug("pass 6: type checking")
	diags = append(diags, CheckTypes(prog, table, v.Config)...)

	log.Debug("pass 7: expression validation")
	diags = append(diags, ValidateExpressions(prog, table, v.Config)...)

	if v.Config.CatalogValidation || v.Config.SchemaValidation {
		log.Debug("pass 8-9: reference and schema validation")

		schema := v.Schema
		if !v.Config.SchemaValidation {
			schema = nil
		}

		catalog := v.Catalog
		if !v.Config.CatalogValidation {
			catalog = nil
		}

		diags = append(diags, ValidateReferences(prog, schema, catalog)...)
	}

	diags = gql.DedupeAdjacent(diags)

	out := Outcome{Diagnostics: diags}

	if !hasError(diags) {
		out.IR = &IR{Program: prog, SymbolTable: root, TypeTable: table}
	}

	log.Debug("validation complete", zap.Int("diagnostics", len(diags)))

	return out
}

func hasError(diags []gql.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == gql.SeverityError {
			return true
		}
	}

	return false
}
