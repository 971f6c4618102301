package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/gqlcore"
	"github.com/rlch/gqlcore/analysis"
)

func validate(t *testing.T, src string, cfg gql.Config) analysis.Outcome {
	t.Helper()

	prog, diags := gql.Parse([]byte(src))
	require.Empty(t, diags, "parse errors: %v", diags)

	return analysis.NewValidator(cfg).Validate(prog)
}

func hasCode(diags []gql.Diagnostic, code gql.DiagnosticCode) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}

	return false
}

func TestValidate_SimpleQueryProducesIR(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) RETURN n.name`, gql.DefaultConfig())

	require.NotNil(t, out.IR)
	assert.Empty(t, filterSeverity(out.Diagnostics, gql.SeverityError))
}

func TestValidate_UndefinedVariable(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) RETURN m.name`, gql.DefaultConfig())

	assert.Nil(t, out.IR)
	assert.True(t, hasCode(out.Diagnostics, gql.CodeUndefinedVariable))
}

func TestValidate_CallImportListDefinesInlineScope(t *testing.T) {
	t.Parallel()

	out := validate(t, `CALL (x, y) { MATCH (n) RETURN z }`, gql.DefaultConfig())

	undefined := 0
	for _, d := range out.Diagnostics {
		if d.Code == gql.CodeUndefinedVariable {
			undefined++
		}
	}

	assert.Equal(t, 1, undefined)
	assert.True(t, hasCode(out.Diagnostics, gql.CodeUndefinedVariable))
}

func TestValidate_VariableShadowingWarns(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) CALL (n) { RETURN n } RETURN n`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeVariableShadowing))
}

func TestValidate_DisconnectedPatternWarns(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (a:Person), (b:Person) RETURN a, b`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeDisconnectedPattern))
}

func TestValidate_ConnectedPatternDoesNotWarn(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a, b`, gql.DefaultConfig())

	assert.False(t, hasCode(out.Diagnostics, gql.CodeDisconnectedPattern))
}

func TestValidate_ReadOnlyQueryIsLegal(t *testing.T) {
	t.Parallel()

	prog, diags := gql.Parse([]byte(`MATCH (n:Person) RETURN n`))
	require.Empty(t, diags)

	out := analysis.NewValidator(gql.DefaultConfig()).Validate(prog)
	assert.NotNil(t, out.IR)
}

func TestValidate_DataModifyingClauseInsideReadOnlyBlockIsIllegal(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) OPTIONAL MATCH { INSERT (m:Person) } RETURN n`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeIllegalClausePlace))
}

func TestValidate_GroupedAggregationAcceptedInStrictMode(t *testing.T) {
	t.Parallel()

	cfg := gql.DefaultConfig()
	cfg.StrictMode = true

	out := validate(t, `MATCH (n:Person) RETURN n.team, COUNT(n.name) GROUP BY n.team`, cfg)

	assert.False(t, hasCode(out.Diagnostics, gql.CodeAggregationMismatch))
}

func TestValidate_AggregationMismatchDetected(t *testing.T) {
	t.Parallel()

	cfg := gql.DefaultConfig()
	cfg.StrictMode = true

	out := validate(t, `MATCH (n:Person) RETURN n.team, n.name, COUNT(n.id) GROUP BY n.team`, cfg)

	assert.True(t, hasCode(out.Diagnostics, gql.CodeAggregationMismatch))
}

func TestValidate_NestedAggregateRejected(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) RETURN SUM(COUNT(n.id))`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeNestedAggregate))
}

func TestValidate_TypeMismatchArithmeticOnBoolean(t *testing.T) {
	t.Parallel()

	out := validate(t, `RETURN true + 1`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeTypeMismatch))
}

func TestValidate_FilterRequiresBoolean(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) FILTER 1 RETURN n`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeTypeMismatch))
}

func TestValidate_NonScalarSubqueryRejected(t *testing.T) {
	t.Parallel()

	out := validate(t, `RETURN (MATCH (n:Person) RETURN n.name, n.age) + 1`, gql.DefaultConfig())

	assert.True(t, hasCode(out.Diagnostics, gql.CodeNonScalarSubquery))
}

func TestValidate_ScalarSubqueryAccepted(t *testing.T) {
	t.Parallel()

	out := validate(t, `RETURN (MATCH (n:Person) RETURN n.name)`, gql.DefaultConfig())

	assert.False(t, hasCode(out.Diagnostics, gql.CodeNonScalarSubquery))
}

func TestValidate_ExistsExpressionScoped(t *testing.T) {
	t.Parallel()

	out := validate(t, `MATCH (n:Person) WHERE EXISTS { MATCH (n)-[:KNOWS]->(m:Person) RETURN m } RETURN n`, gql.DefaultConfig())

	assert.NotNil(t, out.IR)
	assert.False(t, hasCode(out.Diagnostics, gql.CodeUndefinedVariable))
}

func TestValidate_ParseAndValidateWrapsParseErrors(t *testing.T) {
	t.Parallel()

	out := analysis.ParseAndValidate([]byte(`MATCH (n:Person RETURN n`), gql.DefaultConfig())

	assert.Nil(t, out.IR)
	assert.True(t, hasCode(out.Diagnostics, gql.CodeUnexpectedToken))
}

func TestValidate_CatalogValidatesUnknownProcedure(t *testing.T) {
	t.Parallel()

	cfg := gql.DefaultConfig()
	cfg.CatalogValidation = true

	prog, diags := gql.Parse([]byte(`CALL labels() YIELD label RETURN label`))
	require.Empty(t, diags)

	v := analysis.NewValidator(cfg)
	v.Catalog = fakeCatalog{}

	out := v.Validate(prog)
	assert.True(t, hasCode(out.Diagnostics, gql.CodeUnknownProcedure))
}

func TestValidate_CatalogAcceptsKnownProcedure(t *testing.T) {
	t.Parallel()

	cfg := gql.DefaultConfig()
	cfg.CatalogValidation = true

	prog, diags := gql.Parse([]byte(`CALL labels() YIELD label RETURN label`))
	require.Empty(t, diags)

	v := analysis.NewValidator(cfg)
	v.Catalog = fakeCatalog{procedures: map[string]*analysis.ProcedureDef{
		"labels": {Name: "labels", Yields: []analysis.ProcedureYieldDef{{Name: "label"}}},
	}}

	out := v.Validate(prog)
	assert.False(t, hasCode(out.Diagnostics, gql.CodeUnknownProcedure))
}

func filterSeverity(diags []gql.Diagnostic, sev gql.Severity) []gql.Diagnostic {
	var out []gql.Diagnostic

	for _, d := range diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}

	return out
}

type fakeCatalog struct {
	procedures map[string]*analysis.ProcedureDef
	graphs     map[string]*analysis.GraphDef
	schemas    map[string]*analysis.SchemaDef
}

func (f fakeCatalog) GetGraph(name string) (*analysis.GraphDef, bool) {
	d, ok := f.graphs[name]

	return d, ok
}

func (f fakeCatalog) GetSchema(name string) (*analysis.SchemaDef, bool) {
	d, ok := f.schemas[name]

	return d, ok
}

func (f fakeCatalog) GetProcedure(name string) (*analysis.ProcedureDef, bool) {
	d, ok := f.procedures[name]

	return d, ok
}
