package gql_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/rlch/gqlcore"
)

// ignoreSpans lets tests compare AST shape without pinning exact source
// spans, mirroring the teacher's ignorePositions cmp.Options in its own
// parser_test.go.
var ignoreSpans = cmp.Options{
	cmpopts.IgnoreTypes(gql.Span{}),
	cmp.AllowUnexported(gql.NodeBase{}),
	cmpopts.IgnoreFields(gql.NodeBase{}, "span"),
}

func parseOK(t *testing.T, src string) *gql.Program {
	t.Helper()

	prog, diags := gql.Parse([]byte(src))
	require.Empty(t, diags, "unexpected diagnostics: %+v", diags)
	require.NotNil(t, prog)

	return prog
}

func TestParse_SimpleMatchReturn(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) RETURN n.name")

	require.Len(t, prog.Statements, 1)

	qs, ok := prog.Statements[0].(*gql.QueryStatement)
	require.True(t, ok)

	lq, ok := qs.Query.(*gql.LinearQuery)
	require.True(t, ok)
	require.Len(t, lq.Clauses, 2)

	match, ok := lq.Clauses[0].(*gql.MatchClause)
	require.True(t, ok)
	require.Len(t, match.Pattern.Paths, 1)
	require.Len(t, match.Pattern.Paths[0].Elements, 1)

	node, ok := match.Pattern.Paths[0].Elements[0].(*gql.NodePattern)
	require.True(t, ok)
	assert.Equal(t, "n", node.Variable)

	labelName, ok := node.Labels.(*gql.LabelName)
	require.True(t, ok)
	assert.Equal(t, "Person", labelName.Name)

	ret, ok := lq.Clauses[1].(*gql.ReturnClause)
	require.True(t, ok)
	require.Len(t, ret.Items, 1)

	prop, ok := ret.Items[0].Expr.(*gql.PropertyAccess)
	require.True(t, ok)
	assert.Equal(t, "name", prop.Property)
}

func TestParse_EdgePatternDirections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		dir  gql.Direction
	}{
		{"right", "MATCH (a)-[:KNOWS]->(b) RETURN a", gql.DirectionRight},
		{"left", "MATCH (a)<-[:KNOWS]-(b) RETURN a", gql.DirectionLeft},
		{"either", "MATCH (a)<-[:KNOWS]->(b) RETURN a", gql.DirectionEither},
		{"abbreviated-any", "MATCH (a)-[:KNOWS]-(b) RETURN a", gql.DirectionAny},
		{"undirected", "MATCH (a)~[:KNOWS]~(b) RETURN a", gql.DirectionUndirected},
		{"left-undirected", "MATCH (a)<~[:KNOWS]~(b) RETURN a", gql.DirectionLeftOrUndirected},
		{"right-undirected", "MATCH (a)~[:KNOWS]~>(b) RETURN a", gql.DirectionRightOrUndirected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prog := parseOK(t, tt.src)
			qs := prog.Statements[0].(*gql.QueryStatement)
			lq := qs.Query.(*gql.LinearQuery)
			match := lq.Clauses[0].(*gql.MatchClause)
			edge := match.Pattern.Paths[0].Elements[1].(*gql.EdgePattern)
			assert.Equal(t, tt.dir, edge.Direction)
		})
	}
}

func TestParse_AbbreviatedEdgeNoBrackets(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (a)->(b) RETURN a")
	match := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.MatchClause)
	require.Len(t, match.Pattern.Paths[0].Elements, 3)

	edge := match.Pattern.Paths[0].Elements[1].(*gql.EdgePattern)
	assert.Equal(t, gql.DirectionRight, edge.Direction)
	assert.Empty(t, edge.Variable)
}

func TestParse_EdgeQuantifier(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (a)-[:KNOWS*1..3]->(b) RETURN a")
	match := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.MatchClause)
	edge := match.Pattern.Paths[0].Elements[1].(*gql.EdgePattern)
	require.NotNil(t, edge.Quantifier)
	assert.Equal(t, 1, edge.Quantifier.Min)
	require.NotNil(t, edge.Quantifier.Max)
	assert.Equal(t, 3, *edge.Quantifier.Max)
}

func TestParse_LabelExpression(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person&Employee|!Contractor) RETURN n")
	match := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.MatchClause)
	node := match.Pattern.Paths[0].Elements[0].(*gql.NodePattern)

	or, ok := node.Labels.(*gql.LabelOr)
	require.True(t, ok)

	and, ok := or.Left.(*gql.LabelAnd)
	require.True(t, ok)
	assert.Equal(t, "Person", and.Left.(*gql.LabelName).Name)
	assert.Equal(t, "Employee", and.Right.(*gql.LabelName).Name)

	not, ok := or.Right.(*gql.LabelNot)
	require.True(t, ok)
	assert.Equal(t, "Contractor", not.Operand.(*gql.LabelName).Name)
}

func TestParse_OptionalMatch(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) OPTIONAL MATCH (n)-[:OWNS]->(p:Pet) RETURN n, p")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)
	require.Len(t, lq.Clauses, 3)

	opt, ok := lq.Clauses[1].(*gql.OptionalMatchClause)
	require.True(t, ok)
	require.NotNil(t, opt.Pattern)
}

func TestParse_FilterAndLet(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) LET age = n.age FILTER age > 18 RETURN n")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)
	require.Len(t, lq.Clauses, 3)

	let, ok := lq.Clauses[1].(*gql.LetClause)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	assert.Equal(t, "age", let.Bindings[0].Name)

	filter, ok := lq.Clauses[2].(*gql.FilterClause)
	require.True(t, ok)

	cmpOp, ok := filter.Condition.(*gql.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ">", cmpOp.Op)
}

func TestParse_OrderByOffsetLimit(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) RETURN n ORDER BY n.age DESC NULLS LAST OFFSET 5 LIMIT 10")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)
	require.Len(t, lq.Clauses, 3)

	page, ok := lq.Clauses[2].(*gql.OrderByPageClause)
	require.True(t, ok)
	require.Len(t, page.OrderBy, 1)
	assert.True(t, page.OrderBy[0].Descending)
	assert.True(t, page.OrderBy[0].HasNullsDir)
	assert.False(t, page.OrderBy[0].NullsFirst)
	require.NotNil(t, page.Skip)
	require.NotNil(t, page.Limit)
}

func TestParse_CallWithYield(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "CALL my.proc(1, 2) YIELD x AS y RETURN y")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)

	call, ok := lq.Clauses[0].(*gql.CallClause)
	require.True(t, ok)
	require.NotNil(t, call.Procedure)
	require.Len(t, call.Procedure.Args, 2)
	require.Len(t, call.Procedure.Yield, 1)
	assert.Equal(t, "x", call.Procedure.Yield[0].Name)
	assert.Equal(t, "y", call.Procedure.Yield[0].Alias)
}

func TestParse_CallInlineSubquery(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "CALL (n) { MATCH (n)-[:KNOWS]->(m) RETURN m } RETURN m")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)

	call, ok := lq.Clauses[0].(*gql.CallClause)
	require.True(t, ok)
	require.Equal(t, []string{"n"}, call.Imported)
	require.NotNil(t, call.Inline)
	require.Len(t, call.Inline.Clauses, 2)
}

func TestParse_InsertSetRemoveDelete(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) SET n.age = 30 REMOVE n.nickname DETACH DELETE n")
	require.Len(t, prog.Statements, 1)

	stmt, ok := prog.Statements[0].(*gql.DataModificationStatement)
	require.True(t, ok)
	require.Len(t, stmt.Clauses, 4)

	set, ok := stmt.Clauses[1].(*gql.SetClause)
	require.True(t, ok)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "age", set.Items[0].Target.Property)

	remove, ok := stmt.Clauses[2].(*gql.RemoveClause)
	require.True(t, ok)
	assert.Equal(t, "nickname", remove.Items[0].Property)

	del, ok := stmt.Clauses[3].(*gql.DeleteClause)
	require.True(t, ok)
	assert.True(t, del.Detach)
	assert.Equal(t, []string{"n"}, del.Variables)
}

func TestParse_InsertPattern(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "INSERT (n:Person {name: $name})-[:KNOWS]->(m:Person {name: $other})")

	stmt, ok := prog.Statements[0].(*gql.DataModificationStatement)
	require.True(t, ok)

	ins, ok := stmt.Clauses[0].(*gql.InsertClause)
	require.True(t, ok)
	require.Len(t, ins.Pattern.Paths[0].Elements, 3)

	node := ins.Pattern.Paths[0].Elements[0].(*gql.NodePattern)
	require.NotNil(t, node.Properties)
	require.Len(t, node.Properties.Entries, 1)
	assert.Equal(t, "name", node.Properties.Entries[0].Key)

	param, ok := node.Properties.Entries[0].Value.(*gql.ParameterRef)
	require.True(t, ok)
	assert.Equal(t, "name", param.Name)
}

func TestParse_CompositeQueryUnion(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (a:A) RETURN a UNION ALL MATCH (b:B) RETURN b")

	qs, ok := prog.Statements[0].(*gql.QueryStatement)
	require.True(t, ok)

	cq, ok := qs.Query.(*gql.CompositeQuery)
	require.True(t, ok)
	assert.Equal(t, gql.SetOperatorUnionAll, cq.Operator)
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "RETURN 1 + 2 * 3")
	ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)

	top, ok := ret.Items[0].Expr.(*gql.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", top.Op)

	left, ok := top.Left.(*gql.Literal)
	require.True(t, ok)
	assert.Equal(t, "1", left.Text)

	right, ok := top.Right.(*gql.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParse_IsPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"is-null", "RETURN n IS NULL"},
		{"is-not-null", "RETURN n IS NOT NULL"},
		{"is-typed", "RETURN n IS TYPED INT"},
		{"is-labeled", "RETURN n IS LABELED Person"},
		{"is-directed", "RETURN n IS DIRECTED"},
		{"is-source-of", "RETURN n IS SOURCE OF e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prog := parseOK(t, tt.src)
			ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)
			require.Len(t, ret.Items, 1)
		})
	}
}

func TestParse_CaseAndCast(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "RETURN CASE WHEN n.age > 18 THEN 'adult' ELSE 'minor' END, CAST(n.age AS STRING)")
	ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)
	require.Len(t, ret.Items, 2)

	caseExpr, ok := ret.Items[0].Expr.(*gql.CaseExpr)
	require.True(t, ok)
	require.Len(t, caseExpr.Whens, 1)
	require.NotNil(t, caseExpr.Else)

	cast, ok := ret.Items[1].Expr.(*gql.CastExpr)
	require.True(t, ok)
	_, isStr := cast.Target.(*gql.StringType)
	assert.True(t, isStr)
}

func TestParse_AggregateAndFunctionCalls(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "RETURN COUNT(DISTINCT n), COUNT(*), upper(n.name)")
	ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)
	require.Len(t, ret.Items, 3)

	agg1, ok := ret.Items[0].Expr.(*gql.AggregateCall)
	require.True(t, ok)
	assert.True(t, agg1.Distinct)

	agg2, ok := ret.Items[1].Expr.(*gql.AggregateCall)
	require.True(t, ok)
	assert.True(t, agg2.Star)

	fn, ok := ret.Items[2].Expr.(*gql.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "upper", fn.Name)
	require.Len(t, fn.Args, 1)
}

func TestParse_ExistsPattern(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) FILTER EXISTS { (n)-[:OWNS]->(:Pet) } RETURN n")
	lq := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery)
	filter := lq.Clauses[1].(*gql.FilterClause)

	exists, ok := filter.Condition.(*gql.ExistsExpr)
	require.True(t, ok)
	require.NotNil(t, exists.Pattern)
	require.Nil(t, exists.Query)
}

func TestParse_SubqueryExpression(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "RETURN (MATCH (n:Person) RETURN n.name)")
	ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)

	sub, ok := ret.Items[0].Expr.(*gql.SubqueryExpr)
	require.True(t, ok)
	require.NotNil(t, sub.Query)
}

func TestParse_ListAndRecordConstructors(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "RETURN [1, 2, 3], {name: 'a', age: 1}")
	ret := prog.Statements[0].(*gql.QueryStatement).Query.(*gql.LinearQuery).Clauses[0].(*gql.ReturnClause)

	list, ok := ret.Items[0].Expr.(*gql.ListConstructor)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)

	record, ok := ret.Items[1].Expr.(*gql.RecordConstructor)
	require.True(t, ok)
	require.Len(t, record.Fields, 2)
}

func TestParse_SessionStatement(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "SESSION SET PARAMETER x = 1, RESET PARAMETER y")
	stmt, ok := prog.Statements[0].(*gql.SessionStatement)
	require.True(t, ok)
	require.Len(t, stmt.Clauses, 2)
	assert.Equal(t, gql.SessionSetParameter, stmt.Clauses[0].Kind)
	assert.Equal(t, gql.SessionResetParameter, stmt.Clauses[1].Kind)
}

func TestParse_TransactionStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		kind gql.TransactionKeyword
	}{
		{"START TRANSACTION", gql.TransactionStart},
		{"COMMIT", gql.TransactionCommit},
		{"ROLLBACK", gql.TransactionRollback},
	}

	for _, tt := range tests {
		prog := parseOK(t, tt.src)
		stmt, ok := prog.Statements[0].(*gql.TransactionStatement)
		require.True(t, ok)
		assert.Equal(t, tt.kind, stmt.Keyword)
	}
}

func TestParse_CatalogStatements(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "CREATE GRAPH myGraph")
	stmt, ok := prog.Statements[0].(*gql.CatalogStatement)
	require.True(t, ok)
	assert.Equal(t, gql.CatalogCreate, stmt.Action)
	assert.Equal(t, gql.CatalogObjectGraph, stmt.Object)
	assert.Equal(t, "myGraph", stmt.Name)

	prog = parseOK(t, "DROP GRAPH TYPE myType")
	stmt = prog.Statements[0].(*gql.CatalogStatement)
	assert.Equal(t, gql.CatalogDrop, stmt.Action)
	assert.Equal(t, gql.CatalogObjectGraphType, stmt.Object)
}

func TestParse_MultipleStatements(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:A) RETURN n; MATCH (n:B) RETURN n")
	require.Len(t, prog.Statements, 2)
}

func TestParse_RecoversFromUnexpectedToken(t *testing.T) {
	t.Parallel()

	prog, diags := gql.Parse([]byte("MATCH (n:Person RETURN n"))
	require.NotNil(t, prog)
	require.NotEmpty(t, diags)

	found := false

	for _, d := range diags {
		if d.Code == gql.CodeUnexpectedToken {
			found = true
		}
	}

	assert.True(t, found)
}

func TestParse_FinishClause(t *testing.T) {
	t.Parallel()

	prog := parseOK(t, "MATCH (n:Person) DETACH DELETE n FINISH")
	stmt := prog.Statements[0].(*gql.DataModificationStatement)

	_, ok := stmt.TerminalClause().(*gql.FinishClause)
	require.True(t, ok)
}

func TestParse_EmptyProgramHasNoDiagnostics(t *testing.T) {
	t.Parallel()

	prog, diags := gql.Parse([]byte(""))
	require.NotNil(t, prog)
	assert.Empty(t, diags)
	assert.Empty(t, prog.Statements)
}
