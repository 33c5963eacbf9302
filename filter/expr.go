package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/edinet/edinet"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[CompiledFilter]
}

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles expression with the shared default compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// A zero document gives the checker the type of every variable.
	env := newEnvironment(edinet.Document{})
	maps.Copy(env, c.helperFuncs)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Run evaluates the filter against a document
func (f *exprFilter) Run(doc edinet.Document) (bool, error) {
	env := newEnvironment(doc)
	maps.Copy(env, f.custom)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			DocID:      doc.DocID,
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Evaluate reports whether doc matches; evaluation errors count as no match
func (f *exprFilter) Evaluate(doc edinet.Document) bool {
	ok, err := f.Run(doc)
	return err == nil && ok
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the document-independent helpers
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// newEnvironment builds the evaluation environment for one document
func newEnvironment(doc edinet.Document) map[string]any {
	env := make(map[string]any, 48)
	addHelperFunctions(env)

	env["Doc"] = doc

	// Nullable fields are flattened to "" so expressions never see nil
	env["DocID"] = doc.DocID
	env["SeqNumber"] = doc.SeqNumber
	env["EdinetCode"] = edinet.Value(doc.EdinetCode)
	env["SecCode"] = edinet.Value(doc.SecCode)
	env["JCN"] = edinet.Value(doc.JCN)
	env["FilerName"] = edinet.Value(doc.FilerName)
	env["FundCode"] = edinet.Value(doc.FundCode)
	env["OrdinanceCode"] = edinet.Value(doc.OrdinanceCode)
	env["FormCode"] = edinet.Value(doc.FormCode)
	env["DocTypeCode"] = edinet.Value(doc.DocTypeCode)
	env["Description"] = edinet.Value(doc.DocDescription)
	env["ParentDocID"] = edinet.Value(doc.ParentDocID)
	env["IssuerEdinetCode"] = edinet.Value(doc.IssuerEdinetCode)
	env["SubjectEdinetCode"] = edinet.Value(doc.SubjectEdinetCode)
	env["SubmittedAt"] = doc.SubmittedAt()

	start, end, _ := doc.Period()
	env["PeriodStart"] = start
	env["PeriodEnd"] = end

	env["XBRL"] = doc.XBRLFlag.Present()
	env["PDF"] = doc.PDFFlag.Present()
	env["Attachments"] = doc.AttachDocFlag.Present()
	env["English"] = doc.EnglishDocFlag.Present()
	env["CSV"] = doc.CSVFlag.Present()
	env["Withdrawn"] = doc.IsWithdrawn()

	env["hasFormat"] = func(name string) bool {
		f, err := edinet.ParseFormat(name)
		return err == nil && doc.HasFormat(f)
	}
	secCode := edinet.Value(doc.SecCode)
	env["listed"] = func() bool {
		return secCode != ""
	}
	docType := edinet.Value(doc.DocTypeCode)
	env["docType"] = func(code string) bool {
		return docType == code
	}

	return env
}
