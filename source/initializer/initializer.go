package initializer

import (
	"fmt"

	"github.com/tim-hardcastle/Minnow/source/ast"
	"github.com/tim-hardcastle/Minnow/source/digraph"
	"github.com/tim-hardcastle/Minnow/source/dtypes"
	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/evaluator"
	"github.com/tim-hardcastle/Minnow/source/lexer"
	"github.com/tim-hardcastle/Minnow/source/parser"
	"github.com/tim-hardcastle/Minnow/source/settings"
	"github.com/tim-hardcastle/Minnow/source/token"
	"github.com/tim-hardcastle/Minnow/source/values"
)

// The initializer turns the text of a script into a Model. It works in
// phases over the whole script at once: all the classes, then all the
// factories, then all the defaults, then all the constants. Everything that
// can go wrong goes wrong now, gets recorded, and doesn't stop the other
// declarations from being processed: a broken class is marked as broken and
// stepped around, not allowed to hide whatever may be wrong with its
// neighbors.

type initializer struct {
	model      *evaluator.Model
	errors     err.Errors
	classDecls map[string]*ast.ClassDeclaration
	classOrder []*evaluator.ClassInfo // Superclasses before their subclasses.
	constTypes map[string]string
}

func Initialize(source, code string) (*evaluator.Model, err.Errors) {
	iz := &initializer{
		model:      evaluator.NewModel(),
		errors:     err.Errors{},
		classDecls: map[string]*ast.ClassDeclaration{},
		constTypes: map[string]string{},
	}
	chunks := iz.tokenizeAndChunk(source, code)
	classDecls, factoryDecls, constDecls := iz.parseDeclarations(chunks)
	iz.declareClasses(classDecls)
	iz.declareFactories(factoryDecls)
	iz.resolveConstructedTypes()
	iz.evaluateDefaults()
	constOrder, constsByName := iz.declareConstants(constDecls)
	iz.checkFactoryBodies()
	iz.evaluateConstants(constOrder, constsByName)
	if settings.SHOW_INITIALIZER {
		for _, ci := range iz.classOrder {
			fmt.Println(ci.Name, ci.Fields.String(), "broken:", ci.Broken)
		}
	}
	return iz.model, iz.errors
}

func (iz *initializer) throw(errorID string, tok token.Token, args ...any) {
	iz.errors = append(iz.errors, err.CreateErr(errorID, tok, args...))
}

// Lexes the script and cuts the token stream up into one chunk per
// declaration. A newline ends a declaration unless a parenthesis or bracket
// is open, in which case the declaration carries on over the line break.
func (iz *initializer) tokenizeAndChunk(source, code string) [][]token.Token {
	lex := lexer.New(source, code)
	chunks := [][]token.Token{}
	current := []token.Token{}
	nesting := dtypes.NewStack[token.Token]()
	seenHeadword := false
	checkedStart := false
	for {
		tok := lex.NextToken()
		if settings.SHOW_LEXER {
			fmt.Println(tok)
		}
		if tok.Type == token.EOF || tok.Type == token.NEWLINE {
			if tok.Type == token.NEWLINE && !nesting.IsEmpty() {
				continue
			}
			if len(current) > 0 {
				chunks = append(chunks, current)
				current = []token.Token{}
			}
			if tok.Type == token.EOF {
				break
			}
			continue
		}
		if token.TokenTypeIsHeadword(tok.Type) && len(current) == 0 {
			seenHeadword = true
			checkedStart = true
			continue
		}
		if !checkedStart {
			checkedStart = true
			if !seenHeadword {
				iz.throw("init/head", tok)
			}
		}
		switch tok.Type {
		case token.LPAREN, token.LBRACK:
			nesting.Push(tok)
		case token.RPAREN, token.RBRACK:
			nesting.Pop()
		}
		current = append(current, tok)
	}
	iz.errors = err.MergeErrors(iz.errors, lex.GetErrors())
	return chunks
}

func (iz *initializer) parseDeclarations(chunks [][]token.Token) ([]*ast.ClassDeclaration, []*ast.FactoryDeclaration, []*ast.AssignmentExpression) {
	classDecls := []*ast.ClassDeclaration{}
	factoryDecls := []*ast.FactoryDeclaration{}
	constDecls := []*ast.AssignmentExpression{}
	for _, chunk := range chunks {
		p := parser.New(chunk)
		node := p.ParseDeclaration()
		iz.errors = err.MergeErrors(iz.errors, p.Errors)
		if settings.SHOW_PARSER {
			fmt.Println(node.String())
		}
		switch node := node.(type) {
		case *ast.ClassDeclaration:
			classDecls = append(classDecls, node)
		case *ast.FactoryDeclaration:
			factoryDecls = append(factoryDecls, node)
		case *ast.AssignmentExpression:
			constDecls = append(constDecls, node)
		}
	}
	return classDecls, factoryDecls, constDecls
}

// Registers the classes, works out which of them can have field tables at
// all, and builds the tables of those that can, each superclass before its
// subclasses so that the subclasses have something to inherit from.
func (iz *initializer) declareClasses(decls []*ast.ClassDeclaration) {
	registered := []*ast.ClassDeclaration{}
	for _, d := range decls {
		if _, exists := iz.model.Types.TypeOf(d.Name); exists {
			iz.throw("init/class/exists", d.GetToken(), d.Name)
			continue
		}
		t := iz.model.Types.AddClass(d.Name)
		ci := &evaluator.ClassInfo{Name: d.Name, Super: d.Super, Type: t, Tok: d.GetToken()}
		iz.model.Classes[d.Name] = ci
		iz.model.ClassOf[t] = ci
		iz.classDecls[d.Name] = d
		registered = append(registered, d)
	}
	// Missing superclasses.
	graph := digraph.Digraph[string]{}
	for _, d := range registered {
		ci := iz.model.Classes[d.Name]
		if d.Super != "" {
			if _, ok := iz.model.Classes[d.Super]; !ok {
				iz.throw("init/class/super", d.GetToken(), d.Name, d.Super)
				ci.Broken = true
				ci.Super = ""
				graph.Add(d.Name, []string{})
				continue
			}
			graph.Add(d.Name, []string{d.Super})
			continue
		}
		graph.Add(d.Name, []string{})
	}
	// Cycles. Anything the ordering couldn't place is on one.
	ordering, _ := digraph.Ordering(graph)
	orderable := dtypes.MakeFromSlice(ordering)
	for _, d := range registered {
		if !orderable.Contains(d.Name) {
			iz.throw("init/class/cycle", d.GetToken(), d.Name)
			iz.model.Classes[d.Name].Broken = true
		}
	}
	// Field tables, superclasses first. Ties are broken by declaration order
	// so that the errors come out in the order of the script.
	done := dtypes.Set[string]{}
	for len(done) < len(registered) {
		progress := false
		for _, d := range registered {
			ci := iz.model.Classes[d.Name]
			if done.Contains(d.Name) || (!orderable.Contains(d.Name)) {
				continue
			}
			if ci.Super != "" && !done.Contains(ci.Super) {
				continue
			}
			iz.buildFieldTable(d, ci)
			iz.classOrder = append(iz.classOrder, ci)
			done.Add(d.Name)
			progress = true
		}
		if !progress {
			break
		}
	}
}

func (iz *initializer) buildFieldTable(d *ast.ClassDeclaration, ci *evaluator.ClassInfo) {
	fields := evaluator.Signature{}
	inherited := false
	if ci.Super != "" {
		superCi := iz.model.Classes[ci.Super]
		if superCi.Broken {
			iz.throw("init/class/inherit", d.GetToken(), ci.Name, ci.Super)
			ci.Broken = true
			return
		}
		fields = append(fields, superCi.Fields...)
		inherited = true
		iz.model.Types.SetSuper(ci.Name, ci.Super)
	}
	own := dtypes.Set[string]{}
	for _, pair := range d.Sig {
		if own.Contains(pair.VarName) {
			iz.throw("init/class/duplicate", d.GetToken(), pair.VarName, ci.Name)
			ci.Broken = true
			continue
		}
		own.Add(pair.VarName)
		if inherited && fields.IndexOf(pair.VarName) != -1 {
			iz.throw("init/class/redeclare", d.GetToken(), ci.Name, pair.VarName, iz.findFieldOwner(ci.Super, pair.VarName))
			ci.Broken = true
			continue
		}
		if _, ok := iz.model.Types.TypeOf(pair.VarType); !ok {
			iz.throw("init/class/type", d.GetToken(), pair.VarName, ci.Name, pair.VarType)
			ci.Broken = true
			continue
		}
		if pair.Default != nil {
			t, errs := CheckExpression(iz.model, pair.Default, map[string]string{}, "")
			iz.errors = err.MergeErrors(iz.errors, errs)
			if t != "" && !iz.model.Types.IsSameTypeOrSubtype(t, pair.VarType) {
				iz.throw("init/default/type", d.GetToken(), pair.VarName, ci.Name, t, pair.VarType)
				ci.Broken = true
				continue
			}
		}
		fields = append(fields, evaluator.Param{Name: pair.VarName, Type: pair.VarType, DefaultExpr: pair.Default})
	}
	ci.Fields = fields
}

// Walks up the superclass chain to find the ancestor which declares a field.
func (iz *initializer) findFieldOwner(super, fieldName string) string {
	for super != "" {
		d := iz.classDecls[super]
		if _, ok := d.Sig.GetVarType(fieldName); ok {
			return super
		}
		super = d.Super
	}
	return ""
}

func (iz *initializer) declareFactories(decls []*ast.FactoryDeclaration) {
	for _, d := range decls {
		ci, ok := iz.model.Classes[d.ClassName]
		if !ok {
			iz.throw("init/factory/class", d.GetToken(), d.ClassName)
			continue
		}
		if ci.Factory != nil {
			iz.throw("init/factory/exists", d.GetToken(), d.ClassName)
			continue
		}
		params := evaluator.Signature{}
		seen := dtypes.Set[string]{}
		brokenFactory := false
		for _, pair := range d.Sig {
			if seen.Contains(pair.VarName) {
				iz.throw("init/factory/duplicate", d.GetToken(), pair.VarName, ci.Name)
				brokenFactory = true
				continue
			}
			seen.Add(pair.VarName)
			if _, ok := iz.model.Types.TypeOf(pair.VarType); !ok {
				iz.throw("init/factory/sig", d.GetToken(), pair.VarName, ci.Name, pair.VarType)
				brokenFactory = true
				continue
			}
			if pair.Default != nil {
				t, errs := CheckExpression(iz.model, pair.Default, map[string]string{}, "")
				iz.errors = err.MergeErrors(iz.errors, errs)
				if t != "" && !iz.model.Types.IsSameTypeOrSubtype(t, pair.VarType) {
					iz.throw("init/factory/default", d.GetToken(), pair.VarName, ci.Name, t, pair.VarType)
					brokenFactory = true
					continue
				}
			}
			params = append(params, evaluator.Param{Name: pair.VarName, Type: pair.VarType, DefaultExpr: pair.Default})
		}
		ci.Factory = &evaluator.Factory{ClassName: d.ClassName, Params: params, Body: d.Body, Tok: d.GetToken(), Constructs: d.ClassName}
		if brokenFactory {
			ci.Broken = true
		}
		if !factoryTerminates(d.Body, d.ClassName, iz.model.Types) {
			iz.throw("init/factory/return", d.GetToken(), d.ClassName)
			ci.Broken = true
		}
	}
}

// Works out which class each factory actually constructs. A factory whose
// terminals are all the raw constructor makes instances of its own class; one
// that delegates to a superclass's factory makes whatever that factory makes.
// The classes are visited superclasses first, so by the time we reach a
// factory the factories it could delegate to have already been resolved.
func (iz *initializer) resolveConstructedTypes() {
	for _, ci := range iz.classOrder {
		if ci.Factory == nil {
			continue
		}
		terminals := dtypes.Set[string]{}
		factoryTerminals(ci.Factory.Body, terminals)
		constructs := ci.Name
		for name := range terminals {
			if name == ci.Name {
				continue
			}
			target := name
			if super, ok := iz.model.Classes[name]; ok && super.Factory != nil {
				target = super.Factory.Constructs
			}
			// The terminals all lie on one chain of superclasses, so the
			// weakest of them is well-defined whatever order we meet them in.
			if iz.model.Types.IsSameTypeOrSubtype(constructs, target) {
				constructs = target
			}
		}
		ci.Factory.Constructs = constructs
	}
}

// Evaluates the default values of fields and factory parameters. Each
// distinct default expression is evaluated once, however many subclasses
// inherit it.
func (iz *initializer) evaluateDefaults() {
	cache := map[ast.Node]*values.Value{}
	for _, ci := range iz.classOrder {
		if ci.Broken {
			continue
		}
		if ci.Super != "" && iz.model.Classes[ci.Super].Broken {
			iz.throw("init/class/inherit", ci.Tok, ci.Name, ci.Super)
			ci.Broken = true
			continue
		}
		for i := range ci.Fields {
			iz.evaluateDefault(&ci.Fields[i], ci, cache)
		}
		if ci.Factory != nil {
			for i := range ci.Factory.Params {
				iz.evaluateDefault(&ci.Factory.Params[i], ci, cache)
			}
		}
	}
}

func (iz *initializer) evaluateDefault(param *evaluator.Param, ci *evaluator.ClassInfo, cache map[ast.Node]*values.Value) {
	if param.DefaultExpr == nil {
		return
	}
	if v, done := cache[param.DefaultExpr]; done {
		param.Default = v
		if v == nil {
			ci.Broken = true
		}
		return
	}
	result := evaluator.Evaluate(param.DefaultExpr, &evaluator.Context{Model: iz.model, Env: map[string]values.Value{}})
	switch {
	case result.T == values.ERROR:
		for _, e := range result.V.(err.Errors) {
			iz.errors = err.AddErr(e, iz.errors, ci.Tok)
		}
		ci.Broken = true
		cache[param.DefaultExpr] = nil
	case result.T == values.UNSAT:
		iz.throw("eval/unsatisfied", param.DefaultExpr.GetToken())
		ci.Broken = true
		cache[param.DefaultExpr] = nil
	case !iz.model.Types.IsSameTypeOrSubtype(iz.model.Types.NameOf(result.T), param.Type):
		iz.throw("init/default/type", param.DefaultExpr.GetToken(), param.Name, ci.Name, iz.model.Types.NameOf(result.T), param.Type)
		ci.Broken = true
		cache[param.DefaultExpr] = nil
	default:
		param.Default = &result
		cache[param.DefaultExpr] = &result
	}
}

// Registers the constants, orders them by what depends on what, and checks
// their declarations statically. Returns the order and the declarations so
// that evaluateConstants can finish the job once the factories have been
// through the checker too.
func (iz *initializer) declareConstants(decls []*ast.AssignmentExpression) ([]string, map[string]*ast.AssignmentExpression) {
	byName := map[string]*ast.AssignmentExpression{}
	names := []string{}
	for _, d := range decls {
		name := d.Left.(*ast.Identifier).Value
		if _, isType := iz.model.Types.TypeOf(name); isType {
			iz.throw("init/const/name", d.GetToken(), name)
			continue
		}
		if _, exists := byName[name]; exists {
			iz.throw("init/const/exists", d.GetToken(), name)
			continue
		}
		byName[name] = d
		names = append(names, name)
	}
	graph := digraph.Digraph[string]{}
	dependencies := map[string]dtypes.Set[string]{}
	for _, name := range names {
		deps := dtypes.Set[string]{}
		collectConstRefs(byName[name].Right, byName, deps)
		dependencies[name] = deps
		graph.Add(name, deps.ToSlice())
	}
	ordering, _ := digraph.Ordering(graph)
	orderable := dtypes.MakeFromSlice(ordering)
	for _, name := range names {
		if !orderable.Contains(name) {
			iz.throw("init/const/cycle", byName[name].GetToken(), name)
			iz.constTypes[name] = "" // So that uses of it don't also complain of an unknown identifier.
		}
	}
	// As with the classes, ties in the ordering go by declaration order.
	order := []string{}
	done := dtypes.Set[string]{}
	for len(done) < len(orderable) {
		progress := false
		for _, name := range names {
			if done.Contains(name) || !orderable.Contains(name) {
				continue
			}
			ready := true
			for dep := range dependencies[name] {
				if orderable.Contains(dep) && !done.Contains(dep) {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			t, errs := CheckExpression(iz.model, byName[name].Right, iz.constTypes, "")
			iz.errors = err.MergeErrors(iz.errors, errs)
			iz.constTypes[name] = t
			if len(errs) == 0 { // A constant that failed the checker would only repeat itself if we evaluated it.
				order = append(order, name)
			}
			done.Add(name)
			progress = true
		}
		if !progress {
			break
		}
	}
	return order, byName
}

func collectConstRefs(node ast.Node, constants map[string]*ast.AssignmentExpression, result dtypes.Set[string]) {
	switch node := node.(type) {
	case *ast.Identifier:
		if _, ok := constants[node.Value]; ok {
			result.Add(node.Value)
		}
	case *ast.PairExpression:
		// The label on the left is a label, not a reference.
		collectConstRefs(node.Right, constants, result)
	default:
		for _, child := range node.Children() {
			collectConstRefs(child, constants, result)
		}
	}
}

func (iz *initializer) checkFactoryBodies() {
	for _, ci := range iz.classOrder {
		if ci.Factory == nil || ci.Broken {
			continue
		}
		env := make(map[string]string, len(iz.constTypes)+len(ci.Factory.Params))
		for k, v := range iz.constTypes {
			env[k] = v
		}
		for _, param := range ci.Factory.Params {
			env[param.Name] = param.Type
		}
		_, errs := CheckExpression(iz.model, ci.Factory.Body, env, ci.Name)
		if len(errs) > 0 {
			iz.errors = err.MergeErrors(iz.errors, errs)
			ci.Broken = true
		}
	}
}

func (iz *initializer) evaluateConstants(order []string, byName map[string]*ast.AssignmentExpression) {
	for _, name := range order {
		d := byName[name]
		result := evaluator.Evaluate(d.Right, &evaluator.Context{Model: iz.model, Env: iz.model.Constants})
		switch result.T {
		case values.ERROR:
			for _, e := range result.V.(err.Errors) {
				iz.errors = err.AddErr(e, iz.errors, d.GetToken())
			}
		case values.UNSAT:
			iz.throw("eval/unsatisfied", d.GetToken())
		default:
			iz.model.Constants[name] = result
		}
	}
}
