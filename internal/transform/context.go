package transform

import (
	"sort"
	"strconv"
	"strings"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/options"
	"vuejsx/internal/resolvetype"
	"vuejsx/internal/source"
)

const (
	vueModule         = "vue"
	transformOnModule = "@vue/babel-helper-vue-transform-on"
)

// Options configures one Run.
type Options struct {
	Reporter diag.Reporter
	Config   *options.Compiled
}

// Import is one runtime symbol the rewritten module needs.
type Import struct {
	Name  string // exported name in "vue"
	Local string
	// Existing marks aliases that the source already imports.
	Existing bool
}

// Result describes what the pass injected into the module.
type Result struct {
	Imports           []Import
	TransformOnHelper string
	NeedsSlotHelper   bool
	Elements          int
	Fragments         int
	TypedComponents   int
}

// Imports is the ordered symbol table of one pass.
type Imports struct {
	byName map[string]*Import
	order  []string
}

func newImports() *Imports {
	return &Imports{byName: make(map[string]*Import)}
}

func (im *Imports) lookup(name string) (*Import, bool) {
	imp, ok := im.byName[name]
	return imp, ok
}

func (im *Imports) add(imp Import) *Import {
	if prev, ok := im.byName[imp.Name]; ok {
		return prev
	}
	stored := imp
	im.byName[imp.Name] = &stored
	im.order = append(im.order, imp.Name)
	return &stored
}

// Len returns the number of registered symbols.
func (im *Imports) Len() int { return len(im.order) }

// Sorted returns the symbols ordered by exported name.
func (im *Imports) Sorted() []Import {
	out := make([]Import, 0, len(im.order))
	for _, name := range im.order {
		out = append(out, *im.byName[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Context is the per-file state threaded through every compile step.
// It is never shared between files.
type Context struct {
	b        *ast.Builder
	fileID   ast.FileID
	file     *ast.File
	cfg      *options.Compiled
	reporter diag.Reporter

	imports     *Imports
	taken       map[string]struct{}
	transformOn string
	slotHelper  string
	pragma      string

	pendingVars []string
	slotCounter int

	defineComponent bool
	types           *resolvetype.Scopes

	res Result
}

// NewContext prepares a pass over fileID.
func NewContext(b *ast.Builder, fileID ast.FileID, opts Options) *Context {
	cfg := opts.Config
	if cfg == nil {
		cfg = options.Default().MustCompile()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	c := &Context{
		b:           b,
		fileID:      fileID,
		file:        b.Files.Get(fileID),
		cfg:         cfg,
		reporter:    reporter,
		imports:     newImports(),
		taken:       make(map[string]struct{}),
		slotCounter: 1,
		types:       resolvetype.NewScopes(),
	}
	c.scanImports()
	c.pragma = c.searchPragma()
	if c.pragma == "" {
		c.pragma = cfg.Pragma
	}
	return c
}

// scanImports reuses aliases of runtime symbols the file already imports
// from "vue" and notices the defineComponent import.
func (c *Context) scanImports() {
	for _, stmtID := range c.file.Body {
		imp, ok := c.b.Stmts.Import(stmtID)
		if !ok || imp.TypeOnly || c.b.Name(imp.Source) != vueModule {
			continue
		}
		for _, spec := range imp.Specs {
			if spec.Kind != ast.ImportNamed || spec.TypeOnly {
				continue
			}
			imported, local := c.b.Name(spec.Imported), c.b.Name(spec.Local)
			if imported == "defineComponent" && local == imported {
				c.defineComponent = true
			}
			c.imports.add(Import{Name: imported, Local: local, Existing: true})
		}
	}
}

// searchPragma looks for `@jsx name` in the comments leading the module
// and its top-level statements. The last one in the file wins.
func (c *Context) searchPragma() string {
	var groups [][]ast.Comment
	if len(c.file.Body) == 0 {
		groups = append(groups, c.file.Comments)
	}
	for _, stmtID := range c.file.Body {
		if stmt := c.b.Stmts.Get(stmtID); stmt != nil {
			groups = append(groups, c.file.LeadingComments(stmt.Span.Start))
		}
	}
	pragma := ""
	for _, group := range groups {
		for _, cm := range group {
			if name, ok := parsePragma(cm.Text); ok {
				pragma = name
			}
		}
	}
	return pragma
}

func parsePragma(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, "*"))
	rest, ok := strings.CutPrefix(text, "@jsx")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// unique reserves a module-level helper name that no binding of the file uses.
func (c *Context) unique(base string) string {
	name := base
	for n := 2; c.clashes(name); n++ {
		name = base + strconv.Itoa(n)
	}
	c.taken[name] = struct{}{}
	return name
}

func (c *Context) clashes(name string) bool {
	if _, ok := c.taken[name]; ok {
		return true
	}
	return c.file.Declares(c.b.Intern(name))
}

// importVue registers a runtime symbol and returns a reference to its local name.
func (c *Context) importVue(name string) ast.ExprID {
	imp, ok := c.imports.lookup(name)
	if !ok {
		imp = c.imports.add(Import{Name: name, Local: c.unique("_" + name)})
	}
	return c.b.Ident(imp.Local)
}

// fragmentLocal is the local name Fragment is known under, if any.
func (c *Context) fragmentLocal() (string, bool) {
	imp, ok := c.imports.lookup("Fragment")
	if !ok {
		return "", false
	}
	return imp.Local, true
}

func (c *Context) factory() ast.ExprID {
	if c.pragma != "" {
		return c.b.Ident(c.pragma)
	}
	return c.importVue("createVNode")
}

func (c *Context) transformOnHelper() ast.ExprID {
	if c.transformOn == "" {
		c.transformOn = c.unique("_transformOn")
	}
	return c.b.Ident(c.transformOn)
}

func (c *Context) slotHelperIdent() ast.ExprID {
	if c.slotHelper == "" {
		c.slotHelper = c.unique("_isSlot")
	}
	return c.b.Ident(c.slotHelper)
}

// slotVar allocates the next `_slot` temporary of the current statement list.
func (c *Context) slotVar() string {
	for {
		name := "_slot"
		if c.slotCounter > 1 {
			name += strconv.Itoa(c.slotCounter)
		}
		c.slotCounter++
		if !c.file.Declares(c.b.Intern(name)) {
			c.pendingVars = append(c.pendingVars, name)
			return name
		}
	}
}

// takeVars hands out the pending temporaries as a `let` declaration.
func (c *Context) takeVars() (ast.StmtID, bool) {
	if len(c.pendingVars) == 0 {
		return ast.NoStmtID, false
	}
	decls := make([]ast.VarDeclarator, 0, len(c.pendingVars))
	for _, name := range c.pendingVars {
		decls = append(decls, ast.VarDeclarator{Target: c.b.Ident(name)})
	}
	c.pendingVars = c.pendingVars[:0]
	c.slotCounter = 1
	return c.b.Stmts.NewVar(source.Span{}, "let", decls), true
}

// sourceText returns the file text under a real span.
func (c *Context) sourceText(sp source.Span) (string, bool) {
	if sp.IsSynthetic() || sp.End < sp.Start || int(sp.End) > len(c.file.Source) {
		return "", false
	}
	return string(c.file.Source[sp.Start:sp.End]), true
}

func (c *Context) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(c.reporter, code, sp, msg).Emit()
}
