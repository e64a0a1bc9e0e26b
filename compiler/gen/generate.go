package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/evandropoa/qooxdoo/class"
	"github.com/evandropoa/qooxdoo/schema/property"
)

// reserved holds the names a wrapper cannot declare as methods: the
// embedded field and every method it promotes.
var reserved = func() map[string]bool {
	names := map[string]bool{"Object": true}
	t := reflect.TypeFor[*class.Object]()
	for i := range t.NumMethod() {
		names[t.Method(i).Name] = true
	}
	return names
}()

// Generator renders typed wrappers for flattened classes.
type Generator struct {
	cfg *Config
}

// New returns a generator configured by opts.
func New(opts ...Option) (*Generator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config { return g.cfg }

// TypeName returns the Go type name generated for the class name: the
// camelized last dot-separated segment.
func TypeName(name string) (string, error) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	id := inflect.Camelize(name)
	if !token.IsIdentifier(id) || !token.IsExported(id) {
		return "", fmt.Errorf("class name %q does not map to an exported Go identifier", name)
	}
	return id, nil
}

// FileName returns the file name generated for the class name.
func FileName(name string) (string, error) {
	typ, err := TypeName(name)
	if err != nil {
		return "", err
	}
	return inflect.Underscore(typ) + ".go", nil
}

// File builds the wrapper file for the class v was flattened from.
func (g *Generator) File(v *class.View) (*jen.File, error) {
	name := v.Class().Name()
	typ, err := TypeName(name)
	if err != nil {
		return nil, NewGenerationError(name, "", "type name", err)
	}
	w := &wrapper{
		rt:      g.cfg.RuntimeImport,
		typ:     typ,
		cname:   typ + "Class",
		methods: make(map[string]bool),
	}
	f := jen.NewFile(g.cfg.Package)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	f.ImportName(w.rt, "class")

	f.Commentf("%s is the registered name of %s.", w.cname, typ)
	f.Const().Id(w.cname).Op("=").Lit(name)

	w.typeDecl(f, v)
	w.constructor(f)
	for _, p := range v.Properties() {
		if err := w.property(f, p); err != nil {
			return nil, newDeclError(name, "property", p.Name, err)
		}
	}
	for _, m := range v.Members() {
		if err := w.member(f, m); err != nil {
			return nil, newDeclError(name, "member", m, err)
		}
	}
	return f, nil
}

// Render returns the formatted source of the wrapper for v.
func (g *Generator) Render(v *class.View) ([]byte, error) {
	f, err := g.File(v)
	if err != nil {
		return nil, err
	}
	return g.format(v.Class().Name(), f)
}

func (g *Generator) format(name string, f *jen.File) ([]byte, error) {
	file, _ := FileName(name)
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(name, file, "render", err)
	}
	src, err := imports.Process(file, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError(name, file, "format", err)
	}
	return src, nil
}

// WriteAll writes one wrapper file per class into outDir and returns the
// written paths. With no names every registered class is generated.
// Classes are flattened on the calling goroutine; only rendering and
// writing run in parallel.
func (g *Generator) WriteAll(ctx context.Context, reg *class.Registry, outDir string, names ...string) ([]string, error) {
	if len(names) == 0 {
		names = reg.Classes()
	}
	type task struct {
		class string
		path  string
		file  *jen.File
	}
	tasks := make([]task, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		v, err := reg.Flatten(name)
		if err != nil {
			return nil, NewGenerationError(name, "", "flatten", err)
		}
		f, err := g.File(v)
		if err != nil {
			return nil, err
		}
		file, _ := FileName(name)
		if prev, ok := seen[file]; ok {
			return nil, NewGenerationError(name, file, fmt.Sprintf("collides with class %s", prev), nil)
		}
		seen[file] = name
		tasks = append(tasks, task{class: name, path: filepath.Join(outDir, file), file: f})
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("qxgen: create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for _, t := range tasks {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := g.format(t.class, t.file)
			if err != nil {
				return err
			}
			if err := os.WriteFile(t.path, src, 0o644); err != nil {
				return NewGenerationError(t.class, t.path, "write", err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	paths := make([]string, len(tasks))
	for i, t := range tasks {
		paths[i] = t.path
	}
	return paths, nil
}

// wrapper accumulates the declarations of one generated type.
type wrapper struct {
	rt      string
	typ     string
	cname   string
	methods map[string]bool
}

func (w *wrapper) recv() *jen.Statement {
	return jen.Id("x").Op("*").Id(w.typ)
}

// errMethodName reports a declaration whose name has no Go method form.
var errMethodName = errors.New("name does not map to an exported Go method")

// claim reserves a method name, reporting false when it is unusable.
func (w *wrapper) claim(name string) bool {
	if !token.IsIdentifier(name) || !token.IsExported(name) || reserved[name] || w.methods[name] {
		return false
	}
	w.methods[name] = true
	return true
}

func (w *wrapper) typeDecl(f *jen.File, v *class.View) {
	f.Commentf("%s wraps an instance of the class %s.", w.typ, v.Class().Name())
	if states := v.ForwardStates(); len(states) > 0 {
		f.Comment("")
		f.Commentf("It mirrors the states %s from its forwarding children.", strings.Join(states, ", "))
	}
	f.Type().Id(w.typ).Struct(jen.Op("*").Qual(w.rt, "Object"))
}

func (w *wrapper) constructor(f *jen.File) {
	f.Commentf("New%s creates a %s in reg, passing args to its constructors.", w.typ, w.typ)
	f.Func().Id("New"+w.typ).
		Params(jen.Id("reg").Op("*").Qual(w.rt, "Registry"), jen.Id("args").Op("...").Id("any")).
		Params(jen.Op("*").Id(w.typ), jen.Error()).
		Block(
			jen.List(jen.Id("o"), jen.Err()).Op(":=").Id("reg").Dot("New").Call(jen.Id(w.cname), jen.Id("args").Op("...")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
			jen.Return(jen.Op("&").Id(w.typ).Values(jen.Dict{jen.Id("Object"): jen.Id("o")}), jen.Nil()),
		)

	f.Commentf("As%s wraps o if it is an instance of %s or one of its subclasses.", w.typ, w.typ)
	f.Func().Id("As"+w.typ).
		Params(jen.Id("o").Op("*").Qual(w.rt, "Object")).
		Params(jen.Op("*").Id(w.typ), jen.Bool()).
		Block(
			jen.If(jen.Id("o").Op("==").Nil().Op("||").Op("!").Id("o").Dot("InstanceOf").Call(jen.Id(w.cname))).
				Block(jen.Return(jen.Nil(), jen.False())),
			jen.Return(jen.Op("&").Id(w.typ).Values(jen.Dict{jen.Id("Object"): jen.Id("o")}), jen.True()),
		)
}

func (w *wrapper) property(f *jen.File, p *class.ResolvedProperty) error {
	suffix := inflect.Camelize(p.Name)
	if !token.IsIdentifier(suffix) || !token.IsExported(suffix) {
		return errMethodName
	}
	typ, typed := goType(p)
	name := jen.Lit(p.Name)

	if w.claim(suffix) {
		if p.Comment != "" {
			f.Comment(p.Comment)
		} else {
			f.Commentf("%s returns the value of the %s property.", suffix, p.Name)
		}
		get := jen.Return(jen.Id("x").Dot("Get").Call(name))
		if typed {
			get = jen.Return(jen.Qual(w.rt, "Value").Types(typ.Clone()).Call(jen.Id("x").Dot("Object"), name))
		}
		f.Func().Params(w.recv()).Id(suffix).Params().Params(typ.Clone(), jen.Error()).Block(get)
	}
	if w.claim("Set" + suffix) {
		f.Commentf("Set%s sets the %s property.", suffix, p.Name)
		f.Func().Params(w.recv()).Id("Set"+suffix).Params(jen.Id("v").Add(typ.Clone())).Error().
			Block(jen.Return(jen.Id("x").Dot("Set").Call(name, jen.Id("v"))))
	}
	if w.claim("Reset" + suffix) {
		f.Commentf("Reset%s restores the init value of the %s property.", suffix, p.Name)
		f.Func().Params(w.recv()).Id("Reset"+suffix).Params().Error().
			Block(jen.Return(jen.Id("x").Dot("Reset").Call(name)))
	}
	if p.Check == property.Checker(property.Boolean) && w.claim("Toggle"+suffix) {
		f.Commentf("Toggle%s inverts the %s property.", suffix, p.Name)
		f.Func().Params(w.recv()).Id("Toggle"+suffix).Params().Error().
			Block(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("x").Dot("Call").Call(jen.Lit("toggle"+inflect.Capitalize(p.Name))),
				jen.Return(jen.Err()),
			)
	}
	return nil
}

// member wraps public members; names with a leading underscore stay
// reachable through Call only. A member whose method name is already
// taken is skipped.
func (w *wrapper) member(f *jen.File, name string) error {
	if strings.HasPrefix(name, "_") {
		return nil
	}
	method := inflect.Camelize(name)
	if !token.IsIdentifier(method) || !token.IsExported(method) {
		return errMethodName
	}
	if !w.claim(method) {
		return nil
	}
	f.Commentf("%s invokes the %s member.", method, name)
	f.Func().Params(w.recv()).Id(method).
		Params(jen.Id("args").Op("...").Id("any")).
		Params(jen.Id("any"), jen.Error()).
		Block(jen.Return(jen.Id("x").Dot("Call").Call(jen.Lit(name), jen.Id("args").Op("..."))))
	return nil
}

// goType returns the Go type of a property's values and whether it is
// narrower than any. Nullable properties are untyped so nil round-trips.
func goType(p *class.ResolvedProperty) (*jen.Statement, bool) {
	if p.Nullable {
		return jen.Id("any"), false
	}
	if code := typeCode(property.GoTypeOf(p.Check)); code != nil {
		return code, true
	}
	return jen.Id("any"), false
}

func typeCode(t reflect.Type) *jen.Statement {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return jen.Bool()
	case reflect.String:
		return jen.String()
	case reflect.Int:
		return jen.Int()
	case reflect.Int64:
		return jen.Int64()
	case reflect.Float64:
		return jen.Float64()
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return jen.Id("any")
		}
	case reflect.Map:
		k, e := typeCode(t.Key()), typeCode(t.Elem())
		if k != nil && e != nil {
			return jen.Map(k).Add(e)
		}
	case reflect.Slice:
		if e := typeCode(t.Elem()); e != nil {
			return jen.Index().Add(e)
		}
	}
	return nil
}
