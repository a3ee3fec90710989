// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"text/template"
)

// rebindType is one struct type scheduled for method emission.
type rebindType struct {
	Name   string
	Fields []string
}

var output = template.Must(template.New("rebind").Parse(`// Code generated by rebindgen. DO NOT EDIT.

package {{.Package}}
{{range .Types}}
// Rebind reconstructs the value field by field under the caller's scope.
// Every field is reused as-is; the result is bit-identical to v.
func (v {{.Name}}) Rebind() {{.Name}} {
	return {{.Name}}{
{{- range .Fields}}
		{{.}}: v.{{.}},
{{- end}}
	}
}
{{end}}`))

// generate parses src and emits Rebind methods for the named struct types.
func generate(src []byte, filename string, types []string) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(types))
	for _, name := range types {
		wanted[name] = true
	}

	var found []rebindType
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if !wanted[ts.Name.Name] {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("%s: type %s is not a struct", filename, ts.Name.Name)
			}
			fields, err := fieldNames(st)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", filename, ts.Name.Name, err)
			}
			found = append(found, rebindType{Name: ts.Name.Name, Fields: fields})
			delete(wanted, ts.Name.Name)
		}
	}
	if len(wanted) > 0 {
		for name := range wanted {
			return nil, fmt.Errorf("%s: type %s not found", filename, name)
		}
	}

	var buf bytes.Buffer
	err = output.Execute(&buf, struct {
		Package string
		Types   []rebindType
	}{Package: file.Name.Name, Types: found})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

// fieldNames collects the member names of a struct declaration, resolving
// embedded fields to their implicit name.
func fieldNames(st *ast.StructType) ([]string, error) {
	var names []string
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			name, err := embeddedName(field.Type)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
			continue
		}
		for _, ident := range field.Names {
			names = append(names, ident.Name)
		}
	}
	return names, nil
}

// embeddedName resolves the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, nil
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name, nil
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return "", fmt.Errorf("unsupported embedded field %T", expr)
	}
}
