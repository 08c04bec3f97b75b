// Package treeio reads and writes the YAML description of a normalized
// document tree. Producing trees from raw markup is the caller's job;
// this is the concrete encoding used by cmd/mddiff and test fixtures.
//
// A node is either a text leaf or an element:
//
//	kind: section
//	attrs: {level: "2"}
//	children:
//	- kind: paragraph
//	  children:
//	  - text: Hello world
package treeio

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
)

type nodeDesc struct {
	Kind     string        `yaml:"kind,omitempty"`
	Attrs    yaml.MapSlice `yaml:"attrs,omitempty"`
	Text     *string       `yaml:"text,omitempty"`
	Children []*nodeDesc   `yaml:"children,omitempty"`
}

// NodeEnv is the environment an ignore expression is evaluated against,
// once per element during conversion.
type NodeEnv struct {
	Kind  string            `expr:"kind"`
	Attrs map[string]string `expr:"attrs"`
	Text  string            `expr:"text"`
}

type loader struct {
	ignore *vm.Program
}

type Option func(*loader) error

// WithIgnore drops every subtree whose root satisfies the expression,
// e.g. `kind == "comment"` or `attrs["class"] == "boilerplate"`. This is
// caller-side normalization: ignored nodes never reach the engine.
func WithIgnore(code string) Option {
	return func(l *loader) error {
		prg, err := expr.Compile(code, expr.Env(NodeEnv{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compiling ignore expression: %w", err)
		}
		l.ignore = prg
		return nil
	}
}

// Load parses a YAML tree description into an ir.Tree.
func Load(data []byte, opts ...Option) (*ir.Tree, error) {
	l := &loader{}
	for _, o := range opts {
		if err := o(l); err != nil {
			return nil, err
		}
	}
	var desc nodeDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("decoding tree description: %w", err)
	}
	root, err := l.convert(&desc)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("ignore expression removed the root node")
	}
	return ir.NewTree(root)
}

func (l *loader) convert(d *nodeDesc) (*ir.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("empty node description")
	}
	if d.Kind == "" && d.Text == nil {
		return nil, fmt.Errorf("node description needs a kind or a text")
	}

	var n *ir.Node
	if d.Kind == "" {
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("text leaf cannot have children")
		}
		n = ir.Text(*d.Text)
	} else {
		n = ir.Elem(d.Kind)
		if d.Text != nil {
			n.Text = *d.Text
		}
		for _, item := range d.Attrs {
			n.WithAttr(fmt.Sprint(item.Key), fmt.Sprint(item.Value))
		}
	}

	if l.ignore != nil {
		drop, err := l.dropped(n)
		if err != nil {
			return nil, err
		}
		if drop {
			return nil, nil
		}
	}

	for _, cd := range d.Children {
		c, err := l.convert(cd)
		if err != nil {
			return nil, err
		}
		if c == nil {
			continue
		}
		n.Append(c)
	}
	return n, nil
}

func (l *loader) dropped(n *ir.Node) (bool, error) {
	env := NodeEnv{
		Kind:  n.Kind,
		Attrs: make(map[string]string, len(n.Attrs)),
		Text:  n.Text,
	}
	for _, a := range n.Attrs {
		env.Attrs[a.Key] = a.Value
	}
	out, err := expr.Run(l.ignore, env)
	if err != nil {
		return false, fmt.Errorf("evaluating ignore expression at %s: %w", n.Kind, err)
	}
	drop, _ := out.(bool)
	return drop, nil
}

// Marshal renders a tree back to its YAML description.
func Marshal(t *ir.Tree) ([]byte, error) {
	return yaml.Marshal(describe(t.Root))
}

func describe(n *ir.Node) *nodeDesc {
	d := &nodeDesc{}
	if n.IsText() {
		text := n.Text
		d.Text = &text
		return d
	}
	d.Kind = n.Kind
	if n.Text != "" {
		text := n.Text
		d.Text = &text
	}
	for _, a := range n.Attrs {
		d.Attrs = append(d.Attrs, yaml.MapItem{Key: a.Key, Value: a.Value})
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, describe(c))
	}
	return d
}
