package treeio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutoriteDeLaConcurrence/markdowndiff/ir"
	"github.com/AutoriteDeLaConcurrence/markdowndiff/sig"
)

const sample = `
kind: doc
children:
- kind: heading
  attrs: {level: "2", class: lead}
  children:
  - text: Overview
- kind: paragraph
  children:
  - text: Hello world
- kind: code
  text: "x := 1"
`

func TestLoad(t *testing.T) {
	tree, err := Load([]byte(sample))
	require.NoError(t, err)
	root := tree.Root
	assert.Equal(t, "doc", root.Kind)
	require.Len(t, root.Children, 3)

	heading := root.Children[0]
	assert.Equal(t, "heading", heading.Kind)
	// attribute order is preserved from the document
	require.Len(t, heading.Attrs, 2)
	assert.Equal(t, ir.Attr{Key: "level", Value: "2"}, heading.Attrs[0])
	assert.Equal(t, ir.Attr{Key: "class", Value: "lead"}, heading.Attrs[1])

	text := root.Children[1].Children[0]
	assert.True(t, text.IsText())
	assert.Equal(t, "Hello world", text.Text)

	code := root.Children[2]
	assert.Equal(t, "x := 1", code.Text)
	assert.Empty(t, code.Children)
}

func TestRoundtrip(t *testing.T) {
	tree, err := Load([]byte(sample))
	require.NoError(t, err)
	out, err := Marshal(tree)
	require.NoError(t, err)
	again, err := Load(out)
	require.NoError(t, err)

	sig.Compute(tree)
	sig.Compute(again)
	assert.Equal(t, tree.Root.Sig, again.Root.Sig, "roundtrip changed the tree:\n%s", out)
	assert.Equal(t, tree.Size(), again.Size())
}

func TestLoadIgnore(t *testing.T) {
	doc := `
kind: doc
children:
- kind: comment
  children:
  - text: internal note
- kind: paragraph
  attrs: {class: boilerplate}
  children:
  - text: generated text
- kind: paragraph
  children:
  - text: real content
`
	tree, err := Load([]byte(doc), WithIgnore(`kind == "comment" || attrs["class"] == "boilerplate"`))
	require.NoError(t, err)
	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "real content", tree.Root.Children[0].Children[0].Text)
	// dropped subtrees are gone entirely
	assert.Equal(t, 3, tree.Size())
}

func TestLoadIgnoreRoot(t *testing.T) {
	_, err := Load([]byte(`kind: doc`), WithIgnore(`kind == "doc"`))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not yaml":              "::\n\t:::",
		"neither kind nor text": `attrs: {a: "1"}`,
		"bad child":             "kind: doc\nchildren:\n- attrs: {a: \"1\"}",
		"text leaf with kids":   "text: hi\nchildren:\n- text: nested",
		"nested leaf with kids": "kind: doc\nchildren:\n- {text: hi, children: [{text: nested}]}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(doc))
			assert.Error(t, err, "input: %s", doc)
		})
	}
}

func TestLoadBadIgnoreExpression(t *testing.T) {
	_, err := Load([]byte(`kind: doc`), WithIgnore(`kind ==`))
	assert.Error(t, err)
	// non-bool expressions are rejected at compile time
	_, err = Load([]byte(`kind: doc`), WithIgnore(`kind`))
	assert.Error(t, err)
}
