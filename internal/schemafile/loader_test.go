package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorakthunly/modelsafe/pkg/attr"
	"github.com/sorakthunly/modelsafe/pkg/modelsafe"
	"github.com/sorakthunly/modelsafe/pkg/schema"
)

const blogSchema = `
models:
  user:
    attributes:
      name:
        type: string
        max_length: 120
      role:
        type: enum
        values: [admin, member]
        default: member
      createdAt:
        type: date
        default: now
      bio:
        type: string
        optional: true
    associations:
      posts:
        kind: many
        target: post
  post:
    attributes:
      title:
        type: string
    associations:
      author:
        kind: one
        target: user
`

func TestParseBuildsRegistry(t *testing.T) {
	reg, err := Parse([]byte(blogSchema))
	require.NoError(t, err)
	assert.Equal(t, []string{"post", "user"}, reg.Names())

	user, err := reg.Lookup("user")
	require.NoError(t, err)

	name := user.Attributes["name"]
	assert.Equal(t, attr.String{MaxLength: 120}, name.Type)
	assert.False(t, name.Optional)

	role := user.Attributes["role"]
	assert.Equal(t, attr.Enum{Values: []string{"admin", "member"}}, role.Type)
	assert.Equal(t, "member", role.Default)

	bio := user.Attributes["bio"]
	assert.True(t, bio.Optional)

	created := user.Attributes["createdAt"]
	assert.Equal(t, attr.Date{}, created.Type)
	assert.True(t, schema.IsLazy(created.Default), "date default now becomes lazy")
}

// Cyclic targets resolve through the registry regardless of definition order.
func TestParseWiresCyclicAssociations(t *testing.T) {
	reg, err := Parse([]byte(blogSchema))
	require.NoError(t, err)

	user, err := reg.Lookup("user")
	require.NoError(t, err)
	post, err := reg.Lookup("post")
	require.NoError(t, err)

	target, err := user.Associations["posts"].Target.Resolve()
	require.NoError(t, err)
	assert.Same(t, post, target)
	assert.Equal(t, schema.KindMany, user.Associations["posts"].Kind)

	back, err := post.Associations["author"].Target.Resolve()
	require.NoError(t, err)
	assert.Same(t, user, back)
}

// A loaded schema drives the engine end to end.
func TestParsedSchemaValidatesDocuments(t *testing.T) {
	reg, err := Parse([]byte(blogSchema))
	require.NoError(t, err)
	user, err := reg.Lookup("user")
	require.NoError(t, err)

	in, err := modelsafe.Deserialize(user, map[string]any{
		"name":      "ada",
		"role":      "admin",
		"createdAt": "2024-06-01T10:30:00Z",
		"posts":     []any{map[string]any{"title": "first"}},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, in.Get("posts"), 1)

	_, err = modelsafe.Deserialize(user, map[string]any{
		"name":      "ada",
		"role":      "emperor",
		"createdAt": "2024-06-01T10:30:00Z",
	}, nil)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Report, "role")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"no models", "models: {}", ErrNoModels},
		{"empty file", "", ErrNoModels},
		{
			"unknown attribute type",
			"models:\n  user:\n    attributes:\n      name:\n        type: varchar\n",
			ErrUnknownType,
		},
		{
			"unknown association target",
			"models:\n  user:\n    associations:\n      posts:\n        kind: many\n        target: post\n",
			ErrUnknownModel,
		},
		{
			"invalid association kind",
			"models:\n  user:\n    associations:\n      posts:\n        kind: several\n        target: user\n",
			schema.ErrInvalidKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modelsafe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blogSchema), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"post", "user"}, reg.Names())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseUntypedAttribute(t *testing.T) {
	reg, err := Parse([]byte("models:\n  blob:\n    attributes:\n      payload:\n        type: any\n"))
	require.NoError(t, err)

	blob, err := reg.Lookup("blob")
	require.NoError(t, err)
	assert.Nil(t, blob.Attributes["payload"].Type)
}
