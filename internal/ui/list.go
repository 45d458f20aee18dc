package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/trackflix/trackflix/internal/schema"
)

var (
	_ list.Item = resourceItem{}
	_ list.Item = entityItem{}
)

// resourceItem wraps [schema.Schema] to implement [list.Item].
type resourceItem struct {
	schema schema.Schema
}

func (i resourceItem) FilterValue() string { return i.schema.Title }
func (i resourceItem) Title() string       { return i.schema.Title }
func (i resourceItem) Description() string {
	return fmt.Sprintf("/%s • %d fields", i.schema.Resource, len(i.schema.Fields))
}

// entityItem wraps [schema.Entity] to implement [list.Item].
type entityItem struct {
	entity schema.Entity
	schema schema.Schema
}

// headline picks the first populated non-id field for display.
func (i entityItem) headline() string {
	buf := schema.Encode(i.entity, i.schema)
	for _, f := range i.schema.Fields {
		if f.Type == schema.ID {
			continue
		}
		if text := buf[f.Name]; text != "" {
			return text
		}
	}
	return "(untitled)"
}

func (i entityItem) FilterValue() string { return i.headline() }
func (i entityItem) Title() string       { return i.headline() }
func (i entityItem) Description() string {
	if id, ok := i.entity.ID(); ok {
		return fmt.Sprintf("id %d", id)
	}
	return "no id"
}
