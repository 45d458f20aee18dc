// Package ui implements an interactive terminal dashboard using
// bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for catalog administration:
//  1. [ResourceListView] : Pick a catalog resource to manage
//  2. [EntityListView] : Browse the server copy of the collection
//  3. [FormView] : Create or edit an entity through a validated form
//  4. [ConfirmDeleteView] : Confirm entity deletion
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Form state lives in an edit session so field edits, validation and
// submit gating behave identically to the non-interactive commands.
// Mutations always refetch the server copy before returning to the
// entity list.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
