package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/session"
	"github.com/trackflix/trackflix/internal/shared"
	"github.com/trackflix/trackflix/internal/store"
	"github.com/urfave/cli/v3"
)

// resourceList fetches and displays the server copy of a collection.
func (r *Runner) resourceList(sc schema.Schema) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		st, err := r.storeFor(sc.Resource)
		if err != nil {
			return err
		}

		r.logger.Info("fetching collection", "resource", sc.Resource)
		if err := st.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		items := st.Items()
		if cmd.Bool("json") {
			return r.writeJSON(items, true)
		}
		r.writeEntityTable(sc, items)
		return nil
	}
}

// resourceGet displays a single entity from the freshly fetched collection.
func (r *Runner) resourceGet(sc schema.Schema) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		st, err := r.storeFor(sc.Resource)
		if err != nil {
			return err
		}
		id := int64(cmd.Int("id"))

		if err := st.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		entity, ok := st.Find(id)
		if !ok {
			return fmt.Errorf("%w: %s %d", shared.ErrEntityNotFound, sc.Resource, id)
		}

		if cmd.Bool("json") {
			return r.writeJSON(entity, true)
		}
		r.writeEntityTable(sc, []schema.Entity{entity})
		return nil
	}
}

// resourceCreate builds a create session from field flags and submits it.
func (r *Runner) resourceCreate(sc schema.Schema) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		st, err := r.storeFor(sc.Resource)
		if err != nil {
			return err
		}

		sess := session.New(sc)
		sess.BeginCreate(nil)
		if err := r.applyFieldFlags(sess, sc, cmd); err != nil {
			return err
		}

		r.logger.Info("creating entity", "resource", sc.Resource)
		if err := r.submit(ctx, sess, st); err != nil {
			return err
		}

		r.writePlainln("✓ Created %s entry (%d total)", sc.Title, len(st.Items()))
		return nil
	}
}

// resourceUpdate edits an entity, changing only the fields given as flags.
func (r *Runner) resourceUpdate(sc schema.Schema) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		st, err := r.storeFor(sc.Resource)
		if err != nil {
			return err
		}
		id := int64(cmd.Int("id"))

		if err := st.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		entity, ok := st.Find(id)
		if !ok {
			return fmt.Errorf("%w: %s %d", shared.ErrEntityNotFound, sc.Resource, id)
		}

		sess := session.New(sc)
		if err := sess.BeginEdit(entity); err != nil {
			return err
		}
		if err := r.applyFieldFlags(sess, sc, cmd); err != nil {
			return err
		}

		r.logger.Info("updating entity", "resource", sc.Resource, "id", id)
		if err := r.submit(ctx, sess, st); err != nil {
			return err
		}

		r.writePlainln("✓ Updated %s #%d", sc.Title, id)
		return nil
	}
}

// resourceDelete removes an entity and refetches the collection.
func (r *Runner) resourceDelete(sc schema.Schema) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		st, err := r.storeFor(sc.Resource)
		if err != nil {
			return err
		}
		id := int64(cmd.Int("id"))

		r.logger.Info("deleting entity", "resource", sc.Resource, "id", id)
		if err := st.Remove(ctx, id); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if err := st.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		r.writePlainln("✓ Deleted %s #%d (%d remaining)", sc.Title, id, len(st.Items()))
		return nil
	}
}

// applyFieldFlags copies every flag the user set into the session buffer.
func (r *Runner) applyFieldFlags(sess *session.Session, sc schema.Schema, cmd *cli.Command) error {
	for _, f := range sc.Fields {
		if !cmd.IsSet(f.Name) {
			continue
		}
		if err := sess.SetField(f.Name, cmd.String(f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// submit runs the session submit and renders validation failures
// field by field.
func (r *Runner) submit(ctx context.Context, sess *session.Session, st *store.Store) error {
	err := sess.Submit(ctx, st)
	if err == nil {
		return nil
	}

	var ve *session.ValidationError
	if errors.As(err, &ve) {
		sc := sess.Schema()
		r.writePlain("Validation failed:\n")
		for _, f := range sc.Fields {
			if msg, ok := ve.Fields[f.Name]; ok {
				r.writePlain("  %s: %s\n", f.Label, msg)
			}
		}
		return fmt.Errorf("%w: %d field(s) rejected", shared.ErrNotValid, len(ve.Fields))
	}
	return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
}
