package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brokeneck/brokeneck/cli/internal/api"
	"github.com/brokeneck/brokeneck/cli/internal/config"
	"github.com/brokeneck/brokeneck/cli/internal/entity"
	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/session"
)

// OpenSession loads the config and resolves the backend's field selections.
func OpenSession(ctx context.Context, logOut io.Writer) (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, logOut)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.ServerURL, cfg.APIKey)
	client.SetLogger(log)
	return session.New(ctx, client, cfg.Types, log)
}

// UsersCmd returns the `brokeneck users` command group.
func UsersCmd() *cobra.Command {
	return entityCmd("users", "user", "group", func(s *session.Session) session.Binding { return s.Users })
}

// GroupsCmd returns the `brokeneck groups` command group.
func GroupsCmd() *cobra.Command {
	return entityCmd("groups", "group", "user", func(s *session.Session) session.Binding { return s.Groups })
}

type bindingFunc func(*session.Session) session.Binding

func entityCmd(plural, singular, relation string, bind bindingFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("Manage %s", plural),
	}
	cmd.AddCommand(listCmd(plural, bind))
	cmd.AddCommand(showCmd(singular, bind))
	cmd.AddCommand(deleteCmd(singular, bind))
	cmd.AddCommand(editCmd(singular, bind))
	cmd.AddCommand(addRelationCmd(singular, relation, bind))
	cmd.AddCommand(removeRelationCmd(singular, relation, bind))
	return cmd
}

func listCmd(plural string, bind bindingFunc) *cobra.Command {
	var search string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", plural),
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := OpenSession(c.Context(), c.ErrOrStderr())
			if err != nil {
				return err
			}
			b := bind(s)
			records, err := b.Backend.List(c.Context(), search, limit)
			if err != nil {
				return fmt.Errorf("list %s: %w", plural, err)
			}

			out := c.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "no %s found\n", plural)
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "  %s  %s\n", b.Kind.Fields.IDOf(r), b.Kind.Fields.DescriptionOf(r))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by search text")
	cmd.Flags().IntVarP(&limit, "max", "m", 50, "maximum number of results")
	return cmd
}

func showCmd(singular string, bind bindingFunc) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("show <%s-id>", singular),
		Short: fmt.Sprintf("Show a %s and its relations", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctrl, err := openController(c, args[0], bind, false)
			if err != nil {
				return err
			}
			if err := ctrl.Load(c.Context()); err != nil {
				return err
			}
			printEntity(c.OutOrStdout(), ctrl.Kind(), ctrl.Snapshot())
			return nil
		},
	}
}

func deleteCmd(singular string, bind bindingFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("delete <%s-id>", singular),
		Short: fmt.Sprintf("Delete a %s", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctrl, err := openController(c, args[0], bind, yes)
			if err != nil {
				return err
			}
			outcome, err := ctrl.Delete(c.Context())
			return report(c.OutOrStdout(), outcome, err, fmt.Sprintf("%s %s deleted", singular, args[0]))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func editCmd(singular string, bind bindingFunc) *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("edit <%s-id> --set field=value...", singular),
		Short: fmt.Sprintf("Edit fields of a %s", singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			values, err := entity.ParseAssignments(assignments)
			if err != nil {
				return err
			}
			s, err := OpenSession(c.Context(), c.ErrOrStderr())
			if err != nil {
				return err
			}
			b := bind(s)
			editor, err := entity.NewFieldEditor(b.Kind, b.Backend, values)
			if err != nil {
				return err
			}
			ctrl := s.Controller(b, args[0], NewTerminalGate(c.InOrStdin(), c.OutOrStdout(), true), nil)
			if err := ctrl.Load(c.Context()); err != nil {
				return err
			}
			outcome, err := ctrl.Edit(c.Context(), editor)
			if err := report(c.OutOrStdout(), outcome, err, fmt.Sprintf("%s %s updated", singular, args[0])); err != nil {
				return err
			}
			printEntity(c.OutOrStdout(), ctrl.Kind(), ctrl.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "field=value to change (repeatable)")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func addRelationCmd(singular, relation string, bind bindingFunc) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("add-%s <%s-id> <%s-id>", relation, singular, relation),
		Short: fmt.Sprintf("Add a %s to a %s", relation, singular),
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctrl, err := openController(c, args[0], bind, false)
			if err != nil {
				return err
			}
			outcome, err := ctrl.AddRelation(c.Context(), args[1])
			return report(c.OutOrStdout(), outcome, err, fmt.Sprintf("%s %s added to %s %s", relation, args[1], singular, args[0]))
		},
	}
}

func removeRelationCmd(singular, relation string, bind bindingFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("remove-%s <%s-id> <%s-id>", relation, singular, relation),
		Short: fmt.Sprintf("Remove a %s from a %s", relation, singular),
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			ctrl, err := openController(c, args[0], bind, yes)
			if err != nil {
				return err
			}
			if err := ctrl.Load(c.Context()); err != nil {
				return err
			}
			outcome, err := ctrl.RemoveRelation(c.Context(), args[1])
			if err := report(c.OutOrStdout(), outcome, err, fmt.Sprintf("%s %s removed from %s %s", relation, args[1], singular, args[0])); err != nil {
				return err
			}
			printRelations(c.OutOrStdout(), ctrl.Kind(), ctrl.Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func openController(c *cobra.Command, id string, bind bindingFunc, yes bool) (*entity.Controller, error) {
	s, err := OpenSession(c.Context(), c.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	gate := NewTerminalGate(c.InOrStdin(), c.OutOrStdout(), yes)
	nav := entity.NavigatorFunc(func() {
		s.Log.WithFields(logrus.Fields{"id": id}).Debug("entity gone, nothing to return to")
	})
	return s.Controller(bind(s), id, gate, nav), nil
}

// report turns an action result into CLI output. Applied actions whose
// follow-up refresh failed still report the refresh error.
func report(out io.Writer, outcome entity.Outcome, err error, success string) error {
	switch outcome {
	case entity.Cancelled:
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "cancelled")
		return nil
	case entity.Applied:
		fmt.Fprintln(out, success)
		return err
	default:
		if err == nil {
			err = fmt.Errorf("action failed")
		}
		return err
	}
}

func printEntity(out io.Writer, kind entity.Kind, snap entity.Snapshot) {
	fmt.Fprintf(out, "%s %s\n", kind.Name, snap.Entity.Description)
	width := 0
	for _, f := range snap.Entity.Fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}
	for _, f := range snap.Entity.Fields {
		fmt.Fprintf(out, "  %-*s  %s\n", width, f.Name, f.Value)
	}
	printRelations(out, kind, snap)
}

func printRelations(out io.Writer, kind entity.Kind, snap entity.Snapshot) {
	rels := snap.Relations()
	plural := strings.ToLower(kind.RelationName) + "s"
	fmt.Fprintf(out, "%s:\n", strings.ToUpper(plural[:1])+plural[1:])
	if len(rels) == 0 {
		fmt.Fprintf(out, "  No %s\n", plural)
		return
	}
	for _, r := range rels {
		fmt.Fprintf(out, "  %s  %s\n", r.ID, r.Description)
	}
}
