package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/repository"
	"fitbuilder/server/internal/routine"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var errDeleteNotConfirmed = errors.New("deleting a routine cannot be undone; pass --yes to confirm")

// newRoutinesCmd inspects the guest routine store the server is configured with.
func (a *app) newRoutinesCmd() *cobra.Command {
	routinesCmd := &cobra.Command{
		Use:   "routines",
		Short: "List, show or delete routines in the configured guest store",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved routines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			c := &clients{cfg: a.cfg}
			defer func() { err = multierr.Append(err, c.closers.Close()) }()

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			routines, err := store.LoadAll(cmd.Context(), "")
			if err != nil {
				return err
			}
			printSummaries(cmd.OutOrStdout(), routine.SummarizeAll(routines, routine.DefaultPreviewSize))
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one routine with all its exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			c := &clients{cfg: a.cfg}
			defer func() { err = multierr.Append(err, c.closers.Close()) }()

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			r, err := store.GetByID(cmd.Context(), "", args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("routine %s not found", args[0])
			}
			if err != nil {
				return err
			}
			printRoutine(cmd.OutOrStdout(), r)
			return nil
		},
	}

	var confirmed bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a routine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !confirmed {
				return errDeleteNotConfirmed
			}
			c := &clients{cfg: a.cfg}
			defer func() { err = multierr.Append(err, c.closers.Close()) }()

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			err = store.DeleteByID(cmd.Context(), "", args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("routine %s not found", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted routine %s\n", args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")

	routinesCmd.AddCommand(listCmd, showCmd, deleteCmd)
	return routinesCmd
}

func printSummaries(w io.Writer, summaries []routine.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "no saved routines")
		return
	}
	for _, s := range summaries {
		names := make([]string, 0, len(s.Preview))
		for _, p := range s.Preview {
			names = append(names, p.Name)
		}
		line := strings.Join(names, ", ")
		if s.More > 0 {
			line += fmt.Sprintf(" +%d more", s.More)
		}
		fmt.Fprintf(w, "%s\t%s\t%d exercises\t%s\t%s\n",
			s.ID, s.Name, s.EntryCount, s.CreatedAt.Format("2006-01-02"), line)
	}
}

func printRoutine(w io.Writer, r *domain.Routine) {
	fmt.Fprintf(w, "%s (%s), created %s\n", r.Name, r.ID, r.CreatedAt.Format("2006-01-02 15:04"))
	for i, e := range r.Entries {
		fmt.Fprintf(w, "%d. %s [%s]\tsets %s\treps %s\trest %s\n",
			i+1, e.Exercise.Name, e.Exercise.MuscleGroup, e.Sets, e.Reps, e.RestTime)
		if e.Notes != "" {
			fmt.Fprintf(w, "   %s\n", e.Notes)
		}
	}
}
