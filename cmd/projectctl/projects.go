package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/client"
	"github.com/sumire/projectmanager/internal/domain"
)

const (
	msgGetFailed    = "Failed to fetch project"
	msgUpdateFailed = "Failed to update project"
	msgCountFailed  = "Failed to fetch project count"
)

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := opts.session.Client().ListProjects(cmd.Context())
			if err != nil {
				return opts.failure("list projects failed", err, client.MsgFetchFailed)
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), projects)
			}
			return writeProjects(cmd.OutOrStdout(), projects)
		},
	}
}

func newCountCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := opts.session.Client().CountProjects(cmd.Context())
			if err != nil {
				return opts.failure("count projects failed", err, msgCountFailed)
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"count": count})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Total Projects: %d\n", count)
			return err
		},
	}
}

func newGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			project, err := opts.session.Client().GetProject(cmd.Context(), id)
			if err != nil {
				return opts.failure("get project failed", err, msgGetFailed)
			}
			return opts.printProject(cmd.OutOrStdout(), project)
		},
	}
}

func newAddCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a project",
		Example: `  projectctl add "Website redesign"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := opts.session.Client().CreateProject(cmd.Context(), args[0])
			if err != nil {
				return opts.failure("add project failed", err, client.MsgAddFailed)
			}
			return opts.printProject(cmd.OutOrStdout(), project)
		},
	}
}

func newUpdateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			project, err := opts.session.Client().UpdateProject(cmd.Context(), id, args[1])
			if err != nil {
				return opts.failure("update project failed", err, msgUpdateFailed)
			}
			return opts.printProject(cmd.OutOrStdout(), project)
		},
	}
}

func newDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			project, err := opts.session.Client().DeleteProject(cmd.Context(), id)
			if err != nil {
				return opts.failure("delete project failed", err, client.MsgDeleteFailed)
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), project)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d (%s)\n", project.ID, project.Name)
			return err
		},
	}
}

// failure logs err in full and returns the message meant for the user.
func (o *cliOptions) failure(msg string, err error, fallback string) error {
	o.logger.Error(msg, zap.String("server", o.server), zap.Error(err))
	return errors.New(client.UserMessage(err, fallback))
}

func (o *cliOptions) printProject(w io.Writer, p *domain.Project) error {
	if o.jsonOut {
		return writeJSON(w, p)
	}
	return writeProjects(w, []domain.Project{*p})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return id, nil
}

func writeProjects(w io.Writer, projects []domain.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\n", p.ID, p.Name)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
