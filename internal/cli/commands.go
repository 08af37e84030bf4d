package cli

import (
	"fmt"

	"issueboard/internal/api"
	"issueboard/internal/dnd"
	"issueboard/internal/render"

	"github.com/spf13/cobra"
)

func (a *app) registerCmd() *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client().Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var req api.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Print a token for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client().Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the account the token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client().Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s <%s> %s\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			a.printBoard(store, render.View{})
			return nil
		},
	}
}

func (a *app) dragCmd() *cobra.Command {
	var (
		hintType   string
		hintColumn int64
	)
	cmd := &cobra.Command{
		Use:   "drag ISSUE_ID TARGET",
		Short: "Drag an issue onto a column or another issue",
		Long: "Drag an issue and drop it on TARGET, which may be a column ID or an issue ID.\n" +
			"Dropping on an issue moves the dragged issue into that issue's column.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueID, err := parseID(args[0], "issue")
			if err != nil {
				return err
			}
			target := dnd.Target{ID: args[1]}
			if hintType != "" || hintColumn != 0 {
				target.Hint = &dnd.Hint{Type: dnd.HintType(hintType), ColumnID: hintColumn}
			}

			_, store, c, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			engine := dnd.NewEngine(store, c, a.logger)
			controller := dnd.NewController(store, engine, a.logger)

			session := controller.Session()
			if err := session.PointerDown(issueID, dnd.Pointer, dnd.Point{}); err != nil {
				return err
			}
			session.PointerMove(dnd.Point{X: dnd.DefaultActivation.Distance})
			if session.State() != dnd.Dragging {
				session.Cancel()
				return fmt.Errorf("issue %d is not on the board", issueID)
			}
			session.Over(&target)
			a.printBoard(store, render.View{DraggedIssueID: issueID, OverID: target.ID})

			_, move := controller.Release(cmd.Context())
			switch {
			case move == nil:
				fmt.Fprintln(a.out, "No move: the drop target is the issue's own column or could not be resolved.")
			case move.Err != nil:
				fmt.Fprintf(a.out, "Move %s: %v\n", move.Outcome, move.Err)
			default:
				fmt.Fprintf(a.out, "Move %s.\n", move.Outcome)
			}
			a.printBoard(store, render.View{})
			return nil
		},
	}
	cmd.Flags().StringVar(&hintType, "hint-type", "", `Declared target type ("column" or "issue")`)
	cmd.Flags().Int64Var(&hintColumn, "hint-column", 0, "Column ID carried by the drop target")
	return cmd
}

func (a *app) columnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Add, rename or delete columns",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Append a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			column, err := actions.AddColumn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created column #%d %q\n", column.ID, column.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			column, err := actions.RenameColumn(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Renamed column #%d to %q\n", column.ID, column.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a column and every issue in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := actions.DeleteColumn(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted column #%d and %d issue(s)\n", id, resp.DeletedIssues)
			return nil
		},
	})

	return cmd
}

func (a *app) issueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Add, edit or delete issues",
	}

	var addDescription string
	add := &cobra.Command{
		Use:   "add COLUMN_ID TITLE",
		Short: "Add an issue to the end of a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, err := parseID(args[0], "column")
			if err != nil {
				return err
			}
			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			var description *string
			if cmd.Flags().Changed("description") {
				description = &addDescription
			}
			issue, err := actions.AddIssue(cmd.Context(), columnID, args[1], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created issue #%d in column #%d\n", issue.ID, issue.ColumnID)
			return nil
		},
	}
	add.Flags().StringVar(&addDescription, "description", "", "Issue description")
	cmd.AddCommand(add)

	var (
		editTitle       string
		editDescription string
		editColumn      int64
	)
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an issue's title, description or column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "issue")
			if err != nil {
				return err
			}
			var req api.UpdateIssueRequest
			if cmd.Flags().Changed("title") {
				req.Title = &editTitle
			}
			if cmd.Flags().Changed("description") {
				req.Description = &editDescription
			}
			if cmd.Flags().Changed("column") {
				req.ColumnID = &editColumn
			}

			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			issue, err := actions.EditIssue(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated issue #%d %q\n", issue.ID, issue.Title)
			return nil
		},
	}
	edit.Flags().StringVar(&editTitle, "title", "", "New title")
	edit.Flags().StringVar(&editDescription, "description", "", "New description")
	edit.Flags().Int64Var(&editColumn, "column", 0, "Move to this column")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "issue")
			if err != nil {
				return err
			}
			actions, _, _, err := a.loadBoard(cmd.Context())
			if err != nil {
				return err
			}
			if err := actions.DeleteIssue(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted issue #%d\n", id)
			return nil
		},
	})

	return cmd
}
