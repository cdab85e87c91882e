package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase"
)

// newCommentCommand creates the comment command with its subcommands.
func newCommentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage issue comments",
	}

	cmd.AddCommand(
		newCommentAddCommand(c),
		newCommentDeleteCommand(c),
		newCommentListCommand(c),
	)

	return cmd
}

func newCommentAddCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [key] [message]",
		Short: "Add a comment to an issue",
		Long: `Add a comment to an issue.

Without a message, $EDITOR is opened with a draft headed by the issue key
and its cached summary. A message of "-" is read from standard input.

Examples:
  # Comment on the current branch's issue in the editor
  jiractl comment add

  # Comment directly
  jiractl comment add ABC-1 "Deployed to staging"

  # Comment from a file
  jiractl comment add ABC-1 - < notes.md`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}

			var message string
			switch {
			case len(args) == 2 && args[1] == "-":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = string(data)
			case len(args) == 2:
				message = args[1]
			default:
				header := domain.CommentDraftHeader(key, usecase.SummaryOf(c.Cache, key))
				message, err = draftInEditor(header)
				if err != nil {
					return err
				}
			}

			out, err := c.AddCommentUseCase().Execute(cmd.Context(), usecase.AddCommentInput{
				Key:     key,
				Message: message,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s to %s\n", out.Comment.ID, key)
			return nil
		},
	}
	return requiresTracker(cmd)
}

func newCommentDeleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [key] <id>",
		Short: "Delete a comment",
		Long:  `Delete a comment by id. Ids are shown by "jiractl comment list".`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[len(args)-1]
			key, err := resolveIssueKey(cmd.Context(), c, args[:len(args)-1])
			if err != nil {
				return err
			}
			if _, err := c.DeleteCommentUseCase().Execute(cmd.Context(), usecase.DeleteCommentInput{
				Key:       key,
				CommentID: id,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %s on %s\n", id, key)
			return nil
		},
	}
	return requiresTracker(cmd)
}

func newCommentListCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [key]",
		Short: "List the comments of an issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := resolveIssueKey(cmd.Context(), c, args)
			if err != nil {
				return err
			}
			out, err := c.ListCommentsUseCase().Execute(cmd.Context(), usecase.ListCommentsInput{Key: key})
			if err != nil {
				return err
			}
			if len(out.Comments) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No comments on %s\n", key)
				return nil
			}
			printComments(cmd.OutOrStdout(), out.Comments, c.Clock.Now())
			return nil
		},
	}
	return requiresTracker(cmd)
}

// printComments prints each comment as a header line followed by its
// indented body.
func printComments(w io.Writer, comments []domain.Comment, now time.Time) {
	for _, comment := range comments {
		_, _ = fmt.Fprintf(w, "  [%s] %s, %s\n", comment.ID, comment.Author.Name(), relTime(comment.Created, now))
		for _, line := range strings.Split(comment.Body.PlainText(), "\n") {
			_, _ = fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
