package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// OpenIssueInput contains the parameters for opening an issue in the browser.
type OpenIssueInput struct {
	Key domain.IssueKey
}

// OpenIssueOutput contains the opened URL.
type OpenIssueOutput struct {
	URL string
}

// OpenIssue is the use case for opening an issue's web page.
type OpenIssue struct {
	executor domain.CommandExecutor
	logger   domain.Logger
	command  func(url string) *domain.ExecCommand
	baseURL  string
}

// NewOpenIssue creates a new OpenIssue use case.
// command builds the opener invocation for a URL.
func NewOpenIssue(executor domain.CommandExecutor, logger domain.Logger, baseURL string, command func(url string) *domain.ExecCommand) *OpenIssue {
	return &OpenIssue{
		executor: executor,
		logger:   logger,
		command:  command,
		baseURL:  baseURL,
	}
}

// Execute opens the browse URL of the issue. Only the server URL is needed,
// not credentials.
func (uc *OpenIssue) Execute(_ context.Context, in OpenIssueInput) (*OpenIssueOutput, error) {
	if uc.baseURL == "" {
		return nil, domain.ErrNotConfigured
	}
	url := domain.BrowseURL(uc.baseURL, in.Key)

	output, err := uc.executor.Execute(uc.command(url))
	if err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return nil, fmt.Errorf("open %s: %w: %s", url, err, msg)
		}
		return nil, fmt.Errorf("open %s: %w", url, err)
	}

	uc.logger.Debug(in.Key, "open", url)
	return &OpenIssueOutput{URL: url}, nil
}
