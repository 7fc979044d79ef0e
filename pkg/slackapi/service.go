package slackapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// Channel is a Slack channel reference as seen by the rest of the app.
type Channel struct {
	ID   string
	Name string
}

// WorkspaceUser is a workspace member usable for the bulk user sync.
type WorkspaceUser struct {
	ID        string
	FirstName string
	LastName  string
	RealName  string
}

// Message is one conversation message with the raw author id.
type Message struct {
	UserID    string
	Text      string
	Timestamp string
}

// MissingScopeError reports that the bot token lacks an OAuth scope.
type MissingScopeError struct {
	Needed   string
	Provided string
}

func (e *MissingScopeError) Error() string {
	return fmt.Sprintf("slack token is missing the %q scope (granted: %s); re-install the app with the required scopes", e.Needed, e.Provided)
}

// Service wraps the Slack Web API for channel listing, message history and
// workspace user listing.
type Service struct {
	api *slack.Client
}

// NewService creates a Slack service with the provided bot token.
func NewService(token string) *Service {
	return &Service{api: slack.New(token)}
}

// NewServiceWithAPIURL is used by tests to point at a fake Slack server.
// The URL must end with a trailing slash.
func NewServiceWithAPIURL(token, apiURL string) *Service {
	return &Service{api: slack.New(token, slack.OptionAPIURL(apiURL))}
}

// translateErr converts slack-go errors into domain error shapes. The Web API
// reports missing scopes as a SlackErrorResponse with "missing_scope".
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) && slackErr.Err == "missing_scope" {
		needed := "channels:read, channels:history, users:read"
		if len(slackErr.ResponseMetadata.Messages) > 0 {
			needed = slackErr.ResponseMetadata.Messages[0]
		}
		return &MissingScopeError{
			Needed:   needed,
			Provided: strings.Join(slackErr.ResponseMetadata.Warnings, ","),
		}
	}
	if strings.Contains(err.Error(), "missing_scope") {
		return &MissingScopeError{Needed: "channels:read, channels:history, users:read", Provided: "unknown"}
	}
	return err
}

// ListChannels retrieves all non-archived public channels, following the
// pagination cursor until exhausted.
func (s *Service) ListChannels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	var cursor string

	for {
		params := &slack.GetConversationsParameters{
			Types:           []string{"public_channel"},
			ExcludeArchived: true,
			Limit:           200,
			Cursor:          cursor,
		}

		convs, nextCursor, err := s.api.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, translateErr(err)
		}

		for _, conv := range convs {
			channels = append(channels, Channel{
				ID:   conv.ID,
				Name: conv.Name,
			})
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return channels, nil
}

// FetchRecentMessages returns the messages posted in a channel within the
// last `days` days, oldest first. Thread broadcasts appear once.
func (s *Service) FetchRecentMessages(ctx context.Context, channelID string, days int) ([]Message, error) {
	oldest := time.Now().AddDate(0, 0, -days)

	var messages []Message
	cursor := ""
	for {
		params := &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Oldest:    fmt.Sprintf("%d.000000", oldest.Unix()),
			Limit:     200,
			Cursor:    cursor,
		}

		resp, err := s.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, translateErr(err)
		}

		for _, msg := range resp.Messages {
			// Skip channel-join noise and other subtyped events
			if msg.SubType != "" {
				continue
			}
			messages = append(messages, Message{
				UserID:    msg.User,
				Text:      msg.Text,
				Timestamp: msg.Timestamp,
			})
		}

		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			break
		}
		cursor = resp.ResponseMetaData.NextCursor
	}

	// History comes back newest first; callers want chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// ListWorkspaceUsers retrieves all active human members of the workspace.
func (s *Service) ListWorkspaceUsers(ctx context.Context) ([]WorkspaceUser, error) {
	users, err := s.api.GetUsersContext(ctx)
	if err != nil {
		return nil, translateErr(err)
	}

	result := make([]WorkspaceUser, 0, len(users))
	for _, u := range users {
		if u.Deleted || u.IsBot || u.ID == "USLACKBOT" {
			continue
		}

		first := u.Profile.FirstName
		last := u.Profile.LastName
		if first == "" && last == "" {
			first = u.RealName
		}

		result = append(result, WorkspaceUser{
			ID:        u.ID,
			FirstName: first,
			LastName:  last,
			RealName:  u.RealName,
		})
	}

	return result, nil
}
