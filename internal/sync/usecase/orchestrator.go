package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	mappingdomain "channelsync-backend/internal/mapping/domain"
	"channelsync-backend/pkg/slackapi"
)

// Per-channel result statuses surfaced to the caller.
const (
	StatusSynced       = "Synced"
	StatusFailed       = "Failed"
	StatusTestComplete = "Test Complete"
	StatusNoMessages   = "No messages to sync"
	StatusNoTestMsgs   = "No messages to test"
)

// ChannelResult is the outcome of syncing one channel of a mapping.
type ChannelResult struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channelId"`
	Status      string `json:"status"`
	Summary     string `json:"summary,omitempty"`
	Destination string `json:"destination,omitempty"`
	Error       string `json:"error,omitempty"`
}

// MappingOutcome aggregates the channel results of one mapping.
type MappingOutcome struct {
	MappingID string
	Results   []ChannelResult
	// Succeeded is true when at least one channel synced; per-channel
	// failures do not fail the mapping on their own.
	Succeeded bool
	// Skipped is true when every channel had no messages and none failed.
	Skipped bool
	// ErrorMessage holds the first channel-level error, for the audit trail.
	ErrorMessage string
}

// MessageFetcher is the slice of the Slack adapter the orchestrator needs.
type MessageFetcher interface {
	FetchRecentMessages(ctx context.Context, channelID string, days int) ([]slackapi.Message, error)
}

// NoteCreator is the slice of the HubSpot client the orchestrator needs.
type NoteCreator interface {
	CreateNote(ctx context.Context, companyID, noteBody string) (string, error)
}

// ConversationSummarizer matches ai.Summarizer.
type ConversationSummarizer interface {
	SummarizeConversation(ctx context.Context, messages, instruction, channelName string) (string, error)
}

// Orchestrator processes mappings one at a time: fetch messages per channel,
// summarize, post the summary as a HubSpot note. Adapter failures are captured
// per channel and never abort sibling channels.
type Orchestrator struct {
	slack      MessageFetcher
	hubspot    NoteCreator
	summarizer ConversationSummarizer
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(slack MessageFetcher, hubspot NoteCreator, summarizer ConversationSummarizer) *Orchestrator {
	return &Orchestrator{
		slack:      slack,
		hubspot:    hubspot,
		summarizer: summarizer,
	}
}

// formatMessages renders the conversation with user ids replaced by display
// names where known. The same rendering doubles as the summarizer fallback,
// so it must be deterministic.
func formatMessages(messages []slackapi.Message, userNames map[string]string) string {
	var b strings.Builder
	for _, msg := range messages {
		name := userNames[msg.UserID]
		if name == "" {
			name = msg.UserID
		}
		text := msg.Text
		// Inline mentions keep their raw <@U...> form; substitute those too
		for id, display := range userNames {
			text = strings.ReplaceAll(text, "<@"+id+">", "@"+display)
		}
		fmt.Fprintf(&b, "%s: %s\n", name, text)
	}
	return b.String()
}

// ProcessMapping syncs every channel of one mapping. In test mode the HubSpot
// write is suppressed and results are marked "Test Complete".
func (o *Orchestrator) ProcessMapping(
	ctx context.Context,
	mapping *mappingdomain.Mapping,
	instruction string,
	userNames map[string]string,
	testMode bool,
) MappingOutcome {
	outcome := MappingOutcome{MappingID: mapping.ID}

	companyName := mapping.HubspotCompanyID
	companyExternalID := ""
	if mapping.Company != nil {
		companyExternalID = mapping.Company.CompanyID
		if mapping.Company.Name != "" {
			companyName = mapping.Company.Name
		}
	}

	sawMessages := false
	for _, join := range mapping.Channels {
		channelID := join.SlackChannelID
		externalID := ""
		channelName := ""
		if join.SlackChannel != nil {
			externalID = join.SlackChannel.ChannelID
			channelName = join.SlackChannel.Name
		}
		if channelName == "" {
			channelName = externalID
		}

		result := ChannelResult{ID: channelID, ChannelID: externalID}

		if o.slack == nil {
			result.Status = StatusFailed
			result.Error = "slack client not configured"
			if outcome.ErrorMessage == "" {
				outcome.ErrorMessage = result.Error
			}
			outcome.Results = append(outcome.Results, result)
			continue
		}

		messages, err := o.slack.FetchRecentMessages(ctx, externalID, mapping.Cadence.LookbackDays())
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			if outcome.ErrorMessage == "" {
				outcome.ErrorMessage = err.Error()
			}
			outcome.Results = append(outcome.Results, result)
			continue
		}

		if len(messages) == 0 {
			if testMode {
				result.Status = StatusNoTestMsgs
			} else {
				result.Status = StatusNoMessages
			}
			outcome.Results = append(outcome.Results, result)
			continue
		}
		sawMessages = true

		conversation := formatMessages(messages, userNames)

		summary := ""
		err = fmt.Errorf("summarizer not configured")
		if o.summarizer != nil {
			summary, err = o.summarizer.SummarizeConversation(ctx, conversation, instruction, channelName)
		}
		if err != nil {
			// Never abort the mapping on summarizer failure: fall back
			// to the deterministic plain listing of the raw messages.
			log.Printf("[Sync] Summarizer failed for channel %s, using raw listing: %v", externalID, err)
			summary = fmt.Sprintf("Slack messages from #%s (last %d day(s)):\n%s",
				channelName, mapping.Cadence.LookbackDays(), conversation)
		}
		result.Summary = summary

		if testMode {
			result.Status = StatusTestComplete
			outcome.Results = append(outcome.Results, result)
			outcome.Succeeded = true
			continue
		}

		noteID := ""
		err = fmt.Errorf("hubspot client not configured")
		if o.hubspot != nil {
			noteID, err = o.hubspot.CreateNote(ctx, companyExternalID, summary)
		}
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			if outcome.ErrorMessage == "" {
				outcome.ErrorMessage = err.Error()
			}
			outcome.Results = append(outcome.Results, result)
			continue
		}

		result.Status = StatusSynced
		result.Destination = fmt.Sprintf("%s (note %s)", companyName, noteID)
		outcome.Results = append(outcome.Results, result)
		outcome.Succeeded = true
	}

	outcome.Skipped = !sawMessages && outcome.ErrorMessage == ""
	return outcome
}
