package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	webhookdomain "channelsync-backend/internal/webhook/domain"
	"channelsync-backend/internal/webhook/repository"
	"channelsync-backend/pkg/fireflies"
)

var (
	ErrEventNotFound    = errors.New("webhook event not found")
	ErrAlreadyProcessed = errors.New("webhook event already processed")
)

// TranscriptFetcher is the slice of the Fireflies client the processor needs.
type TranscriptFetcher interface {
	GetTranscript(ctx context.Context, meetingID string) (*fireflies.Transcript, error)
}

// CompanyNoteCreator posts the derived note to HubSpot when the meeting can
// be tied to a company.
type CompanyNoteCreator interface {
	CreateNote(ctx context.Context, companyID, noteBody string) (string, error)
}

// WebhookUsecase logs inbound webhook deliveries and processes them into
// meeting notes
type WebhookUsecase interface {
	// LogEvent records one delivery, authentic or not, and returns the log row.
	LogEvent(body []byte, signature string, valid bool) (*webhookdomain.FireHookLog, error)
	// ProcessEvent fetches the transcript for a logged event, persists the
	// derived MeetingNote and marks the event processed.
	ProcessEvent(ctx context.Context, logID string) (*webhookdomain.MeetingNote, error)
	ListEvents(limit, offset int) ([]*webhookdomain.FireHookLog, int64, error)
}

// firefliesPayload is the subset of the webhook body we care about.
type firefliesPayload struct {
	MeetingID string `json:"meetingId"`
	EventType string `json:"eventType"`
	ClientRef struct {
		CompanyID string `json:"companyId"`
	} `json:"clientReferenceId"`
}

// webhookUsecase implements WebhookUsecase interface
type webhookUsecase struct {
	webhookRepo repository.WebhookRepository
	fireflies   TranscriptFetcher
	hubspot     CompanyNoteCreator
}

// NewWebhookUsecase creates a new instance of webhookUsecase
func NewWebhookUsecase(
	webhookRepo repository.WebhookRepository,
	firefliesClient TranscriptFetcher,
	hubspotClient CompanyNoteCreator,
) WebhookUsecase {
	return &webhookUsecase{
		webhookRepo: webhookRepo,
		fireflies:   firefliesClient,
		hubspot:     hubspotClient,
	}
}

func (u *webhookUsecase) LogEvent(body []byte, signature string, valid bool) (*webhookdomain.FireHookLog, error) {
	var payload firefliesPayload
	// A body that fails to parse is still logged; the fields stay empty
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[Webhook] Unparseable payload: %v", err)
	}

	entry := &webhookdomain.FireHookLog{
		EventType:      payload.EventType,
		MeetingID:      payload.MeetingID,
		Signature:      signature,
		SignatureValid: valid,
		Payload:        string(body),
	}
	if err := u.webhookRepo.CreateLog(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (u *webhookUsecase) ProcessEvent(ctx context.Context, logID string) (*webhookdomain.MeetingNote, error) {
	entry, err := u.webhookRepo.FindLogByID(logID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEventNotFound
	}
	if entry.Processed {
		return nil, ErrAlreadyProcessed
	}
	if entry.MeetingID == "" {
		return nil, fmt.Errorf("event %s carries no meeting id", logID)
	}
	if u.fireflies == nil {
		return nil, fmt.Errorf("fireflies is not configured")
	}

	transcript, err := u.fireflies.GetTranscript(ctx, entry.MeetingID)
	if err != nil {
		return nil, err
	}

	note := &webhookdomain.MeetingNote{
		FireHookLogID: entry.ID,
		MeetingID:     entry.MeetingID,
		Title:         transcript.Title,
		Summary:       transcript.Overview,
	}

	// When the payload references a company, mirror the note into HubSpot.
	// A HubSpot failure does not lose the derived content.
	var payload firefliesPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err == nil && payload.ClientRef.CompanyID != "" && u.hubspot != nil {
		body := fmt.Sprintf("Meeting: %s\n\n%s", transcript.Title, transcript.Overview)
		noteID, err := u.hubspot.CreateNote(ctx, payload.ClientRef.CompanyID, body)
		if err != nil {
			log.Printf("[Webhook] Failed to mirror meeting note to hubspot: %v", err)
		} else {
			note.HubspotNoteID = noteID
		}
	}

	if err := u.webhookRepo.UpsertNote(note); err != nil {
		return nil, err
	}

	entry.Processed = true
	if err := u.webhookRepo.UpdateLog(entry); err != nil {
		return nil, err
	}

	return note, nil
}

func (u *webhookUsecase) ListEvents(limit, offset int) ([]*webhookdomain.FireHookLog, int64, error) {
	return u.webhookRepo.FindAllLogs(limit, offset)
}
