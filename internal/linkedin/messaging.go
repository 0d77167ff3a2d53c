package linkedin

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

type messageCreate struct {
	Body             string        `json:"body"`
	Attachments      []interface{} `json:"attachments"`
	AttributedBody   attributed    `json:"attributedBody"`
	MediaAttachments []interface{} `json:"mediaAttachments"`
}

type attributed struct {
	Text       string        `json:"text"`
	Attributes []interface{} `json:"attributes"`
}

type conversationCreatePayload struct {
	KeyVersion         string `json:"keyVersion"`
	ConversationCreate struct {
		EventCreate struct {
			Value map[string]messageCreate `json:"value"`
		} `json:"eventCreate"`
		Recipients []string `json:"recipients"`
		Subtype    string   `json:"subtype"`
	} `json:"conversationCreate"`
}

// SendMessage opens a new conversation with the recipients.
func (c *Client) SendMessage(ctx context.Context, recipientIDs []string, body string) error {
	if len(recipientIDs) == 0 {
		return errors.New("linkedin message: no recipients")
	}

	var payload conversationCreatePayload
	payload.KeyVersion = "LEGACY_INBOX"
	payload.ConversationCreate.EventCreate.Value = map[string]messageCreate{
		"com.linkedin.voyager.messaging.create.MessageCreate": {
			Body:             body,
			Attachments:      []interface{}{},
			AttributedBody:   attributed{Text: body, Attributes: []interface{}{}},
			MediaAttachments: []interface{}{},
		},
	}
	payload.ConversationCreate.Recipients = recipientIDs
	payload.ConversationCreate.Subtype = "MEMBER_TO_MEMBER"

	return c.call(ctx, "message", http.MethodPost, "/messaging/conversations?action=create", payload, http.StatusCreated, nil)
}

type invitationPayload struct {
	Invitee struct {
		InviteeUnion struct {
			MemberProfile string `json:"memberProfile"`
		} `json:"inviteeUnion"`
	} `json:"invitee"`
	CustomMessage string `json:"customMessage,omitempty"`
}

// AddConnection sends a connection invitation, with an optional note.
func (c *Client) AddConnection(ctx context.Context, profileID string, message string) error {
	if profileID == "" {
		return errors.New("linkedin connect: empty profile id")
	}

	var payload invitationPayload
	payload.Invitee.InviteeUnion.MemberProfile = "urn:li:fsd_profile:" + urnID(profileID)
	payload.CustomMessage = message

	query := url.Values{
		"action":       {"verifyQuotaAndCreateV2"},
		"decorationId": {"com.linkedin.voyager.dash.deco.relationships.InvitationCreationResultWithInvitee-2"},
	}
	return c.call(ctx, "connect", http.MethodPost, "/voyagerRelationshipsDashMemberRelationships?"+query.Encode(), payload, http.StatusOK, nil)
}
