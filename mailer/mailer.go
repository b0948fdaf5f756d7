// Package mailer delivers communication records to member inboxes
// through SendGrid. Delivery is best effort: a failed send is logged and
// reported back, never fatal to the record that triggered it.
package mailer

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/models"
)

// Mailer sends communications via SendGrid. A Mailer with an empty API
// key is disabled; Dispatch becomes a no-op that reports zero sends.
type Mailer struct {
	apiKey   string
	from     string
	fromName string
}

// New returns a mailer for the given sender identity
func New(apiKey, from, fromName string) *Mailer {
	return &Mailer{apiKey: apiKey, from: from, fromName: fromName}
}

// Enabled reports whether a SendGrid key is configured
func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

// Dispatch emails the communication to every resolved recipient and
// returns how many sends succeeded.
func (m *Mailer) Dispatch(comm models.Communication, members []models.Member) (sent int, err error) {
	if !m.Enabled() {
		return 0, nil
	}

	recipients := ResolveRecipients(comm.Recipients, members)
	if len(recipients) == 0 {
		zap.S().Infow("no recipients resolved for communication",
			"communicationId", comm.ID,
			"recipients", comm.Recipients,
		)
		return 0, nil
	}

	subject := fmt.Sprintf("[%s] %s", comm.Type, comm.Title)
	var lastErr error
	for _, member := range recipients {
		if sendErr := m.send(member.Email, member.Name, subject, comm.Content); sendErr != nil {
			zap.S().Errorw("failed to send communication email",
				"communicationId", comm.ID,
				"memberId", member.ID,
				"error", sendErr,
			)
			lastErr = sendErr
			continue
		}
		sent++
	}
	return sent, lastErr
}

func (m *Mailer) send(toEmail, toName, subject, content string) error {
	from := mail.NewEmail(m.fromName, m.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, "")
	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// ResolveRecipients filters the member list down to the active members a
// recipient group addresses. Members without an email address are
// skipped; the stored recipients label is informational for them.
func ResolveRecipients(group models.RecipientGroup, members []models.Member) []models.Member {
	var out []models.Member
	for _, m := range members {
		if m.Status != models.MemberStatusActive || m.Email == "" {
			continue
		}
		if inGroup(group, m) {
			out = append(out, m)
		}
	}
	return out
}

func inGroup(group models.RecipientGroup, m models.Member) bool {
	ministry := strings.ToLower(m.Ministry)
	switch group {
	case models.RecipientGroupAllMembers:
		return true
	case models.RecipientGroupLeadership:
		return strings.Contains(ministry, "leader") || strings.Contains(ministry, "elder")
	case models.RecipientGroupYouthGroup:
		return strings.Contains(ministry, "youth")
	case models.RecipientGroupMinistryTeams:
		return ministry != ""
	}
	return false
}
