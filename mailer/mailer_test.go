package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanaopoku/church-admin-api/mailer"
	"github.com/nanaopoku/church-admin-api/models"
)

func testMembers() []models.Member {
	return []models.Member{
		{ID: 1, Name: "Kwame Mensah", Email: "kwame@example.com", Ministry: "Youth Leaders", Status: models.MemberStatusActive},
		{ID: 2, Name: "Ama Serwaa", Email: "ama@example.com", Ministry: "Choir", Status: models.MemberStatusActive},
		{ID: 3, Name: "Yaw Darko", Email: "yaw@example.com", Ministry: "Elders Council", Status: models.MemberStatusActive},
		{ID: 4, Name: "Akosua Boateng", Email: "", Ministry: "Choir", Status: models.MemberStatusActive},
		{ID: 5, Name: "Kofi Owusu", Email: "kofi@example.com", Ministry: "", Status: models.MemberStatusActive},
		{ID: 6, Name: "Esi Appiah", Email: "esi@example.com", Ministry: "Youth Band", Status: models.MemberStatusInactive},
	}
}

func names(members []models.Member) []string {
	var out []string
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func TestResolveRecipientsAllMembers(t *testing.T) {
	got := mailer.ResolveRecipients(models.RecipientGroupAllMembers, testMembers())

	// active with an email address; no-email and inactive members drop out
	assert.Equal(t, []string{"Kwame Mensah", "Ama Serwaa", "Yaw Darko", "Kofi Owusu"}, names(got))
}

func TestResolveRecipientsLeadership(t *testing.T) {
	got := mailer.ResolveRecipients(models.RecipientGroupLeadership, testMembers())

	assert.Equal(t, []string{"Kwame Mensah", "Yaw Darko"}, names(got))
}

func TestResolveRecipientsYouthGroup(t *testing.T) {
	got := mailer.ResolveRecipients(models.RecipientGroupYouthGroup, testMembers())

	// the inactive youth band member is excluded
	assert.Equal(t, []string{"Kwame Mensah"}, names(got))
}

func TestResolveRecipientsMinistryTeams(t *testing.T) {
	got := mailer.ResolveRecipients(models.RecipientGroupMinistryTeams, testMembers())

	assert.Equal(t, []string{"Kwame Mensah", "Ama Serwaa", "Yaw Darko"}, names(got))
}

func TestDispatchDisabledMailerIsNoOp(t *testing.T) {
	m := mailer.New("", "noreply@example.com", "Church Admin")
	assert.False(t, m.Enabled())

	sent, err := m.Dispatch(models.Communication{
		Title:      "Notice",
		Recipients: models.RecipientGroupAllMembers,
	}, testMembers())

	assert.NoError(t, err)
	assert.Zero(t, sent)
}

func TestEnabledWithKey(t *testing.T) {
	m := mailer.New("SG.fake-key", "noreply@example.com", "Church Admin")

	assert.True(t, m.Enabled())
}
