package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return storage.NewStore(kv)
}

func TestNewStoreSeedsEmptyCollections(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, models.SeedMembers(), s.Members())
	assert.Equal(t, models.SeedEvents(), s.Events())
	assert.Equal(t, models.SeedTithes(), s.Tithes())
	assert.Equal(t, models.SeedDues(), s.DuesRecords())
	assert.Equal(t, models.SeedCommunications(), s.Communications())
}

func TestInsertMemberAssignsUniqueAscendingIdentity(t *testing.T) {
	s := newTestStore(t)

	a := s.InsertMember(models.Member{Name: "Kwame Mensah", Status: models.MemberStatusActive})
	b := s.InsertMember(models.Member{Name: "Ama Serwaa", Status: models.MemberStatusActive})

	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	// insertion order is display order
	members := s.Members()
	assert.Equal(t, "Kwame Mensah", members[len(members)-2].Name)
	assert.Equal(t, "Ama Serwaa", members[len(members)-1].Name)
}

func TestUpdateMemberPreservesIdentityAndOrder(t *testing.T) {
	s := newTestStore(t)
	m := s.InsertMember(models.Member{Name: "Kwame Mensah", Status: models.MemberStatusActive})
	before := s.Members()

	m.Name = "Kwame A. Mensah"
	m.Status = models.MemberStatusInactive
	err := s.UpdateMember(m)
	assert.NoError(t, err)

	after := s.Members()
	assert.Equal(t, len(before), len(after))
	got, err := s.MemberByID(m.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Kwame A. Mensah", got.Name)
	assert.Equal(t, models.MemberStatusInactive, got.Status)
	// still in the same slot
	assert.Equal(t, m.ID, after[len(after)-1].ID)
}

func TestUpdateMemberUnknownIdentity(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateMember(models.Member{ID: 99999, Name: "Nobody"})

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteMemberRemovesExactlyOne(t *testing.T) {
	s := newTestStore(t)
	m := s.InsertMember(models.Member{Name: "Kwame Mensah", Status: models.MemberStatusActive})
	before := s.Members()

	err := s.DeleteMember(m.ID)
	assert.NoError(t, err)

	after := s.Members()
	assert.Equal(t, len(before)-1, len(after))
	_, err = s.MemberByID(m.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	for i, rest := range after {
		assert.Equal(t, before[i].ID, rest.ID)
	}
}

func TestDeleteMemberUnknownIdentity(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteMember(99999)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchMembersMatchesNameOrResidence(t *testing.T) {
	s := newTestStore(t)

	byName := s.SearchMembers("john s")
	assert.Len(t, byName, 1)
	assert.Equal(t, "John Smith", byName[0].Name)

	byResidence := s.SearchMembers("tema")
	assert.Len(t, byResidence, 1)
	assert.Equal(t, "Sarah Johnson", byResidence[0].Name)
}

func TestSearchMembersCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	lower := s.SearchMembers("smith")
	upper := s.SearchMembers("SMITH")

	assert.Equal(t, lower, upper)
	assert.Len(t, lower, 1)
}

func TestSearchMembersEmptyTermReturnsAll(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, s.Members(), s.SearchMembers(""))
}

func TestTithesTotalSumsEveryRecord(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, 350.0, s.TithesTotal())

	s.InsertTithe(models.Tithe{Donor: "Kwame Mensah", Amount: 75.5, Date: "2025-08-20", Method: models.TitheMethodMobileMoney})
	assert.Equal(t, 425.5, s.TithesTotal())
}

func TestSetDuesMonthLeavesOtherMonthsUntouched(t *testing.T) {
	s := newTestStore(t)

	err := s.SetDuesMonth(1, 2025, "sep", 50)
	assert.NoError(t, err)

	record, found := s.DuesByMemberYear(1, 2025)
	assert.True(t, found)
	assert.Equal(t, 50.0, record.Months["sep"])
	assert.Equal(t, 50.0, record.Months["aug"])
	assert.Equal(t, 0.0, record.Months["dec"])
}

func TestSetDuesMonthUnknownPair(t *testing.T) {
	s := newTestStore(t)

	err := s.SetDuesMonth(1, 2019, "jan", 50)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDuesRecordsReturnsCopies(t *testing.T) {
	s := newTestStore(t)

	records := s.DuesRecords()
	records[0].Months["jan"] = 999

	fresh, found := s.DuesByMemberYear(records[0].MemberID, records[0].Year)
	assert.True(t, found)
	assert.Equal(t, 50.0, fresh.Months["jan"])
}

func TestStorePersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	kv, err := storage.NewFileKV(dir)
	assert.NoError(t, err)
	first := storage.NewStore(kv)
	inserted := first.InsertMember(models.Member{Name: "Kwame Mensah", Status: models.MemberStatusActive})

	kv, err = storage.NewFileKV(dir)
	assert.NoError(t, err)
	second := storage.NewStore(kv)
	got, err := second.MemberByID(inserted.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Kwame Mensah", got.Name)
}
