package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// In-memory stores backing the service tests. They mirror the database
// contracts the services rely on: gorm sentinel errors, unique indexes and
// the max-merge upsert.

// ==================== Users ====================

type fakeUserStore struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserStore) Create(user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) AttachGoogleID(userID uuid.UUID, googleID string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.GoogleID = &googleID
	return nil
}

func (f *fakeUserStore) add(name, email string) *model.User {
	user := &model.User{ID: uuid.New(), Name: name, Email: email}
	f.users[user.ID] = user
	return user
}

// ==================== Steps ====================

type stepsKey struct {
	userID uuid.UUID
	day    time.Time
}

type fakeStepsStore struct {
	records   map[stepsKey]*model.DailyStepRecord
	lastLimit int
}

func newFakeStepsStore() *fakeStepsStore {
	return &fakeStepsStore{records: make(map[stepsKey]*model.DailyStepRecord)}
}

func (f *fakeStepsStore) Upsert(rec *model.DailyStepRecord) error {
	key := stepsKey{rec.UserID, rec.Day.UTC()}
	if existing, ok := f.records[key]; ok {
		// GREATEST(existing, incoming); source and synced_at track the
		// latest sync regardless of which count won.
		if rec.Steps > existing.Steps {
			existing.Steps = rec.Steps
		}
		existing.Source = rec.Source
		existing.SyncedAt = rec.SyncedAt
		return nil
	}
	stored := *rec
	stored.ID = uuid.New()
	f.records[key] = &stored
	return nil
}

func (f *fakeStepsStore) GetForDay(userID uuid.UUID, day time.Time) (*model.DailyStepRecord, error) {
	if rec, ok := f.records[stepsKey{userID, day.UTC()}]; ok {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStepsStore) History(userID uuid.UUID, start, end *time.Time, limit int) ([]model.DailyStepRecord, error) {
	f.lastLimit = limit
	var result []model.DailyStepRecord
	for key, rec := range f.records {
		if key.userID != userID {
			continue
		}
		if start != nil && key.day.Before(*start) {
			continue
		}
		if end != nil && key.day.After(*end) {
			continue
		}
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day.After(result[j].Day) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ==================== Workouts ====================

type fakeWorkoutStore struct {
	entries   []model.WorkoutLogEntry
	lastLimit int
}

func (f *fakeWorkoutStore) Create(entry *model.WorkoutLogEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeWorkoutStore) ListForUser(userID uuid.UUID, limit int) ([]model.WorkoutLogEntry, error) {
	f.lastLimit = limit
	var result []model.WorkoutLogEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.After(result[j].StartTime) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ==================== Communities & Messages ====================

type fakeMessageStore struct {
	messages []model.CommunityMessage
	clock    time.Time
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeMessageStore) Create(msg *model.CommunityMessage) error {
	msg.ID = uuid.New()
	// Monotonic timestamps so ordering assertions are deterministic
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageStore) ListForCommunity(communityID uuid.UUID, limit int, descending bool) ([]model.CommunityMessage, error) {
	var result []model.CommunityMessage
	for _, m := range f.messages {
		if m.CommunityID == communityID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if descending {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeCommunityStore struct {
	communities map[uuid.UUID]*model.Community
	msgs        *fakeMessageStore
}

func newFakeCommunityStore(msgs *fakeMessageStore) *fakeCommunityStore {
	return &fakeCommunityStore{
		communities: make(map[uuid.UUID]*model.Community),
		msgs:        msgs,
	}
}

func (f *fakeCommunityStore) Create(community *model.Community) error {
	if community.JoinCode != nil {
		for _, c := range f.communities {
			if c.JoinCode != nil && *c.JoinCode == *community.JoinCode {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	community.ID = uuid.New()
	community.CreatedAt = time.Now()
	community.UpdatedAt = community.CreatedAt
	for i := range community.Members {
		community.Members[i].ID = uuid.New()
		community.Members[i].CommunityID = community.ID
	}
	f.communities[community.ID] = community
	return nil
}

func (f *fakeCommunityStore) FindByID(id uuid.UUID) (*model.Community, error) {
	if c, ok := f.communities[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommunityStore) FindByJoinCode(code string) (*model.Community, error) {
	for _, c := range f.communities {
		if c.JoinCode != nil && *c.JoinCode == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommunityStore) JoinCodeExists(code string) (bool, error) {
	_, err := f.FindByJoinCode(code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeCommunityStore) ListPublic() ([]model.Community, error) {
	var result []model.Community
	for _, c := range f.communities {
		if c.IsPublic {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeCommunityStore) ListForUser(userID uuid.UUID) ([]model.Community, error) {
	var result []model.Community
	for _, c := range f.communities {
		if c.OwnerID == userID || c.HasMember(userID) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (f *fakeCommunityStore) AddMember(member *model.CommunityMember) error {
	c, ok := f.communities[member.CommunityID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if c.HasMember(member.UserID) {
		return gorm.ErrDuplicatedKey
	}
	member.ID = uuid.New()
	c.Members = append(c.Members, *member)
	c.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCommunityStore) RemoveMember(communityID, userID uuid.UUID) error {
	c, ok := f.communities[communityID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range c.Members {
		if c.Members[i].UserID == userID {
			c.Members = append(c.Members[:i], c.Members[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeCommunityStore) UpdateOwner(communityID, newOwnerID uuid.UUID, newOwnerName string) error {
	c, ok := f.communities[communityID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.OwnerID = newOwnerID
	c.OwnerName = newOwnerName
	c.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCommunityStore) DeleteWithMessages(communityID uuid.UUID) error {
	delete(f.communities, communityID)
	var kept []model.CommunityMessage
	for _, m := range f.msgs.messages {
		if m.CommunityID != communityID {
			kept = append(kept, m)
		}
	}
	f.msgs.messages = kept
	return nil
}

// ==================== Helpers ====================

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
