package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventplanner/internal/domain"
)

// In-memory fakes shared by the service tests.

type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, viewerID, viewerEmail string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if !e.IsPrivate || e.OrganizerID == viewerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.StartsAt != nil {
		e.StartsAt = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		e.EndsAt = *upd.EndsAt
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.IsPrivate != nil {
		e.IsPrivate = *upd.IsPrivate
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) SetCategories(ctx context.Context, eventID string, categoryIDs []string) error {
	return nil
}

func (f *fakeEventRepo) SetTags(ctx context.Context, eventID string, tagIDs []string) error {
	return nil
}

func (f *fakeEventRepo) ListDueForReminder(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.Status == domain.EventStatusUpcoming && e.StartsAt.After(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeRegistrationRepo struct {
	mu        sync.Mutex
	byKey     map[string]*domain.Registration
	nextID    int
	createErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byKey: make(map[string]*domain.Registration), nextID: 1}
}

func regKey(eventID, userID string) string { return eventID + "|" + userID }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	key := regKey(reg.EventID, reg.UserID)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.byKey[key] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reg, ok := f.byKey[regKey(eventID, userID)]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) ListByEventAndStatus(ctx context.Context, eventID string, status domain.RSVPStatus) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range f.byKey {
		if reg.EventID == eventID && reg.Status == status {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range f.byKey {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

type fakeInvitationRepo struct {
	byKey   map[string]*domain.Invitation // (eventID|email)
	byToken map[string]*domain.Invitation
	nextID  int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		byKey:   make(map[string]*domain.Invitation),
		byToken: make(map[string]*domain.Invitation),
		nextID:  1,
	}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	key := regKey(inv.EventID, inv.Email)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrAlreadyInvited
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byKey[key] = inv
	f.byToken[inv.Token] = inv
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	for _, inv := range f.byKey {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Invitation, error) {
	if inv, ok := f.byKey[regKey(eventID, email)]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) HasAccepted(ctx context.Context, eventID, email string) (bool, error) {
	inv, ok := f.byKey[regKey(eventID, email)]
	return ok && inv.Accepted, nil
}

func (f *fakeInvitationRepo) Accept(ctx context.Context, token string, at time.Time) (*domain.Invitation, error) {
	inv, ok := f.byToken[token]
	if !ok || inv.Accepted {
		return nil, domain.ErrNotFound
	}
	inv.Accepted = true
	inv.AcceptedAt = &at
	return inv, nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	var out []*domain.Invitation
	for _, inv := range f.byKey {
		if inv.EventID == eventID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeNotificationRepo struct {
	byID   map[string]*domain.Notification
	nextID int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: make(map[string]*domain.Notification), nextID: 1}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = fmt.Sprintf("ntf-%d", f.nextID)
	f.nextID++
	f.byID[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.byID {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	n, ok := f.byID[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	n.Read = true
	return nil
}

type fakeCategoryRepo struct{ categories []*domain.Category }

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Category, error) {
	return nil, nil
}

type fakeTagRepo struct{ tags []*domain.Tag }

func (f *fakeTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	f.tags = append(f.tags, t)
	return nil
}

func (f *fakeTagRepo) List(ctx context.Context) ([]*domain.Tag, error) { return f.tags, nil }

func (f *fakeTagRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Tag, error) {
	return nil, nil
}

// scheduledReminder records one ScheduleReminder call.
type scheduledReminder struct {
	EventID string
	UserID  string
	Message string
	RunAt   time.Time
}

type fakeEnqueuer struct {
	mu          sync.Mutex
	invitations []string
	reminders   []scheduledReminder
	err         error
}

func (f *fakeEnqueuer) EnqueueInvitationEmail(ctx context.Context, invitationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, invitationID)
	return nil
}

func (f *fakeEnqueuer) ScheduleReminder(ctx context.Context, eventID, userID, message string, runAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reminders = append(f.reminders, scheduledReminder{EventID: eventID, UserID: userID, Message: message, RunAt: runAt})
	return nil
}
