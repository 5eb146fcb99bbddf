package services

import (
	"context"
	"strings"

	"dailydare-backend/internal/models"
)

// In-memory store fakes shared by the service tests.

type completionRecord struct {
	uid    string
	ref    string
	streak int
}

type fakeUsers struct {
	profiles map[string]*models.UserProfile
	getErr   map[string]error
	applied  []completionRecord
	searches []string
	results  []models.FriendSummary
}

func newFakeUsers(profiles ...*models.UserProfile) *fakeUsers {
	f := &fakeUsers{
		profiles: make(map[string]*models.UserProfile),
		getErr:   make(map[string]error),
	}
	for _, p := range profiles {
		f.profiles[p.UID] = p
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, user *models.UserProfile) error {
	f.profiles[user.UID] = user
	return nil
}

func (f *fakeUsers) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if err, ok := f.getErr[uid]; ok {
		return nil, err
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdateDisplay(ctx context.Context, uid, userName, userHandle, profilePicture string) error {
	p, ok := f.profiles[uid]
	if !ok {
		return models.ErrNotFound
	}
	p.UserName = userName
	p.UserHandle = userHandle
	p.ProfilePicture = profilePicture
	return nil
}

func (f *fakeUsers) ApplyPostCompletion(ctx context.Context, uid, challengeRef string, streak int) error {
	p, ok := f.profiles[uid]
	if !ok {
		return models.ErrNotFound
	}
	for _, ref := range p.CompletedChallengeRefs {
		if ref == challengeRef {
			return nil
		}
	}
	p.CompletedCount++
	p.CompletedChallengeRefs = append(p.CompletedChallengeRefs, challengeRef)
	p.StreakCount = streak
	f.applied = append(f.applied, completionRecord{uid: uid, ref: challengeRef, streak: streak})
	return nil
}

func (f *fakeUsers) UpdatePushToken(ctx context.Context, uid string, pushToken *string) error {
	p, ok := f.profiles[uid]
	if !ok {
		return models.ErrNotFound
	}
	p.PushToken = pushToken
	return nil
}

func (f *fakeUsers) Search(ctx context.Context, q string, limit int) ([]models.FriendSummary, error) {
	f.searches = append(f.searches, q)
	var out []models.FriendSummary
	for _, p := range f.profiles {
		if strings.HasPrefix(p.UserName, q) || strings.HasPrefix(p.UserHandle, q) {
			out = append(out, models.FriendSummaryOf(p))
		}
	}
	out = append(out, f.results...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFriends struct {
	relations map[string]*models.FriendRelation
	requests  map[string]*models.FriendRequest
	listErr   error
}

func newFakeFriends() *fakeFriends {
	return &fakeFriends{
		relations: make(map[string]*models.FriendRelation),
		requests:  make(map[string]*models.FriendRequest),
	}
}

func (f *fakeFriends) CreateRelation(ctx context.Context, rel *models.FriendRelation) error {
	if _, ok := f.relations[rel.ID]; ok {
		return nil
	}
	f.relations[rel.ID] = rel
	return nil
}

func (f *fakeFriends) DeleteRelation(ctx context.Context, id string) error {
	if _, ok := f.relations[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.relations, id)
	return nil
}

func (f *fakeFriends) RelationExists(ctx context.Context, id string) (bool, error) {
	_, ok := f.relations[id]
	return ok, nil
}

func (f *fakeFriends) ListRelations(ctx context.Context, uid string) ([]models.FriendRelation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.FriendRelation
	for _, rel := range f.relations {
		if rel.UserAID == uid || rel.UserBID == uid {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (f *fakeFriends) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeFriends) DeleteRequest(ctx context.Context, id string) (bool, error) {
	if _, ok := f.requests[id]; !ok {
		return false, nil
	}
	delete(f.requests, id)
	return true, nil
}

func (f *fakeFriends) ListIncomingRequests(ctx context.Context, uid string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range f.requests {
		if req.To == uid {
			out = append(out, *req)
		}
	}
	return out, nil
}

type fakeChallenges struct {
	challenges map[int]*models.Challenge
}

func newFakeChallenges(challenges ...*models.Challenge) *fakeChallenges {
	f := &fakeChallenges{challenges: make(map[int]*models.Challenge)}
	for _, c := range challenges {
		f.challenges[c.ID] = c
	}
	return f
}

func (f *fakeChallenges) GetByID(ctx context.Context, id int) (*models.Challenge, error) {
	c, ok := f.challenges[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChallenges) GetByRef(ctx context.Context, ref string) (*models.Challenge, error) {
	id, err := models.ChallengeIDFromRef(ref)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return f.GetByID(ctx, id)
}

type fakePosts struct {
	posts   map[string]*models.Post
	queries [][]string
	listErr error
}

func newFakePosts(posts ...*models.Post) *fakePosts {
	f := &fakePosts{posts: make(map[string]*models.Post)}
	for _, p := range posts {
		f.posts[p.PostID] = p
	}
	return f
}

func (f *fakePosts) Create(ctx context.Context, post *models.Post) error {
	if _, ok := f.posts[post.PostID]; ok {
		return models.ErrAlreadyPosted
	}
	f.posts[post.PostID] = post
	return nil
}

func (f *fakePosts) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	cp.Likes = append([]string{}, p.Likes...)
	return &cp, nil
}

func (f *fakePosts) ListByAuthors(ctx context.Context, uids []string) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.queries = append(f.queries, append([]string{}, uids...))
	var out []models.Post
	for _, uid := range uids {
		for _, p := range f.posts {
			if p.UID == uid {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (f *fakePosts) AddLike(ctx context.Context, postID, uid string) (bool, error) {
	p, ok := f.posts[postID]
	if !ok {
		return false, nil
	}
	for _, l := range p.Likes {
		if l == uid {
			return false, nil
		}
	}
	p.Likes = append(p.Likes, uid)
	return true, nil
}

func (f *fakePosts) RemoveLike(ctx context.Context, postID, uid string) (bool, error) {
	p, ok := f.posts[postID]
	if !ok {
		return false, nil
	}
	for i, l := range p.Likes {
		if l == uid {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifications struct {
	stored map[string]*models.Notification
	order  []string
}

func newFakeNotifications() *fakeNotifications {
	return &fakeNotifications{stored: make(map[string]*models.Notification)}
}

func (f *fakeNotifications) Upsert(ctx context.Context, n *models.Notification) error {
	if _, ok := f.stored[n.ID]; !ok {
		f.order = append(f.order, n.ID)
	}
	cp := *n
	f.stored[n.ID] = &cp
	return nil
}

func (f *fakeNotifications) ListByRecipient(ctx context.Context, uid string) ([]models.Notification, error) {
	var out []models.Notification
	for _, id := range f.order {
		if f.stored[id].UID == uid {
			out = append(out, *f.stored[id])
		}
	}
	return out, nil
}

// newTestNotifier builds a notification service with no hub or push fan-out
// and a pinned clock, so derived keys are deterministic.
func newTestNotifier(store NotificationsStore, users UsersStore) *NotificationService {
	svc := NewNotificationService(store, users, nil, nil)
	svc.now = fixedNow
	return svc
}
