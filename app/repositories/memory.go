package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/pkg/errs"
)

// NewMemoryStore builds process-local repositories. Data is lost on exit.
func NewMemoryStore() Store {
	return Store{
		Users:     NewMemoryUsers(),
		Admins:    NewMemoryAdmins(),
		Courses:   NewMemoryCourses(),
		Purchases: NewMemoryPurchases(),
	}
}

func cloneIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	return append([]primitive.ObjectID{}, ids...)
}

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// ─── Users ────────────────────────────────────────────────────────────────────

type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*models.User
	byEmail map[string]primitive.ObjectID
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[primitive.ObjectID]*models.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.CoursesOwned = cloneIDs(u.CoursesOwned)
	c.Purchases = cloneIDs(u.Purchases)
	return &c
}

func (r *MemoryUsers) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return errs.ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CoursesOwned == nil {
		u.CoursesOwned = []primitive.ObjectID{}
	}
	if u.Purchases == nil {
		u.Purchases = []primitive.ObjectID{}
	}
	r.byID[u.ID] = copyUser(u)
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *MemoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *MemoryUsers) Update(_ context.Context, id primitive.ObjectID, patch models.ProfilePatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, errs.ErrDuplicateEmail
		}
		delete(r.byEmail, u.Email)
		u.Email = *patch.Email
		r.byEmail[u.Email] = u.ID
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	return copyUser(u), nil
}

func (r *MemoryUsers) AddPurchase(_ context.Context, userID, courseID, purchaseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.CoursesOwned = addID(u.CoursesOwned, courseID)
	u.Purchases = addID(u.Purchases, purchaseID)
	return nil
}

// ─── Admins ───────────────────────────────────────────────────────────────────

type MemoryAdmins struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*models.Admin
	byEmail map[string]primitive.ObjectID
}

func NewMemoryAdmins() *MemoryAdmins {
	return &MemoryAdmins{
		byID:    make(map[primitive.ObjectID]*models.Admin),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func copyAdmin(a *models.Admin) *models.Admin {
	c := *a
	c.CoursesCreated = cloneIDs(a.CoursesCreated)
	return &c
}

func (r *MemoryAdmins) Create(_ context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[a.Email]; taken {
		return errs.ErrDuplicateEmail
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CoursesCreated == nil {
		a.CoursesCreated = []primitive.ObjectID{}
	}
	r.byID[a.ID] = copyAdmin(a)
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *MemoryAdmins) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return copyAdmin(r.byID[id]), nil
}

func (r *MemoryAdmins) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return copyAdmin(a), nil
}

func (r *MemoryAdmins) AddCourse(_ context.Context, adminID, courseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[adminID]
	if !ok {
		return ErrAdminNotFound
	}
	a.CoursesCreated = addID(a.CoursesCreated, courseID)
	return nil
}

func (r *MemoryAdmins) RemoveCourse(_ context.Context, adminID, courseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[adminID]
	if !ok {
		return ErrAdminNotFound
	}
	a.CoursesCreated = removeID(a.CoursesCreated, courseID)
	return nil
}

// ─── Courses ──────────────────────────────────────────────────────────────────

type MemoryCourses struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]models.Course
	now  func() time.Time
}

func NewMemoryCourses() *MemoryCourses {
	return &MemoryCourses{byID: make(map[primitive.ObjectID]models.Course), now: time.Now}
}

func (r *MemoryCourses) Create(_ context.Context, c *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *MemoryCourses) FindByID(_ context.Context, id primitive.ObjectID) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &c, nil
}

func (r *MemoryCourses) FindAll(_ context.Context) ([]models.Course, error) {
	return r.filter(func(models.Course) bool { return true }), nil
}

func (r *MemoryCourses) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(c models.Course) bool { return want[c.ID] }), nil
}

func (r *MemoryCourses) FindByCreator(_ context.Context, creatorID primitive.ObjectID) ([]models.Course, error) {
	return r.filter(func(c models.Course) bool { return c.CreatorID == creatorID }), nil
}

// filter returns matching courses in ObjectID order, which is creation
// order, like the Mongo implementation's _id sort.
func (r *MemoryCourses) filter(keep func(models.Course) bool) []models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Course{}
	for _, c := range r.byID {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

func (r *MemoryCourses) Update(_ context.Context, id primitive.ObjectID, patch models.CoursePatch) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	patch.Apply(&c)
	c.UpdatedAt = r.now().UTC()
	r.byID[id] = c
	return &c, nil
}

func (r *MemoryCourses) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrCourseNotFound
	}
	delete(r.byID, id)
	return nil
}

// ─── Purchases ────────────────────────────────────────────────────────────────

type purchaseKey struct {
	user, course primitive.ObjectID
}

type MemoryPurchases struct {
	mu     sync.RWMutex
	byPair map[purchaseKey]models.Purchase
}

func NewMemoryPurchases() *MemoryPurchases {
	return &MemoryPurchases{byPair: make(map[purchaseKey]models.Purchase)}
}

func (r *MemoryPurchases) Create(_ context.Context, p *models.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := purchaseKey{user: p.UserID, course: p.CourseID}
	if _, exists := r.byPair[key]; exists {
		return errs.ErrAlreadyOwned
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.byPair[key] = *p
	return nil
}

func (r *MemoryPurchases) CountByCourse(_ context.Context, courseIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[primitive.ObjectID]bool, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = true
	}
	counts := make(map[primitive.ObjectID]int64)
	for key := range r.byPair {
		if want[key.course] {
			counts[key.course]++
		}
	}
	return counts, nil
}

func (r *MemoryPurchases) CourseIDsByUser(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []primitive.ObjectID
	for key, p := range r.byPair {
		if key.user == userID {
			ids = append(ids, p.CourseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids, nil
}

// Len returns the number of stored purchases.
func (r *MemoryPurchases) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPair)
}
