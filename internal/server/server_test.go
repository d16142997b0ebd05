package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-platform/internal/config"
	"github.com/jonathan/career-platform/internal/db"
	"github.com/jonathan/career-platform/internal/session"
	"github.com/jonathan/career-platform/internal/types"
)

// fakeDB is an in-memory DBClient for handler tests.
type fakeDB struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*types.Profile

	failUpdateProfile bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*types.Profile),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, phone string, role types.Role) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{
		ID: id, Name: name, Email: email, Phone: phone, Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeDB) ListUsers(_ context.Context, limit int) ([]db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]db.User, 0, len(f.users))
	for _, u := range f.users {
		if len(users) >= limit {
			break
		}
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeDB) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeDB) EnsureProfile(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[userID]; !ok {
		f.profiles[userID] = &types.Profile{UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	}
	return nil
}

func (f *fakeDB) UpdateProfile(_ context.Context, userID uuid.UUID, patch *types.ProfilePatch) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateProfile {
		return nil, fmt.Errorf("simulated write failure")
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	patch.ApplyTo(p)
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (f *fakeDB) SetResume(_ context.Context, userID uuid.UUID, url, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return fmt.Errorf("profile not found: %s", userID)
	}
	p.ResumeURL = url
	p.ResumeKey = key
	return nil
}

// fakeStorage keeps blobs in a map.
type fakeStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return "http://files.test/" + key, nil
}

func (f *fakeStorage) Fetch(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return data, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, key)
	return nil
}

// fakeParser returns a canned document.
type fakeParser struct {
	parsed *types.ParsedResume
	err    error
}

func (f *fakeParser) Parse(ctx context.Context, _ string) (*types.ParsedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.parsed, nil
}

type testEnv struct {
	server  *Server
	db      *fakeDB
	storage *fakeStorage
	parser  *fakeParser
	session session.Store
}

func newTestEnv() *testEnv {
	env := &testEnv{
		db:      newFakeDB(),
		storage: newFakeStorage(),
		parser:  &fakeParser{parsed: &types.ParsedResume{}},
		session: session.NewMemoryStore(),
	}

	srv, err := New(Options{
		Port:     "0",
		DB:       env.db,
		Sessions: env.session,
		Storage:  env.storage,
		Parser:   env.parser,
		Password: &config.PasswordConfig{BcryptCost: 10},
		JWT:      &config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
	})
	if err != nil {
		panic(err)
	}
	env.server = srv
	return env
}

// seedUser creates a user with a profile and returns its ID.
func (env *testEnv) seedUser(role types.Role) uuid.UUID {
	ctx := context.Background()
	id, _ := env.db.CreateUser(ctx, "Test User", fmt.Sprintf("%s@example.com", uuid.NewString()), "", role)
	_ = env.db.EnsureProfile(ctx, id)
	return id
}
