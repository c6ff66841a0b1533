package graph

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"socialapi/auth"
	"socialapi/database"
	"socialapi/middleware"
	"socialapi/models"
	"socialapi/repositories"
)

// setupResolver builds a root resolver over a throwaway sqlite database.
func setupResolver(t *testing.T) *Resolver {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewResolver(
		repositories.NewUserRepository(db),
		repositories.NewPostRepository(db),
		auth.NewTokenManager("test-secret", time.Hour),
	)
}

// register creates an account through the resolver and returns it.
func register(t *testing.T, r *Resolver, email, username, password string) *models.User {
	t.Helper()

	payload, err := r.Register(context.Background(), struct{ Input RegisterInput }{
		Input: RegisterInput{Email: email, Username: username, Password: password},
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	return payload.user.u
}

func callerCtx(userID int32) context.Context {
	return middleware.WithCaller(context.Background(), userID)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected an error with code %s, got nil", code)
	}
	var gqlErr *Error
	if !errors.As(err, &gqlErr) {
		t.Fatalf("Expected a typed error, got %T: %v", err, err)
	}
	if gqlErr.Code != code {
		t.Errorf("Expected error code %s, got %s (%s)", code, gqlErr.Code, gqlErr.Message)
	}
}

func TestRegisterLoginScenario(t *testing.T) {
	r := setupResolver(t)

	payload, err := r.Register(context.Background(), struct{ Input RegisterInput }{
		Input: RegisterInput{Email: "a@x.com", Username: "alice", Password: "p1"},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	registeredID := payload.user.u.ID

	// The issued token must resolve back to the new account
	tokenID, ok := r.tokens.Verify(payload.Token())
	if !ok || tokenID != registeredID {
		t.Errorf("Expected token bound to account %d, got %d (valid=%v)", registeredID, tokenID, ok)
	}

	_, err = r.Login(context.Background(), struct{ Input LoginInput }{
		Input: LoginInput{Email: "a@x.com", Password: "wrong"},
	})
	assertCode(t, err, CodeInvalidCredentials)

	loginPayload, err := r.Login(context.Background(), struct{ Input LoginInput }{
		Input: LoginInput{Email: "a@x.com", Password: "p1"},
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loginPayload.user.u.ID != registeredID {
		t.Errorf("Expected login to resolve account %d, got %d", registeredID, loginPayload.user.u.ID)
	}
}

func TestRegisterDefaultsNameToUsername(t *testing.T) {
	r := setupResolver(t)
	user := register(t, r, "a@x.com", "alice", "p1")

	if user.Name != "alice" {
		t.Errorf("Expected name to default to the username, got %q", user.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := setupResolver(t)
	register(t, r, "a@x.com", "alice", "p1")

	// Same username, different email
	_, err := r.Register(context.Background(), struct{ Input RegisterInput }{
		Input: RegisterInput{Email: "b@x.com", Username: "alice", Password: "p2"},
	})
	assertCode(t, err, CodeInvalidInput)

	// No account may have been created for the rejected email
	if _, err := r.userRepo.FindByEmail("b@x.com"); err == nil {
		t.Error("Expected no account for the rejected registration")
	}

	// Same email, different username
	_, err = r.Register(context.Background(), struct{ Input RegisterInput }{
		Input: RegisterInput{Email: "a@x.com", Username: "bob", Password: "p2"},
	})
	assertCode(t, err, CodeInvalidInput)
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	r := setupResolver(t)
	register(t, r, "a@x.com", "alice", "p1")

	_, unknownEmailErr := r.Login(context.Background(), struct{ Input LoginInput }{
		Input: LoginInput{Email: "nobody@x.com", Password: "p1"},
	})
	_, wrongPasswordErr := r.Login(context.Background(), struct{ Input LoginInput }{
		Input: LoginInput{Email: "a@x.com", Password: "wrong"},
	})

	assertCode(t, unknownEmailErr, CodeInvalidCredentials)
	assertCode(t, wrongPasswordErr, CodeInvalidCredentials)
	if unknownEmailErr.Error() != wrongPasswordErr.Error() {
		t.Errorf("Expected identical errors, got %q and %q", unknownEmailErr, wrongPasswordErr)
	}
}

func TestMeAnonymousReturnsNull(t *testing.T) {
	r := setupResolver(t)

	me, err := r.Me(context.Background())
	if err != nil {
		t.Fatalf("Expected me to never error for anonymous callers, got: %v", err)
	}
	if me != nil {
		t.Errorf("Expected null for anonymous me, got user %d", me.u.ID)
	}
}

func TestMeReturnsCaller(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")

	me, err := r.Me(callerCtx(alice.ID))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me == nil || me.u.ID != alice.ID {
		t.Errorf("Expected me to resolve account %d, got %v", alice.ID, me)
	}
}

func TestUserNotFound(t *testing.T) {
	r := setupResolver(t)

	_, err := r.User(struct{ Username string }{Username: "nobody"})
	assertCode(t, err, CodeInvalidInput)
}

func TestUsersSearch(t *testing.T) {
	r := setupResolver(t)
	register(t, r, "a@x.com", "alice", "p1")
	register(t, r, "b@x.com", "bob", "p1")

	query := "ALICE"
	results, err := r.Users(struct{ Query *string }{Query: &query})
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(results) != 1 || results[0].Username() != "alice" {
		t.Errorf("Expected case-insensitive match on alice, got %d results", len(results))
	}

	all, err := r.Users(struct{ Query *string }{})
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected unfiltered listing of 2 users, got %d", len(all))
	}
}

func TestUpdateProfile(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")

	_, err := r.UpdateProfile(context.Background(), struct{ Input UpdateProfileInput }{})
	assertCode(t, err, CodeUnauthenticated)

	bio := "hello"
	updated, err := r.UpdateProfile(callerCtx(alice.ID), struct{ Input UpdateProfileInput }{
		Input: UpdateProfileInput{Bio: &bio},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio() == nil || *updated.Bio() != "hello" {
		t.Errorf("Expected bio %q, got %v", "hello", updated.Bio())
	}
	if updated.Name() == nil || *updated.Name() != "alice" {
		t.Errorf("Expected omitted name to stay %q, got %v", "alice", updated.Name())
	}
}

func TestFollowUserTwice(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")
	bob := register(t, r, "b@x.com", "bob", "p1")

	first, err := r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID})
	if err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}
	if !first.Success() || !first.IsFollowing() {
		t.Errorf("Expected success and isFollowing=true, got %v/%v", first.Success(), first.IsFollowing())
	}

	second, err := r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID})
	if err != nil {
		t.Fatalf("Expected repeated follow not to error, got: %v", err)
	}
	if !second.Success() || !second.IsFollowing() {
		t.Errorf("Expected success and isFollowing=true on repeat, got %v/%v", second.Success(), second.IsFollowing())
	}

	count, err := r.userRepo.FollowersCount(bob.ID)
	if err != nil {
		t.Fatalf("FollowersCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one follow edge, got %d", count)
	}
}

func TestFollowUserChecks(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")

	// Authentication comes first
	_, err := r.FollowUser(context.Background(), struct{ UserID int32 }{UserID: alice.ID})
	assertCode(t, err, CodeUnauthenticated)

	// Self-follow is rejected before any lookup
	_, err = r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: alice.ID})
	assertCode(t, err, CodeInvalidInput)

	count, err := r.userRepo.FollowersCount(alice.ID)
	if err != nil {
		t.Fatalf("FollowersCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no edge after rejected self-follow, got %d", count)
	}

	// Unknown target
	_, err = r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: 9999})
	assertCode(t, err, CodeInvalidInput)
}

func TestUnfollowNonFollowed(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")
	bob := register(t, r, "b@x.com", "bob", "p1")

	result, err := r.UnfollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID})
	if err != nil {
		t.Fatalf("UnfollowUser failed: %v", err)
	}
	if !result.Success() || result.IsFollowing() {
		t.Errorf("Expected success and isFollowing=false, got %v/%v", result.Success(), result.IsFollowing())
	}
}

func TestUnfollowRemovesEdge(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")
	bob := register(t, r, "b@x.com", "bob", "p1")

	if _, err := r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID}); err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}

	result, err := r.UnfollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID})
	if err != nil {
		t.Fatalf("UnfollowUser failed: %v", err)
	}
	if result.IsFollowing() {
		t.Error("Expected isFollowing=false after unfollow")
	}

	following, err := r.userRepo.IsFollowing(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if following {
		t.Error("Expected edge to be gone after unfollow")
	}
}

func TestIsFollowingTriState(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")
	bob := register(t, r, "b@x.com", "bob", "p1")

	bobResolver, err := r.User(struct{ Username string }{Username: "bob"})
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}

	// Anonymous: unknown, not false
	state, err := bobResolver.IsFollowing(context.Background())
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if state != nil {
		t.Errorf("Expected null isFollowing for anonymous caller, got %v", *state)
	}

	// Caller without an edge: false
	state, err = bobResolver.IsFollowing(callerCtx(alice.ID))
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if state == nil || *state {
		t.Errorf("Expected isFollowing=false, got %v", state)
	}

	// Caller with an edge: true
	if _, err := r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID}); err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}
	state, err = bobResolver.IsFollowing(callerCtx(alice.ID))
	if err != nil {
		t.Fatalf("IsFollowing failed: %v", err)
	}
	if state == nil || !*state {
		t.Errorf("Expected isFollowing=true, got %v", state)
	}
}

func TestFollowersAndFollowingQueries(t *testing.T) {
	r := setupResolver(t)
	alice := register(t, r, "a@x.com", "alice", "p1")
	bob := register(t, r, "b@x.com", "bob", "p1")

	if _, err := r.FollowUser(callerCtx(alice.ID), struct{ UserID int32 }{UserID: bob.ID}); err != nil {
		t.Fatalf("FollowUser failed: %v", err)
	}

	followers, err := r.Followers(struct{ UserID int32 }{UserID: bob.ID})
	if err != nil {
		t.Fatalf("Followers failed: %v", err)
	}
	if len(followers) != 1 || followers[0].Username() != "alice" {
		t.Errorf("Expected bob's followers to be [alice], got %d results", len(followers))
	}

	following, err := r.Following(struct{ UserID int32 }{UserID: alice.ID})
	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}
	if len(following) != 1 || following[0].Username() != "bob" {
		t.Errorf("Expected alice's following to be [bob], got %d results", len(following))
	}
}
