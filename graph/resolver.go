package graph

import (
	"time"

	"socialapi/auth"
	"socialapi/repositories"
)

// Result caps. Clients cannot request more.
const (
	maxPosts      = 50
	maxUserSearch = 20
)

// Resolver is the root resolver behind every Query and Mutation field.
// Fields are unexported so the engine binds schema fields to methods only.
type Resolver struct {
	userRepo repositories.UserRepository
	postRepo repositories.PostRepository
	tokens   *auth.TokenManager
}

func NewResolver(users repositories.UserRepository, posts repositories.PostRepository, tokens *auth.TokenManager) *Resolver {
	return &Resolver{userRepo: users, postRepo: posts, tokens: tokens}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// AuthPayloadResolver resolves the register/login result.
type AuthPayloadResolver struct {
	token string
	user  *UserResolver
}

func (p *AuthPayloadResolver) Token() string       { return p.token }
func (p *AuthPayloadResolver) User() *UserResolver { return p.user }

// FollowResultResolver resolves the followUser/unfollowUser payload. The
// isFollowing flag always reflects the post-operation state.
type FollowResultResolver struct {
	message     string
	isFollowing bool
}

func (f *FollowResultResolver) Success() bool     { return true }
func (f *FollowResultResolver) Message() string   { return f.message }
func (f *FollowResultResolver) IsFollowing() bool { return f.isFollowing }

// LikeResultResolver resolves the likePost/unlikePost payload.
type LikeResultResolver struct {
	message string
	isLiked bool
}

func (l *LikeResultResolver) Success() bool   { return true }
func (l *LikeResultResolver) Message() string { return l.message }
func (l *LikeResultResolver) IsLiked() bool   { return l.isLiked }
