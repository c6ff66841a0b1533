package graph

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"socialapi/auth"
	"socialapi/logger"
	"socialapi/middleware"
	"socialapi/models"
	"socialapi/monitoring"
)

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     *string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	Name *string
	Bio  *string
}

// UserResolver resolves the fields of a User.
type UserResolver struct {
	r *Resolver
	u *models.User
}

func (u *UserResolver) ID() int32        { return u.u.ID }
func (u *UserResolver) Email() string    { return u.u.Email }
func (u *UserResolver) Username() string { return u.u.Username }

func (u *UserResolver) Name() *string {
	if u.u.Name == "" {
		return nil
	}
	return &u.u.Name
}

func (u *UserResolver) Bio() *string { return u.u.Bio }

func (u *UserResolver) CreatedAt() string { return formatTime(u.u.CreatedAt) }
func (u *UserResolver) UpdatedAt() string { return formatTime(u.u.UpdatedAt) }

func (u *UserResolver) Posts() ([]*PostResolver, error) {
	posts, err := u.r.postRepo.ByAuthor(u.u.ID)
	if err != nil {
		return nil, err
	}
	return u.r.wrapPosts(posts), nil
}

func (u *UserResolver) FollowersCount() (int32, error) {
	return u.r.userRepo.FollowersCount(u.u.ID)
}

func (u *UserResolver) FollowingCount() (int32, error) {
	return u.r.userRepo.FollowingCount(u.u.ID)
}

// IsFollowing is tri-state: nil without a caller, since "unknown" is
// distinct from "not following".
func (u *UserResolver) IsFollowing(ctx context.Context) (*bool, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, nil
	}

	following, err := u.r.userRepo.IsFollowing(caller, u.u.ID)
	if err != nil {
		return nil, err
	}
	return &following, nil
}

func (r *Resolver) wrapUsers(users []models.User) []*UserResolver {
	resolvers := make([]*UserResolver, len(users))
	for i := range users {
		resolvers[i] = &UserResolver{r: r, u: &users[i]}
	}
	return resolvers
}

// Me returns the caller's account, or null when the request is anonymous.
// An anonymous caller is not an error here.
func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, nil
	}

	user, err := r.userRepo.FindByID(caller)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{r: r, u: user}, nil
}

func (r *Resolver) User(args struct{ Username string }) (*UserResolver, error) {
	user, err := r.userRepo.FindByUsername(args.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidInput("User not found")
		}
		return nil, err
	}
	return &UserResolver{r: r, u: user}, nil
}

func (r *Resolver) Users(args struct{ Query *string }) ([]*UserResolver, error) {
	var (
		users []models.User
		err   error
	)
	if args.Query != nil && *args.Query != "" {
		users, err = r.userRepo.Search(*args.Query, maxUserSearch)
	} else {
		users, err = r.userRepo.List(maxUserSearch)
	}
	if err != nil {
		return nil, err
	}
	return r.wrapUsers(users), nil
}

func (r *Resolver) Followers(args struct{ UserID int32 }) ([]*UserResolver, error) {
	users, err := r.userRepo.Followers(args.UserID)
	if err != nil {
		return nil, err
	}
	return r.wrapUsers(users), nil
}

func (r *Resolver) Following(args struct{ UserID int32 }) ([]*UserResolver, error) {
	users, err := r.userRepo.Following(args.UserID)
	if err != nil {
		return nil, err
	}
	return r.wrapUsers(users), nil
}

func (r *Resolver) Register(ctx context.Context, args struct{ Input RegisterInput }) (*AuthPayloadResolver, error) {
	input := args.Input
	logrus.WithFields(logger.Redact(logrus.Fields{
		"email":    input.Email,
		"username": input.Username,
		"password": input.Password,
	})).Info("register mutation called")

	taken, err := r.userRepo.EmailOrUsernameTaken(input.Email, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errInvalidInput("Email or username already taken")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	name := input.Username
	if input.Name != nil && *input.Name != "" {
		name = *input.Name
	}

	user := models.User{
		Email:    input.Email,
		Username: input.Username,
		Password: hash,
		Name:     name,
	}
	if err := r.userRepo.Create(&user); err != nil {
		return nil, err
	}

	token, err := r.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	monitoring.RegisterSuccess.Inc()
	return &AuthPayloadResolver{token: token, user: &UserResolver{r: r, u: &user}}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ Input LoginInput }) (*AuthPayloadResolver, error) {
	input := args.Input
	logrus.WithFields(logger.Redact(logrus.Fields{
		"email":    input.Email,
		"password": input.Password,
	})).Info("login mutation called")

	user, err := r.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.LoginFailure.WithLabelValues("unknown_email").Inc()
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.Password, input.Password); err != nil {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		return nil, errInvalidCredentials()
	}

	token, err := r.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	monitoring.LoginSuccess.Inc()
	return &AuthPayloadResolver{token: token, user: &UserResolver{r: r, u: user}}, nil
}

func (r *Resolver) UpdateProfile(ctx context.Context, args struct{ Input UpdateProfileInput }) (*UserResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	user, err := r.userRepo.UpdateProfile(caller, args.Input.Name, args.Input.Bio)
	if err != nil {
		return nil, err
	}
	return &UserResolver{r: r, u: user}, nil
}

func (r *Resolver) FollowUser(ctx context.Context, args struct{ UserID int32 }) (*FollowResultResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	if caller == args.UserID {
		return nil, errInvalidInput("You cannot follow yourself")
	}

	if _, err := r.userRepo.FindByID(args.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidInput("User not found")
		}
		return nil, err
	}

	following, err := r.userRepo.IsFollowing(caller, args.UserID)
	if err != nil {
		return nil, err
	}
	if following {
		return &FollowResultResolver{message: "Already following this user", isFollowing: true}, nil
	}

	if err := r.userRepo.Follow(caller, args.UserID); err != nil {
		return nil, err
	}

	monitoring.FollowsCreated.Inc()
	return &FollowResultResolver{message: "Successfully followed user", isFollowing: true}, nil
}

func (r *Resolver) UnfollowUser(ctx context.Context, args struct{ UserID int32 }) (*FollowResultResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	if _, err := r.userRepo.FindByID(args.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidInput("User not found")
		}
		return nil, err
	}

	following, err := r.userRepo.IsFollowing(caller, args.UserID)
	if err != nil {
		return nil, err
	}
	if !following {
		return &FollowResultResolver{message: "Not following this user", isFollowing: false}, nil
	}

	if err := r.userRepo.Unfollow(caller, args.UserID); err != nil {
		return nil, err
	}

	return &FollowResultResolver{message: "Successfully unfollowed user", isFollowing: false}, nil
}
