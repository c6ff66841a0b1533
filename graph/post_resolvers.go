package graph

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"socialapi/middleware"
	"socialapi/models"
	"socialapi/monitoring"
)

type CreatePostInput struct {
	Content string
}

// PostResolver resolves the fields of a Post.
type PostResolver struct {
	r *Resolver
	p *models.Post
}

func (p *PostResolver) ID() int32       { return p.p.ID }
func (p *PostResolver) Content() string { return p.p.Content }

func (p *PostResolver) CreatedAt() string { return formatTime(p.p.CreatedAt) }
func (p *PostResolver) UpdatedAt() string { return formatTime(p.p.UpdatedAt) }

func (p *PostResolver) Author() (*UserResolver, error) {
	author, err := p.r.userRepo.FindByID(p.p.AuthorID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{r: p.r, u: author}, nil
}

func (p *PostResolver) LikesCount() (int32, error) {
	return p.r.postRepo.LikesCount(p.p.ID)
}

// IsLiked is tri-state: nil without a caller, since "unknown" is distinct
// from "not liked".
func (p *PostResolver) IsLiked(ctx context.Context) (*bool, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, nil
	}

	liked, err := p.r.postRepo.IsLiked(caller, p.p.ID)
	if err != nil {
		return nil, err
	}
	return &liked, nil
}

func (r *Resolver) wrapPosts(posts []models.Post) []*PostResolver {
	resolvers := make([]*PostResolver, len(posts))
	for i := range posts {
		resolvers[i] = &PostResolver{r: r, p: &posts[i]}
	}
	return resolvers
}

// Post returns null, not an error, when the id does not exist.
func (r *Resolver) Post(args struct{ ID int32 }) (*PostResolver, error) {
	post, err := r.postRepo.FindByID(args.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &PostResolver{r: r, p: post}, nil
}

func (r *Resolver) Posts() ([]*PostResolver, error) {
	posts, err := r.postRepo.Latest(maxPosts)
	if err != nil {
		return nil, err
	}
	return r.wrapPosts(posts), nil
}

// Feed returns recent posts from followed users plus the caller's own.
func (r *Resolver) Feed(ctx context.Context) ([]*PostResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	authorIDs, err := r.userRepo.FollowingIDs(caller)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, caller)

	posts, err := r.postRepo.Feed(authorIDs, maxPosts)
	if err != nil {
		return nil, err
	}
	return r.wrapPosts(posts), nil
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input CreatePostInput }) (*PostResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	logrus.WithFields(logrus.Fields{"author": caller}).Info("createPost mutation called")

	post := models.Post{
		Content:  args.Input.Content,
		AuthorID: caller,
	}
	if err := r.postRepo.Create(&post); err != nil {
		return nil, err
	}

	monitoring.PostsCreated.Inc()
	return &PostResolver{r: r, p: &post}, nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return false, errUnauthenticated()
	}

	post, err := r.postRepo.FindByID(args.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errInvalidInput("Post not found")
		}
		return false, err
	}

	if post.AuthorID != caller {
		return false, errUnauthorized("Not authorized")
	}

	if err := r.postRepo.Delete(args.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Resolver) LikePost(ctx context.Context, args struct{ ID int32 }) (*LikeResultResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	if _, err := r.postRepo.FindByID(args.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidInput("Post not found")
		}
		return nil, err
	}

	liked, err := r.postRepo.IsLiked(caller, args.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return &LikeResultResolver{message: "Already liked this post", isLiked: true}, nil
	}

	if err := r.postRepo.Like(caller, args.ID); err != nil {
		return nil, err
	}

	monitoring.LikesCreated.Inc()
	return &LikeResultResolver{message: "Successfully liked post", isLiked: true}, nil
}

func (r *Resolver) UnlikePost(ctx context.Context, args struct{ ID int32 }) (*LikeResultResolver, error) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	if _, err := r.postRepo.FindByID(args.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidInput("Post not found")
		}
		return nil, err
	}

	liked, err := r.postRepo.IsLiked(caller, args.ID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return &LikeResultResolver{message: "Post is not liked", isLiked: false}, nil
	}

	if err := r.postRepo.Unlike(caller, args.ID); err != nil {
		return nil, err
	}

	return &LikeResultResolver{message: "Successfully unliked post", isLiked: false}, nil
}
