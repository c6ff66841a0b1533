package repositories

import "socialapi/models"

// Lookups return gorm.ErrRecordNotFound when the row is absent; callers
// that treat absence as a normal outcome check for it with errors.Is.

type UserRepository interface {
	FindByID(id int32) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	EmailOrUsernameTaken(email, username string) (bool, error)
	Create(user *models.User) error
	UpdateProfile(id int32, name, bio *string) (*models.User, error)
	Search(query string, limit int) ([]models.User, error)
	List(limit int) ([]models.User, error)

	Follow(followerID, followingID int32) error
	Unfollow(followerID, followingID int32) error
	IsFollowing(followerID, followingID int32) (bool, error)
	Followers(userID int32) ([]models.User, error)
	Following(userID int32) ([]models.User, error)
	FollowersCount(userID int32) (int32, error)
	FollowingCount(userID int32) (int32, error)
	FollowingIDs(userID int32) ([]int32, error)
}

type PostRepository interface {
	FindByID(id int32) (*models.Post, error)
	Latest(limit int) ([]models.Post, error)
	ByAuthor(authorID int32) ([]models.Post, error)
	Feed(authorIDs []int32, limit int) ([]models.Post, error)
	Create(post *models.Post) error
	Delete(id int32) error

	Like(userID, postID int32) error
	Unlike(userID, postID int32) error
	IsLiked(userID, postID int32) (bool, error)
	LikesCount(postID int32) (int32, error)
}
