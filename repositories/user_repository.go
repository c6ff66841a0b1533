package repositories

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialapi/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id int32) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailOrUsernameTaken reports whether any account already claims the email
// or the username. Registration needs a single combined check.
func (r *userRepository) EmailOrUsernameTaken(email, username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateProfile applies a partial update; nil fields are left unchanged.
func (r *userRepository) UpdateProfile(id int32, name, bio *string) (*models.User, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if bio != nil {
		updates["bio"] = *bio
	}

	if len(updates) > 0 {
		err := r.db.Model(&models.User{}).Where("user_id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return r.FindByID(id)
}

// Search matches the query case-insensitively against username and name.
// LOWER/LIKE instead of ILIKE so the same query runs on sqlite in tests.
func (r *userRepository) Search(query string, limit int) ([]models.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []models.User
	err := r.db.
		Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) List(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Limit(limit).Find(&users).Error
	return users, err
}

// Follow creates the edge. ON CONFLICT DO NOTHING on the composite primary
// key keeps concurrent follow calls from erroring or duplicating the edge.
func (r *userRepository) Follow(followerID, followingID int32) error {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

func (r *userRepository) Unfollow(followerID, followingID int32) error {
	return r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *userRepository) IsFollowing(followerID, followingID int32) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Followers returns the users following userID.
func (r *userRepository) Followers(userID int32) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins(`INNER JOIN follower ON follower.follower_id = "user".user_id`).
		Where("follower.following_id = ?", userID).
		Find(&users).Error
	return users, err
}

// Following returns the users that userID follows.
func (r *userRepository) Following(userID int32) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins(`INNER JOIN follower ON follower.following_id = "user".user_id`).
		Where("follower.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *userRepository) FollowersCount(userID int32) (int32, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return int32(count), err
}

func (r *userRepository) FollowingCount(userID int32) (int32, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return int32(count), err
}

func (r *userRepository) FollowingIDs(userID int32) ([]int32, error) {
	var ids []int32
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
