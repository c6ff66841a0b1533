package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialapi/models"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id int32) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("post_id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Latest(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ByAuthor(authorID int32) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Feed(authorIDs []int32, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Delete removes the post and any like edges pointing at it.
func (r *postRepository) Delete(id int32) error {
	if err := r.db.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	return r.db.Where("post_id = ?", id).Delete(&models.Post{}).Error
}

// Like creates the edge; ON CONFLICT DO NOTHING keeps repeated or
// concurrent likes from erroring or duplicating it.
func (r *postRepository) Like(userID, postID int32) error {
	like := models.Like{UserID: userID, PostID: postID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *postRepository) Unlike(userID, postID int32) error {
	return r.db.
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

func (r *postRepository) IsLiked(userID, postID int32) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) LikesCount(postID int32) (int32, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return int32(count), err
}
