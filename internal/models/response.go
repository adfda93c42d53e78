package models

import "time"

// The response types below define the external contract of the API. They
// are assembled by pure constructors from entities whose viewer-relative
// facts (favorited, following, counts) were already computed upstream, so
// projection itself never touches storage.

// ArticleView is the externally visible shape of a single article.
type ArticleView struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

// ProfileView is the externally visible shape of a user profile.
type ProfileView struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// CommentView is the externally visible shape of a comment.
type CommentView struct {
	ID        uint        `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    ProfileView `json:"author"`
}

// UserView is the externally visible shape of the authenticated user,
// including a fresh token.
type UserView struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// UserResponse wraps the authenticated user.
type UserResponse struct {
	User UserView `json:"user"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Article ArticleView `json:"article"`
}

// ArticlesResponse wraps an article listing. ArticlesCount is the total
// matching the filter, independent of pagination.
type ArticlesResponse struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

// ProfileResponse wraps a profile.
type ProfileResponse struct {
	Profile ProfileView `json:"profile"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Comment CommentView `json:"comment"`
}

// CommentsResponse wraps the comments of an article.
type CommentsResponse struct {
	Comments []CommentView `json:"comments"`
}

// MessageResponse acknowledges a delete with no entity body.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewProfileView projects a user plus a viewer-relative following flag.
func NewProfileView(u *User, following bool) ProfileView {
	return ProfileView{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

// NewUserResponse projects the authenticated user with a signed token.
func NewUserResponse(u *User, token string) UserResponse {
	return UserResponse{User: UserView{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}}
}

// NewArticleView projects an article whose Favorited and FavoritesCount
// fields were computed relative to the requesting viewer.
func NewArticleView(a *Article) ArticleView {
	tags := a.TagList
	if tags == nil {
		tags = TagList{}
	}
	return ArticleView{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      a.Favorited,
		FavoritesCount: a.FavoritesCount,
		Author:         NewProfileView(&a.Author, false),
	}
}

// NewArticleResponse wraps a single projected article.
func NewArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{Article: NewArticleView(a)}
}

// NewArticlesResponse wraps a listing page with the filter-wide total.
func NewArticlesResponse(articles []*Article, total int64) ArticlesResponse {
	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, NewArticleView(a))
	}
	return ArticlesResponse{Articles: views, ArticlesCount: total}
}

// NewCommentView projects a comment with its author profile.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    NewProfileView(&c.Author, false),
	}
}

// NewCommentsResponse wraps the comments of an article.
func NewCommentsResponse(comments []*Comment) CommentsResponse {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c))
	}
	return CommentsResponse{Comments: views}
}
