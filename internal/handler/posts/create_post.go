// File: internal/handler/posts/create_post.go
package posts

import (
	"net/http"

	"postboard/internal/api"
	"postboard/internal/logging"
	"postboard/internal/model"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const failCreate = "Post creation failed"

// CreatePostHandler 以 userID (email) 找到使用者後新增貼文
// @Summary     Create a post
// @Tags        posts
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.CreatePostRequest true "貼文內容"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /newPost [post]
func CreatePostHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logging.From(c)

		var req api.CreatePostRequest
		if err := c.Bind(&req); err != nil {
			return api.Respond(c, api.Validation("All fields required"))
		}
		if err := c.Validate(&req); err != nil {
			return api.Respond(c, api.Validation("All fields required"))
		}
		if apiErr := checkOwner(c, req.UserID); apiErr != nil {
			log.WithField("userID", req.UserID).Warn("new post: token does not match userID")
			return api.Respond(c, apiErr)
		}

		user, apiErr := lookupOwner(c, st, req.UserID, failCreate)
		if apiErr != nil {
			log.WithError(apiErr).WithField("userID", req.UserID).Info("new post: owner lookup failed")
			return api.Respond(c, apiErr)
		}

		post, err := st.CreatePost(c.Request().Context(), &model.Post{
			UserID:      user.ID,
			Title:       req.PostTitle,
			Description: req.PostDescription,
		})
		if err != nil {
			log.WithError(err).Error("new post: insert failed")
			return api.Respond(c, api.Internal(failCreate, err))
		}

		log.WithFields(logrus.Fields{
			"userID":    req.UserID,
			"postID":    post.ID,
			"postTitle": post.Title,
		}).Info("post created")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Post created successfully"})
	}
}
