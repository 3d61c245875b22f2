// File: internal/handler/posts/delete_post.go
package posts

import (
	"net/http"

	"postboard/internal/api"
	"postboard/internal/logging"
	"postboard/internal/middleware"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const failDelete = "Failed to delete post"

// DeletePostHandler 依 postID 刪除貼文；帶 token 時只能刪自己的
// @Summary     Delete a post
// @Tags        posts
// @Produce     json
// @Param       postID query    string true "貼文 ID"
// @Success     200    {object} api.MessageResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /deletePost [delete]
func DeletePostHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logging.From(c)
		ctx := c.Request().Context()

		postID := c.QueryParam("postID")
		if postID == "" {
			log.Info("delete post: no postID received")
			return api.Respond(c, api.Validation("Post ID is required"))
		}

		if claims, ok := middleware.ClaimsFrom(c); ok {
			post, err := st.GetPostByID(ctx, postID)
			if err != nil {
				return api.Respond(c, deleteError(err))
			}
			if post.UserID != claims.UserID {
				log.WithField("postID", postID).Warn("delete post: not the owner")
				return api.Respond(c, api.Forbidden(msgForbidden))
			}
		}

		if _, err := st.DeletePost(ctx, postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.WithField("postID", postID).Info("delete post: not found")
			} else {
				log.WithError(err).Error("delete post: failed")
			}
			return api.Respond(c, deleteError(err))
		}

		log.WithField("postID", postID).Info("post deleted")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Post deleted successfully"})
	}
}

func deleteError(err error) *api.Error {
	if errors.Is(err, store.ErrNotFound) {
		return api.NotFound(msgPostNotFound)
	}
	return api.Internal(failDelete, err)
}
