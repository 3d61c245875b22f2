// File: internal/handler/posts/list_posts.go
package posts

import (
	"net/http"

	"postboard/internal/api"
	"postboard/internal/logging"
	"postboard/internal/model"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
)

const failList = "Failed to load posts"

// ListPostsHandler 列出使用者的貼文，新的在前
// @Summary     List my posts
// @Tags        posts
// @Produce     json
// @Param       userID query    string true "使用者 email"
// @Success     200    {array}  model.Post
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /getMyPosts [get]
func ListPostsHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logging.From(c)

		userID := c.QueryParam("userID")
		if userID == "" {
			return api.Respond(c, api.Validation("userID required"))
		}
		if apiErr := checkOwner(c, userID); apiErr != nil {
			return api.Respond(c, apiErr)
		}

		user, apiErr := lookupOwner(c, st, userID, failList)
		if apiErr != nil {
			log.WithError(apiErr).WithField("userID", userID).Info("list posts: owner lookup failed")
			return api.Respond(c, apiErr)
		}

		posts, err := st.ListPostsByUser(c.Request().Context(), user.ID)
		if err != nil {
			log.WithError(err).Error("list posts: query failed")
			return api.Respond(c, api.Internal(failList, err))
		}
		if posts == nil {
			posts = []model.Post{}
		}
		return c.JSON(http.StatusOK, posts)
	}
}
