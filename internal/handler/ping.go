// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"postboard/internal/api"
	"postboard/internal/cache"
	"postboard/internal/logging"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取 (有啟用時) 是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(st store.Store, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := st.Ping(ctx); err != nil {
			logging.From(c).WithError(err).Error("ping: store unhealthy")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if cch != nil {
			if err := cch.Set(ctx, "health:ping", "pong", time.Minute).Err(); err != nil {
				logging.From(c).WithError(err).Error("ping: cache unhealthy")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
