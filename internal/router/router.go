// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"postboard/internal/cache"
	"postboard/internal/handler"
	"postboard/internal/handler/posts"
	"postboard/internal/handler/users"
	"postboard/internal/middleware"
	"postboard/internal/store"
)

// Options 控制貼文路由是否強制驗證
type Options struct {
	RequireToken bool
	TokenTTL     time.Duration
}

// Setup 註冊所有路由與中介層；cch 為 nil 表示未啟用快取
func Setup(e *echo.Echo, st store.Store, cch cache.Cache, opts Options) {
	// 健康檢查
	e.GET("/ping", handler.PingHandler(st, cch))

	// 註冊與登入
	e.POST("/registerUser", users.RegisterHandler(st))
	e.POST("/userLogin", users.LoginHandler(st, opts.TokenTTL))

	// 貼文；帶 token 時檢查是否為本人
	auth := middleware.OptionalAuth
	if opts.RequireToken {
		auth = middleware.RequireAuth
	}
	e.POST("/newPost", posts.CreatePostHandler(st), auth)
	e.GET("/getMyPosts", posts.ListPostsHandler(st), auth)
	e.DELETE("/deletePost", posts.DeletePostHandler(st), auth)
}
