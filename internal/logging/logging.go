// File: internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ContextKey 是 echo.Context 中存放 request log entry 的 key
const ContextKey = "logger"

// New 建立輸出 JSON 的 logger；level 無法解析時回傳錯誤
func New(level string) (*logrus.Logger, error) {
	return newLogger(level, os.Stdout)
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = out
	log.SetLevel(lvl)
	return log, nil
}

// Middleware 為每個請求建立帶 request id 的 log entry，並在結束時記錄狀態碼、大小與耗時。
// request id 沿用 X-Request-ID 回應標頭 (由 echo RequestID middleware 設定)，沒有就自己產生。
func Middleware(base *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()

			id := res.Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
				res.Header().Set(echo.HeaderXRequestID, id)
			}

			start := time.Now()
			log := base.WithFields(logrus.Fields{
				"http.req.path":   req.URL.Path,
				"http.req.method": req.Method,
				"http.req.id":     id,
			})
			c.Set(ContextKey, log)
			log.Debug("request started")

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.WithFields(logrus.Fields{
				"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
				"http.resp.status":  res.Status,
				"http.resp.bytes":   res.Size,
			}).Info("request complete")
			return err
		}
	}
}

// From 取出 Middleware 放入的 entry；沒有時退回標準 logger
func From(c echo.Context) *logrus.Entry {
	if e, ok := c.Get(ContextKey).(*logrus.Entry); ok {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
