package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deduplicator 擋下同一用戶端在短時間內重複送出的相同請求
type Deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
	now      func() time.Time
}

// NewDeduplicator 創建去重器
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	return &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
	}
}

// seen 記錄指紋，window 內出現過時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// prune 清除過期指紋
func (d *Deduplicator) prune() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
}

// StartPruning 定期清理指紋，stop 關閉時結束
func (d *Deduplicator) StartPruning(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.prune()
			case <-stop:
				return
			}
		}
	}()
}

// Deduplication 請求去重中間件，只處理 POST。
// 帶 X-Client-ID 的請求由 analysis.Sessions 以新請求取代舊請求，不在此擋下。
func Deduplication(d *Deduplicator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.GetHeader(ClientIDHeader) != "" {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					Abort(c, common.ErrTooLarge.Wrap(err))
					return
				}
				common.LogError("Failed to read request body", zap.Error(err))
				Abort(c, common.ErrInvalidRequest.Wrap(err))
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		// 生成請求指紋
		client := c.ClientIP()
		fingerprint := client + ":" + c.Request.URL.Path + ":" + bodyHash

		if d.seen(fingerprint) {
			common.LogDebug("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("client", client),
			)
			Abort(c, common.ErrTooManyRequests.Wrap(errors.New("duplicate request")))
			return
		}

		c.Next()
	}
}
