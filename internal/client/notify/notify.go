// Package notify holds transient user-facing messages. Each notice expires on
// its own after a level-dependent TTL, like a toast.
package notify

import (
	"log/slog"
	"sort"
	"time"

	"github.com/aussiebroadwan/snaptranslate/pkg/idx"
	"github.com/patrickmn/go-cache"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Default auto-dismiss delays.
const (
	DefaultErrorTTL   = 3 * time.Second
	DefaultSuccessTTL = 5 * time.Second
	DefaultInfoTTL    = 5 * time.Second
)

type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Config struct {
	ErrorTTL   time.Duration
	SuccessTTL time.Duration
	InfoTTL    time.Duration
	Logger     *slog.Logger
}

// Center is safe for concurrent use.
type Center struct {
	cfg   Config
	items *cache.Cache
}

func New(cfg Config) *Center {
	if cfg.ErrorTTL <= 0 {
		cfg.ErrorTTL = DefaultErrorTTL
	}
	if cfg.SuccessTTL <= 0 {
		cfg.SuccessTTL = DefaultSuccessTTL
	}
	if cfg.InfoTTL <= 0 {
		cfg.InfoTTL = DefaultInfoTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Center{
		cfg:   cfg,
		items: cache.New(cfg.SuccessTTL, time.Minute),
	}
}

func (c *Center) ttl(level Level) time.Duration {
	switch level {
	case LevelError:
		return c.cfg.ErrorTTL
	case LevelSuccess:
		return c.cfg.SuccessTTL
	default:
		return c.cfg.InfoTTL
	}
}

// Push records a notice and returns it.
func (c *Center) Push(level Level, msg string) Notice {
	id := idx.New()
	n := Notice{
		ID:        id.String(),
		Level:     level,
		Message:   msg,
		CreatedAt: id.Time(),
	}
	c.items.Set(n.ID, n, c.ttl(level))
	c.cfg.Logger.Debug("notice", "level", string(level), "message", msg)
	return n
}

func (c *Center) Info(msg string)    { c.Push(LevelInfo, msg) }
func (c *Center) Success(msg string) { c.Push(LevelSuccess, msg) }
func (c *Center) Error(msg string)   { c.Push(LevelError, msg) }

// Active returns the notices that have not expired, oldest first.
func (c *Center) Active() []Notice {
	items := c.items.Items()
	out := make([]Notice, 0, len(items))
	for _, it := range items {
		if n, ok := it.Object.(Notice); ok {
			out = append(out, n)
		}
	}
	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dismiss removes a notice before its TTL runs out.
func (c *Center) Dismiss(id string) {
	c.items.Delete(id)
}

// Clear drops every notice.
func (c *Center) Clear() {
	c.items.Flush()
}
