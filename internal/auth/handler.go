package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/clone-pool-backend/internal/platform/config"
	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"github.com/SlpAus/clone-pool-backend/pkg/token"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Handler 负责唯一管理员的登录。
// 凭据来自启动配置，明文口令在构造时就被bcrypt哈希，内存中不保留原文。
type Handler struct {
	limiter      *LoginLimiter
	username     string
	passwordHash []byte
	tokenTTL     time.Duration
}

// NewHandler 创建登录处理器。
func NewHandler(cfg config.AuthConfig, limiter *LoginLimiter) (*Handler, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("管理员用户名和密码不能为空")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法哈希管理员密码: %w", err)
	}

	return &Handler{
		limiter:      limiter,
		username:     cfg.Username,
		passwordHash: hash,
		tokenTTL:     time.Duration(cfg.TokenTTLHours) * time.Hour,
	}, nil
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 校验管理员凭据并签发JWT。
// 失败计数由限流器维护；Redis不可用时放弃计数而不是阻塞登录。
func (h *Handler) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	limiterUsable := database.IsRedisHealthy()

	if limiterUsable {
		locked, remaining, err := h.limiter.IsLocked(c.Request.Context(), body.Username)
		if err != nil {
			fmt.Printf("警告: 查询登录锁定状态失败: %v\n", err)
		} else if locked {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("失败次数过多，请在 %d 秒后重试", int(remaining.Seconds())+1),
			})
			return
		}
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(h.username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(body.Password)) == nil

	if !usernameOK || !passwordOK {
		if limiterUsable {
			if _, err := h.limiter.RecordFailure(c.Request.Context(), body.Username); err != nil {
				fmt.Printf("警告: 记录登录失败计数失败: %v\n", err)
			}
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
		return
	}

	if limiterUsable {
		if err := h.limiter.Reset(c.Request.Context(), body.Username); err != nil {
			fmt.Printf("警告: 清除登录失败计数失败: %v\n", err)
		}
	}

	t, err := token.GenerateToken(h.username, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    t,
		"username": h.username,
	})
}
