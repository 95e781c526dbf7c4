package middleware

import (
	"net/http"
	"strings"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"
	"pgstay-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
)

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB, redis services.InterfaceRedisService) {
	jwtService = services.NewJWTService(cfg, db)
	redisService = redis
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// resolveClaims 验证令牌并提取声明。
// 缺少授权头返回401，令牌无效/过期/已注销返回403。
func resolveClaims(c *gin.Context) *services.JWTClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	// 提取token
	tokenString := extractToken(authHeader)
	claims, err := jwtService.ExtractClaims(tokenString)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Invalid or expired token",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	// 检查令牌是否已通过注销加入黑名单
	if redisService != nil && claims.ID != "" {
		blacklisted, err := redisService.IsTokenBlacklisted(claims.ID)
		if err == nil && blacklisted {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Token has been revoked",
				"data":    nil,
			})
			c.Abort()
			return nil
		}
	}

	return claims
}

// setPrincipal 将解析出的用户信息存储到请求上下文
func setPrincipal(c *gin.Context, claims *services.JWTClaims) {
	c.Set("userID", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	c.Set("claims", claims)
}

// Authenticate 验证任意已登录用户
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := resolveClaims(c)
		if claims == nil {
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// AuthenticateLandlord 验证房东权限
func AuthenticateLandlord() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := resolveClaims(c)
		if claims == nil {
			return
		}

		if claims.Role != models.RoleLandlord {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires landlord role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// AuthenticateTenant 验证租客权限
func AuthenticateTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := resolveClaims(c)
		if claims == nil {
			return
		}

		if claims.Role != models.RoleTenant {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires tenant role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}
