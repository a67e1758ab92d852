package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"webmatematica/config"
	"webmatematica/models"
)

// Auth issues and checks the HS256 tokens handed out at login
type Auth struct {
	secret []byte
	ttl    time.Duration
}

func NewAuth(cfg *config.Config) *Auth {
	return &Auth{
		secret: []byte(cfg.JWTKey),
		ttl:    time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
}

// GenerateJWT generates a JWT token for the user
func (a *Auth) GenerateJWT(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
		"iat":    now.Unix(),
		"exp":    now.Add(a.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// JWTMiddleware rejects requests without a valid bearer token
func (a *Auth) JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	claims, err := a.parse(authHeader[len("Bearer "):])
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	setLocals(c, claims)
	return c.Next()
}

// OptionalJWT identifies the caller when a valid token is sent and lets anonymous visitors through otherwise
func (a *Auth) OptionalJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if claims, err := a.parse(authHeader[len("Bearer "):]); err == nil {
			setLocals(c, claims)
		}
	}
	return c.Next()
}

func (a *Auth) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}
	if _, ok := claims["userId"].(float64); !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	return claims, nil
}

func setLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	// JWT numbers decode as float64
	userID := claims["userId"].(float64)
	c.Locals("userId", uint(userID))
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
}

// CurrentUserID returns the id stored by JWTMiddleware or OptionalJWT
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	return userID, ok && userID > 0
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
