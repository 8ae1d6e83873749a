package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"testimonial_backend/internals/configs"
	"testimonial_backend/internals/features/users/auth/dto"
	"testimonial_backend/internals/features/users/auth/model"
	helper "testimonial_backend/internals/helpers"
)

const (
	accessTTL  = 2 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

// ========================== REGISTER ==========================
// POST /users/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if errs := input.Validate(); len(errs) > 0 {
		return helper.JsonValidationError(c, dto.AsMap(errs))
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	var existing model.UserModel
	if err := db.Where("email = ?", email).Take(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName: strings.TrimSpace(input.UserName),
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "Registration successful", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
	})
}

// ========================== LOGIN ==========================
// POST /users/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input dto.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if errs := input.Validate(); len(errs) > 0 {
		return helper.JsonValidationError(c, dto.AsMap(errs))
	}

	var user model.UserModel
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).Take(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	}

	return issueTokens(db, c, &user, "Login successful")
}

// ========================== LOGIN GOOGLE ==========================
// POST /users/auth/google
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing Google ID token")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google ID token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	var user model.UserModel
	err = db.Where("google_id = ? OR email = ?", claimSet.Sub, email).Take(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first Google sign-in creates the account; password slot gets a
		// random bcrypt hash so email+password login stays closed
		random, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		gid := claimSet.Sub
		user = model.UserModel{
			UserName: claimSet.Name,
			Email:    email,
			Password: string(random),
			GoogleID: &gid,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	default:
		if user.GoogleID == nil {
			gid := claimSet.Sub
			if err := db.Model(&user).Update("google_id", gid).Error; err == nil {
				user.GoogleID = &gid
			}
		}
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	return issueTokens(db, c, &user, "Login successful")
}

// ========================== LOGOUT ==========================
// POST /users/auth/logout
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing token")
	}

	expiredAt := time.Now().Add(accessTTL)
	if claims := parseUnverified(raw); claims != nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}
	if err := db.Create(&model.TokenBlacklist{Token: raw, ExpiredAt: expiredAt}).Error; err != nil {
		log.Printf("[ERROR] blacklist insert: %v", err)
	}

	if rt := helper.GetRefreshTokenFromCookie(c); rt != "" {
		h := computeRefreshHash(rt, configs.JWTRefreshSecret)
		if err := db.Where("token_hash = ?", h).Delete(&model.RefreshToken{}).Error; err != nil {
			log.Printf("[ERROR] refresh delete: %v", err)
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// ========================== REFRESH TOKEN ==========================
// POST /users/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := helper.GetRefreshTokenFromCookie(c)
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	refreshSecret := configs.JWTRefreshSecret
	if refreshSecret == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Missing refresh secret")
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// the hash must still be live in the DB
	h := computeRefreshHash(refreshCookie, refreshSecret)
	var stored model.RefreshToken
	if err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > NOW()", h).Take(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown")
	}

	var user model.UserModel
	if err := db.Take(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	// ROTATE: drop the old token before issuing the new pair
	if err := db.Delete(&stored).Error; err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	return issueTokens(db, c, &user, "Token refreshed")
}

/* ========================== internals ========================== */

func issueTokens(db *gorm.DB, c *fiber.Ctx, user *model.UserModel, message string) error {
	now := time.Now().UTC()

	accessClaims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_id":   user.ID.String(),
		"user_name": user.UserName,
		"email":     user.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	rec := model.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refresh, configs.JWTRefreshSecret),
		ExpiresAt: now.Add(refreshTTL),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}
	if err := db.Create(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setRefreshCookie(c, refresh, now.Add(refreshTTL))

	return helper.JsonOK(c, message, fiber.Map{
		"access_token": access,
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
		},
	})
}

func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

func parseUnverified(raw string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}

func setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"refresh_token", "access_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
			Path:     "/",
		})
	}
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
