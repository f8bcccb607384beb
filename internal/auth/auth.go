package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ucampus/campus-events-api/internal/config"
	"github.com/ucampus/campus-events-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const TokenDuration = 24 * time.Hour

// AuthInput carries the raw Cookie header into huma operations that
// authorize per-call via Authorize.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie"`
}

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.SSOClientID,
			ClientSecret: cfg.SSOClientSecret,
			RedirectURL:  cfg.SSORedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.SSOAuthURL,
				TokenURL: cfg.SSOTokenURL,
			},
		},
		db:  db,
		cfg: cfg,
	}
}

// HandleSSOLogin redirects the browser to the campus SSO provider.
func (h *AuthHandler) HandleSSOLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleSSOCallback exchanges the authorization code, pulls the
// userinfo profile, upserts the local account, and issues the session
// cookie.
func (h *AuthHandler) HandleSSOCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(h.cfg.SSOUserInfoURL)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var profile struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	// Only campus accounts get in.
	if h.cfg.SSOAllowedDomain != "" && !strings.HasSuffix(profile.Email, "@"+h.cfg.SSOAllowedDomain) {
		http.Error(w, "Access denied: not a campus account.", http.StatusForbidden)
		return
	}

	var user models.User
	if err := h.db.FirstOrInit(&user, models.User{SSOID: profile.Sub}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	user.Username = profile.Name
	user.Email = profile.Email
	user.Avatar = profile.Picture
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	if err := h.db.Save(&user).Error; err != nil {
		http.Error(w, "Failed to save user", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, jwtToken)
	http.Redirect(w, r, h.cfg.FrontendURL, http.StatusTemporaryRedirect)
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" doc:"Account email" required:"true"`
		Password string `json:"password" doc:"Account password" required:"true"`
	}
}

type LoginResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
}

// HandleLogin is the password fallback for accounts provisioned without
// SSO (service accounts, pre-created admins).
func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if user.PasswordHash == "" {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &LoginResponse{}
	res.SetCookie = (&http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}).String()
	res.Body.Username = user.Username
	res.Body.Role = user.Role
	return res, nil
}

type LogoutRequest struct{}

type LogoutResponse struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

// HandleLogout expires the session cookie. Tokens are stateless, so
// this only clears the browser side.
func (h *AuthHandler) HandleLogout(ctx context.Context, input *LogoutRequest) (*LogoutResponse, error) {
	res := &LogoutResponse{}
	res.SetCookie = (&http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	}).String()
	res.Body.Message = "Logged out"
	return res, nil
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize resolves the calling user for a huma operation: the request
// context first (API-key middleware puts the user there), then the
// session cookie.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	if userID, ok := ctx.Value(UserIDKey).(uint); ok {
		return userID, nil
	}

	value := cookieValue(cookieHeader, "auth_token")
	if value == "" {
		return 0, huma.Error401Unauthorized("Unauthorized: no token found")
	}

	userID, _, err := h.parseToken(value)
	if err != nil {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token")
	}
	return userID, nil
}

// CurrentUser is Authorize plus the account load.
func (h *AuthHandler) CurrentUser(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized: unknown user")
	}
	return &user, nil
}

func (h *AuthHandler) parseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid user_id claim")
	}

	var expiry time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiry = time.Unix(int64(exp), 0)
	}
	return uint(userIDFloat), expiry, nil
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})
}

// cookieValue pulls one cookie out of a raw Cookie header.
func cookieValue(header, name string) string {
	req := http.Request{Header: http.Header{"Cookie": {header}}}
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
