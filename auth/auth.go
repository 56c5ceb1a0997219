package auth

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"vroomly/db"
	"vroomly/globals"
	"vroomly/middleware"
	"vroomly/models"
	"vroomly/rdx"
	"vroomly/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Register creates an account. The password is stored only as a bcrypt
// hash.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"username": input.Username})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		UserID:    "user_" + utils.GetUUID(),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"userid": user.UserID}, "Account created", nil)
}

// Login verifies credentials, issues a bearer token, and marks the user's
// session active. The active session entry is what the bookings pages
// check before serving anything.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var storedUser models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": input.Username}).Decode(&storedUser); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.SetSession(ctx, storedUser.UserID, tokenString); err != nil {
		log.Printf("session storage failed: %v", err)
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)
	if err != nil {
		log.Printf("last_login update failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":  tokenString,
		"userid": storedUser.UserID,
	}, "Login successful", nil)
}

// Logout clears the user's session; their bookings pages start redirecting
// again until the next login.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	if err := rdx.ClearSession(r.Context(), userID); err != nil {
		log.Printf("session clear failed: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// SessionMessage hands the client its pending one-shot message, clearing
// it in the same step so a reload never shows it twice.
func SessionMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key, _ := r.Context().Value(globals.UserIDKey).(string)
	if key == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		key = host
	}
	msg := rdx.PopAuthMessage(r.Context(), key)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": msg})
}
