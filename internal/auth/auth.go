package auth

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/armen4ik0/shoes-shop-app1/internal/dbstorage"
	"github.com/armen4ik0/shoes-shop-app1/internal/models"
	"github.com/armen4ik0/shoes-shop-app1/internal/types"
)

const (
	hashSalt       = "k3!shGwf7-1872pdm."
	expireDuration = 30 * time.Minute
	signingKey     = "w'plQRDhj925XCV.mnbd"
)

var ErrTokenWrong = errors.New("wrong auth token")

// HashPassword returns the salted sha1 hex digest stored instead of the
// plain password. The importer uses it too: source files carry passwords in
// the clear.
func HashPassword(password string) string {
	pwdHash := sha1.New()
	pwdHash.Write([]byte(password))
	pwdHash.Write([]byte(hashSalt))
	return fmt.Sprintf("%x", pwdHash.Sum(nil))
}

func CreateUser(ctx context.Context, storage *dbstorage.DBStorage, user models.User) error {
	if !models.ValidRole(user.Role) {
		return fmt.Errorf("unknown role %q", user.Role)
	}
	user.Password = HashPassword(user.Password)
	return storage.CreateUser(ctx, user)
}

// GetToken checks the credentials and issues a JWT carrying the login and
// the role the request gating is decided by.
func GetToken(ctx context.Context, storage *dbstorage.DBStorage, user models.User) (string, error) {
	password := HashPassword(user.Password)
	dbUser, err := storage.GetUser(ctx, user.Login)
	if err != nil {
		return "", err
	}
	if dbUser.Password != password {
		return "", dbstorage.ErrInvalidLoginPassword
	}
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		&types.Claims{
			Login: dbUser.Login,
			Role:  dbUser.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(expireDuration)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		})

	return token.SignedString([]byte(signingKey))
}

// CheckToken validates the access token and returns the login and role it
// was issued for.
func CheckToken(accessToken string) (string, string, error) {
	token, err := jwt.ParseWithClaims(
		accessToken,
		&types.Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(signingKey), nil
		},
	)
	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(*types.Claims); ok && token.Valid {
		return claims.Login, claims.Role, nil
	}

	return "", "", ErrTokenWrong
}
