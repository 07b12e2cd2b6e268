package auth

import "github.com/golang-jwt/jwt/v5"

// AdminSubject is the only subject the storefront issues tokens for.
const AdminSubject = "admin"

// AdminClaims represents the typed JWT issued to the storefront admin.
type AdminClaims struct {
	jwt.RegisteredClaims
}
