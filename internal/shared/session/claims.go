package session

import "github.com/golang-jwt/jwt/v5"

// Claims lê sub e role do access token sem verificar assinatura nem expiração.
// Só serve para exibir identidade; validade do token é decidida pelo servidor.
func Claims(token string) (sub, role string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ""
	}
	if v, ok := claims["sub"].(string); ok {
		sub = v
	}
	if v, ok := claims["role"].(string); ok {
		role = v
	}
	return sub, role
}
