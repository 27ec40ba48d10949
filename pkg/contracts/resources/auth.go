package resources

// LoginRequest é o payload de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token é a resposta de /auth/login e /auth/refresh.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest é o payload de POST /auth/register. Dob no formato YYYY-MM-DD.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Dob      string `json:"dob"`
}

type RegisterResponse struct {
	Message   string    `json:"message"`
	CreatedAt Timestamp `json:"created_at"`
}
