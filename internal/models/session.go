package models

// Session guarda las credenciales emitidas por el backend tras login/signup.
// El core solo la lee como token de capacidad, nunca la muta.
type Session struct {
	AuthToken string `json:"auth_token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// Credentials es el payload de POST /auth/login y /auth/signup.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse es la respuesta del backend a login/signup.
type AuthResponse struct {
	Email     string `json:"email"`
	AuthToken string `json:"authToken"`
	Role      string `json:"role"`
}
