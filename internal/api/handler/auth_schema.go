package handler

// messageResponse is the error envelope returned on every non-2xx response.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// Field presence for registration is validated by the session service after
// trimming, so blank-but-present values are caught the same way as absent ones.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credentialsResponse mirrors ports.CredentialBundle; owned by the transport
// layer so the JSON contract is not coupled to internal service changes.
type credentialsResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}
