package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
)

func (s *Suite) signUpRequest(email string) dto.SignUpRequest {
	latitude := 24.8607
	longitude := 67.0011
	return dto.SignUpRequest{
		Role:        "USER",
		FullName:    "Test User",
		Email:       email,
		Password:    "Password123",
		PhoneNumber: "+921234567890",
		DateOfBirth: "1990-05-20",
		Location: &dto.LocationRequest{
			StreetAddress: "12 Main Street",
			Latitude:      &latitude,
			Longitude:     &longitude,
		},
		AccountType: "FREEMIUM",
	}
}

func (s *Suite) postJSON(path string, payload interface{}) *http.Response {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	resp, err := http.Post(s.BaseURL+path, "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	return resp
}

func (s *Suite) signUp(email string) dto.AuthResponse {
	resp := s.postJSON("/auth/signup", s.signUpRequest(email))
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	return authResp
}

func (s *Suite) TestSignUp_Success() {
	resp := s.postJSON("/auth/signup", s.signUpRequest("test@example.com"))
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.True(authResp.Success)
	s.NotEmpty(authResp.AccessToken)
	s.NotEmpty(authResp.RefreshToken)
	s.EqualValues(900, authResp.ExpiresIn)
	s.Require().NotNil(authResp.User)
	s.Equal("test@example.com", authResp.User.Email)
	s.Equal("USER", authResp.User.Role)
	s.NotZero(authResp.User.ID)
}

func (s *Suite) TestSignUp_DuplicateEmail() {
	s.signUp("duplicate@example.com")

	resp := s.postJSON("/auth/signup", s.signUpRequest("duplicate@example.com"))
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestSignUp_InvalidRole() {
	req := s.signUpRequest("role@example.com")
	req.Role = "ADMIN"

	resp := s.postJSON("/auth/signup", req)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestSignUp_MahirWithCategories() {
	catResp, err := http.Get(s.BaseURL + "/api/categories")
	s.Require().NoError(err)
	defer catResp.Body.Close()
	s.Require().Equal(http.StatusOK, catResp.StatusCode)

	var categories []dto.CategoryResponse
	s.Require().NoError(json.NewDecoder(catResp.Body).Decode(&categories))
	s.Require().NotEmpty(categories)

	req := s.signUpRequest("mahir@example.com")
	req.Role = "MAHIR"
	req.ServiceCategoryIDs = []int64{categories[0].ID, 99999}
	req.CustomServiceName = "Emergency plumbing"

	resp := s.postJSON("/auth/signup", req)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))

	s.Require().NotNil(authResp.User)
	s.Equal("MAHIR", authResp.User.Role)
	// The unknown id is dropped silently
	s.Require().Len(authResp.User.ServiceCategories, 1)
	s.Equal(categories[0].ID, authResp.User.ServiceCategories[0].ID)
	s.Equal("Emergency plumbing", authResp.User.CustomServiceName)
}

func (s *Suite) TestSignIn_Success() {
	s.signUp("login@example.com")

	resp := s.postJSON("/auth/signin", dto.SignInRequest{
		Email:    "login@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.NotEmpty(authResp.AccessToken)
	s.Require().NotNil(authResp.User)
	s.Equal("login@example.com", authResp.User.Email)
}

func (s *Suite) TestSignIn_WrongPassword() {
	s.signUp("login@example.com")

	resp := s.postJSON("/auth/signin", dto.SignInRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestSignIn_UnknownEmail() {
	resp := s.postJSON("/auth/signin", dto.SignInRequest{
		Email:    "nobody@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_Success() {
	signUp := s.signUp("refresh@example.com")

	resp := s.postJSON("/auth/refresh", dto.RefreshRequest{RefreshToken: signUp.RefreshToken})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.NotEmpty(authResp.AccessToken)
	s.NotEmpty(authResp.RefreshToken)
	s.Nil(authResp.User)
}

func (s *Suite) TestRefresh_RejectsAccessToken() {
	signUp := s.signUp("refresh@example.com")

	resp := s.postJSON("/auth/refresh", dto.RefreshRequest{RefreshToken: signUp.AccessToken})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCheckSession_Success() {
	signUp := s.signUp("session@example.com")

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/auth/check-session", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signUp.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&authResp))
	s.True(authResp.Success)
	s.Require().NotNil(authResp.User)
	s.Equal("session@example.com", authResp.User.Email)
}

func (s *Suite) TestCheckSession_NoToken() {
	resp, err := http.Get(s.BaseURL + "/auth/check-session")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCheckSession_RejectsRefreshToken() {
	signUp := s.signUp("session@example.com")

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/auth/check-session", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signUp.RefreshToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout() {
	resp := s.postJSON("/auth/logout", struct{}{})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestForgotAndResetPassword() {
	signUp := s.signUp("reset@example.com")

	forgotResp := s.postJSON("/auth/forgot-password", dto.ForgotPasswordRequest{Email: "reset@example.com"})
	forgotResp.Body.Close()
	s.Require().Equal(http.StatusOK, forgotResp.StatusCode)

	var token string
	err := s.Postgres.DB.QueryRow(
		"SELECT token FROM password_reset_tokens WHERE user_id = $1", signUp.User.ID,
	).Scan(&token)
	s.Require().NoError(err)
	s.Require().NotEmpty(token)

	resetResp := s.postJSON("/auth/reset-password", dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "BrandNewPassword1",
	})
	resetResp.Body.Close()
	s.Require().Equal(http.StatusOK, resetResp.StatusCode)

	oldResp := s.postJSON("/auth/signin", dto.SignInRequest{
		Email:    "reset@example.com",
		Password: "Password123",
	})
	oldResp.Body.Close()
	s.Equal(http.StatusUnauthorized, oldResp.StatusCode)

	newResp := s.postJSON("/auth/signin", dto.SignInRequest{
		Email:    "reset@example.com",
		Password: "BrandNewPassword1",
	})
	newResp.Body.Close()
	s.Equal(http.StatusOK, newResp.StatusCode)

	// The token is single use
	replayResp := s.postJSON("/auth/reset-password", dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: "AnotherPassword1",
	})
	replayResp.Body.Close()
	s.Equal(http.StatusUnauthorized, replayResp.StatusCode)
}

func (s *Suite) TestForgotPassword_ReissueKeepsSingleToken() {
	signUp := s.signUp("reissue@example.com")

	first := s.postJSON("/auth/forgot-password", dto.ForgotPasswordRequest{Email: "reissue@example.com"})
	first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)

	var firstToken string
	s.Require().NoError(s.Postgres.DB.QueryRow(
		"SELECT token FROM password_reset_tokens WHERE user_id = $1", signUp.User.ID,
	).Scan(&firstToken))

	second := s.postJSON("/auth/forgot-password", dto.ForgotPasswordRequest{Email: "reissue@example.com"})
	second.Body.Close()
	s.Require().Equal(http.StatusOK, second.StatusCode)

	var count int
	var secondToken string
	s.Require().NoError(s.Postgres.DB.QueryRow(
		"SELECT COUNT(*) FROM password_reset_tokens WHERE user_id = $1", signUp.User.ID,
	).Scan(&count))
	s.Require().NoError(s.Postgres.DB.QueryRow(
		"SELECT token FROM password_reset_tokens WHERE user_id = $1", signUp.User.ID,
	).Scan(&secondToken))

	s.Equal(1, count)
	s.NotEqual(firstToken, secondToken)

	// Only the latest token is honored
	resetResp := s.postJSON("/auth/reset-password", dto.ResetPasswordRequest{
		Token:       firstToken,
		NewPassword: "AnotherPassword1",
	})
	resetResp.Body.Close()
	s.Equal(http.StatusUnauthorized, resetResp.StatusCode)
}

func (s *Suite) TestForgotPassword_UnknownEmail() {
	resp := s.postJSON("/auth/forgot-password", dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	defer resp.Body.Close()

	// Identical outcome to a known email
	s.Equal(http.StatusOK, resp.StatusCode)
}
