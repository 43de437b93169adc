package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
)

func (s *Suite) createUser(name, email string) dto.UserResponse {
	resp := s.postJSON("/api/users", dto.UserRequest{
		Name:     name,
		Email:    email,
		Password: "Password123",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	return user
}

func (s *Suite) TestUsers_CreateAndGet() {
	created := s.createUser("Test User", "crud@example.com")

	s.Equal("Test User", created.FullName)
	s.Equal("crud@example.com", created.Email)
	s.Equal("USER", created.Role)
	s.NotZero(created.ID)
	// CRUD users carry no subscription tier
	s.Empty(created.AccountType)

	resp, err := http.Get(fmt.Sprintf("%s/api/users/%d", s.BaseURL, created.ID))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal(created.ID, user.ID)
	s.Equal("crud@example.com", user.Email)
}

func (s *Suite) TestUsers_GetAll() {
	s.createUser("First User", "first@example.com")
	s.createUser("Second User", "second@example.com")

	resp, err := http.Get(s.BaseURL + "/api/users")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var users []dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&users))
	s.Len(users, 2)
}

func (s *Suite) TestUsers_GetUnknown() {
	resp, err := http.Get(s.BaseURL + "/api/users/99999")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestUsers_Update() {
	created := s.createUser("Test User", "update@example.com")

	body, err := json.Marshal(dto.UserRequest{
		Name:  "Renamed User",
		Email: "renamed@example.com",
	})
	s.Require().NoError(err)

	req, err := http.NewRequest(
		http.MethodPut,
		fmt.Sprintf("%s/api/users/%d", s.BaseURL, created.ID),
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("Renamed User", user.FullName)
	s.Equal("renamed@example.com", user.Email)
}

func (s *Suite) TestUsers_Delete() {
	created := s.createUser("Test User", "delete@example.com")

	req, err := http.NewRequest(
		http.MethodDelete,
		fmt.Sprintf("%s/api/users/%d", s.BaseURL, created.ID),
		nil,
	)
	s.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/users/%d", s.BaseURL, created.ID))
	s.Require().NoError(err)
	defer getResp.Body.Close()
	s.Equal(http.StatusNotFound, getResp.StatusCode)
}
