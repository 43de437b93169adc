package acceptance

import (
	"encoding/json"
	"net/http"

	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
)

func (s *Suite) TestCategories_DefaultsSeeded() {
	resp, err := http.Get(s.BaseURL + "/api/categories")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var categories []dto.CategoryResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&categories))

	s.Len(categories, 10)

	names := make(map[string]bool, len(categories))
	for _, category := range categories {
		s.NotZero(category.ID)
		s.NotEmpty(category.Name)
		names[category.Name] = true
	}
	s.True(names["Plumbing"])
	s.True(names["Other"])
}

func (s *Suite) TestCategories_SecondReadServedFromCache() {
	first, err := http.Get(s.BaseURL + "/api/categories")
	s.Require().NoError(err)
	first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)

	exists, err := s.Redis.Client.Exists(s.ctx, "categories:all").Result()
	s.Require().NoError(err)
	s.EqualValues(1, exists)

	second, err := http.Get(s.BaseURL + "/api/categories")
	s.Require().NoError(err)
	defer second.Body.Close()
	s.Equal(http.StatusOK, second.StatusCode)

	var categories []dto.CategoryResponse
	s.Require().NoError(json.NewDecoder(second.Body).Decode(&categories))
	s.Len(categories, 10)
}
