package presenters

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageEnvelope struct {
	Results  []string `json:"results"`
	Count    int64    `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
}

func fetchPage(t *testing.T, count int64, target string) pageEnvelope {
	t.Helper()

	app := fiber.New()
	app.Get("/api/v1/recipes", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		return c.JSON(NewPage(c, []string{"a"}, count, page, 5))
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope pageEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestNewPageMiddleLinks(t *testing.T) {
	envelope := fetchPage(t, 12, "/api/v1/recipes?page=2&tags=abc")

	assert.Equal(t, int64(12), envelope.Count)
	require.NotNil(t, envelope.Next)
	assert.Contains(t, *envelope.Next, "page=3")
	assert.Contains(t, *envelope.Next, "tags=abc")
	require.NotNil(t, envelope.Previous)
	assert.Contains(t, *envelope.Previous, "page=1")
}

func TestNewPageSinglePage(t *testing.T) {
	envelope := fetchPage(t, 3, "/api/v1/recipes")

	assert.Nil(t, envelope.Next)
	assert.Nil(t, envelope.Previous)
}

func TestNewPageLastPage(t *testing.T) {
	envelope := fetchPage(t, 10, "/api/v1/recipes?page=2")

	assert.Nil(t, envelope.Next)
	require.NotNil(t, envelope.Previous)
	assert.Contains(t, *envelope.Previous, "page=1")
}
