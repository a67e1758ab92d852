package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type option struct {
	Label string `json:"label" validate:"required"`
}

type sample struct {
	Title   string   `json:"title" validate:"required,min=3"`
	Options []option `json:"options" validate:"min=1,dive"`
}

func TestStructUsesJSONFieldPaths(t *testing.T) {
	assert.Nil(t, Struct(&sample{Title: "Sucesiones", Options: []option{{Label: "a"}}}))

	errors := Struct(&sample{Title: "ab", Options: []option{{Label: ""}}})
	require.Len(t, errors, 2)
	assert.Contains(t, errors, "title")
	assert.Contains(t, errors, "options[0].label")
	assert.Equal(t, "title must be at least 3 characters in length", errors["title"])
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/course/:id", func(c *fiber.Ctx) error {
		id, ok := ParamID(c, "id")
		if !ok {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	cases := map[string]int{
		"/course/12":  fiber.StatusOK,
		"/course/0":   fiber.StatusBadRequest,
		"/course/-3":  fiber.StatusBadRequest,
		"/course/abc": fiber.StatusBadRequest,
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
