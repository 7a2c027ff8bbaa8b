package presenters

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Page wraps list results with total count and absolute links to the
// neighbouring pages, or null when the edge is reached.
type Page struct {
	Results  interface{} `json:"results"`
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

func NewPage(c *fiber.Ctx, results interface{}, count int64, page, pageSize int) Page {
	p := Page{
		Results: results,
		Count:   count,
	}
	if int64(page*pageSize) < count {
		p.Next = pageLink(c, page+1)
	}
	if page > 1 {
		p.Previous = pageLink(c, page-1)
	}
	return p
}

func pageLink(c *fiber.Ctx, page int) *string {
	args := []byte(nil)
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		if string(key) == "page" {
			return
		}
		if len(args) > 0 {
			args = append(args, '&')
		}
		args = append(args, key...)
		args = append(args, '=')
		args = append(args, value...)
	})
	link := fmt.Sprintf("%s?page=%d", c.BaseURL()+c.Path(), page)
	if len(args) > 0 {
		link += "&" + string(args)
	}
	return &link
}
