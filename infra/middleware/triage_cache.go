package middleware

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ETag generates and validates ETags for GET responses. The taxonomy
// and rule tables never change within a process, so conditional
// requests against them always hit.
func ETag() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		if method != "GET" && method != "HEAD" {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() >= 400 {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		hash := md5.Sum(body)
		etag := fmt.Sprintf(`"%x"`, hash)
		c.Set("ETag", etag)

		if c.Get("If-None-Match") == etag {
			c.Status(304)
			c.Response().SetBody(nil)
		}

		return nil
	}
}

// PublicCache sets public cache headers for shared data.
func PublicCache(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() < 400 {
			c.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		}

		return nil
	}
}
