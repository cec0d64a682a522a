package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalGameID is the locals key RequireGameID stores the validated id under.
const LocalGameID = "gameID"

// RequireGameID rejects requests whose :gameId parameter is not a UUID.
func RequireGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		parsed, err := uuid.Parse(gameID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID must be a UUID",
			})
		}

		// Store the canonical form so lookups don't depend on the client's casing
		c.Locals(LocalGameID, parsed.String())
		return c.Next()
	}
}

// GameID returns the id stored by RequireGameID.
func GameID(c *fiber.Ctx) string {
	gameID, _ := c.Locals(LocalGameID).(string)
	return gameID
}
