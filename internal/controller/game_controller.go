package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, log zerolog.Logger) *GameController {
	return &GameController{gameService: gameService, log: log}
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/", gc.CreateGame)
	router.Get("/", gc.ListGames)

	router.Get("/:gameId", middleware.RequireGameID(), gc.GetGameState)
	router.Delete("/:gameId", middleware.RequireGameID(), gc.DeleteGame)
	router.Get("/:gameId/moves", middleware.RequireGameID(), gc.LegalMoves)
	router.Post("/:gameId/move", middleware.RequireGameID(), gc.SubmitMove)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	games, err := gc.gameService.ListGames()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"games": games,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(middleware.GameID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(middleware.GameID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LegalMoves answers GET /moves?row=&col=. Squares off the board or holding
// nothing the side to move can play yield an empty list, not an error.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	row, rowErr := strconv.Atoi(c.Query("row"))
	col, colErr := strconv.Atoi(c.Query("col"))
	if rowErr != nil || colErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row and col must be integers",
		})
	}

	square := model.Square{Row: row, Col: col}
	moves, err := gc.gameService.LegalMoves(middleware.GameID(c), square)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

func (gc *GameController) SubmitMove(c *fiber.Ctx) error {
	var move model.Move
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	gameID := middleware.GameID(c)
	state, accepted, err := gc.gameService.HandleMove(gameID, move)
	if errors.Is(err, service.ErrPersist) {
		// The move stands in memory and observers have seen it.
		gc.log.Error().Err(err).Str("game_id", gameID).Msg("accepted move not saved")
	} else if err != nil {
		return gc.fail(c, err)
	}

	if !accepted {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"accepted": false,
			"state":    state,
		})
	}
	return c.JSON(fiber.Map{
		"accepted": true,
		"state":    state,
	})
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	gc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
