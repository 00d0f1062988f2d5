package controllers

import (
	"Wordrush/logger"
	"Wordrush/middleware"
	"Wordrush/services/game"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoomController exposes the game engine over HTTP. Every handler acts on
// behalf of the session's player id
type RoomController struct {
	Engine *game.Engine
}

type createRoomBody struct {
	DisplayName      string `json:"display_name" binding:"required"`
	RoomType         string `json:"room_type"`
	MinPlayers       int    `json:"min_players"`
	MaxPlayers       int    `json:"max_players"`
	PreferredPlayers int    `json:"preferred_players"`
}

type joinBody struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type readyBody struct {
	Ready *bool `json:"ready" binding:"required"`
}

type wordBody struct {
	Word  string `json:"word" binding:"required"`
	Grand bool   `json:"grand"`
}

func identity(c *gin.Context, displayName string) game.Identity {
	return game.Identity{
		PlayerID:    middleware.PlayerID(c),
		UserID:      middleware.UserID(c),
		DisplayName: displayName,
	}
}

// respondError writes engine rejections with their status. Anything else
// is left to utils.ErrorHandler
func respondError(c *gin.Context, err error) {
	if rej, ok := game.AsRejection(err); ok {
		c.JSON(rej.Status, gin.H{"error": rej.Reason, "code": rej.Code})
		return
	}
	logger.Errorf("[ROOMS] %s %s: %v", c.Request.Method, c.FullPath(), err)
	_ = c.Error(err)
}

func badRequest(c *gin.Context, err error) {
	logger.Debugf("[ROOMS] bad request body on %s: %v", c.FullPath(), err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": game.ErrInvalidInput.Code})
}

// @Summary Create a room
// @Description Opens a waiting room with the caller as host
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body createRoomBody true "Room settings"
// @Success 201 {object} game.Snapshot
// @Failure 400 {object} object{error=string,code=string}
// @Router /rooms [post]
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var body createRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := rc.Engine.CreateRoom(c.Request.Context(), game.CreateRoomRequest{
		Identity:         identity(c, body.DisplayName),
		RoomType:         body.RoomType,
		MinPlayers:       body.MinPlayers,
		MaxPlayers:       body.MaxPlayers,
		PreferredPlayers: body.PreferredPlayers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// @Summary Join a public room
// @Description Seats the caller in the best open public room, creating one when none fits
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body joinBody true "Player"
// @Success 200 {object} game.Snapshot
// @Router /rooms/matchmaking [post]
func (rc *RoomController) Matchmake(c *gin.Context) {
	var body joinBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := rc.Engine.Matchmake(c.Request.Context(), identity(c, body.DisplayName))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Join a room by code
// @Tags rooms
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param body body joinBody true "Player"
// @Success 200 {object} game.Snapshot
// @Failure 404 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /rooms/join/{code} [post]
func (rc *RoomController) JoinRoom(c *gin.Context) {
	var body joinBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := rc.Engine.JoinRoom(c.Request.Context(), c.Param("code"), identity(c, body.DisplayName))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Leave a room
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{room_id}/leave [post]
func (rc *RoomController) LeaveRoom(c *gin.Context) {
	snap, err := rc.Engine.LeaveRoom(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"room_deleted": true})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Toggle ready in a waiting room
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room id"
// @Param body body readyBody true "Ready flag"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{room_id}/ready [post]
func (rc *RoomController) SetReady(c *gin.Context) {
	var body readyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := rc.Engine.SetReady(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c), *body.Ready)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Start the match
// @Description Host only. Moves the room to the tutorial, or straight to the first round
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.Snapshot
// @Failure 403 {object} object{error=string,code=string}
// @Router /rooms/{room_id}/start [post]
func (rc *RoomController) StartMatch(c *gin.Context) {
	snap, err := rc.Engine.StartMatch(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Mark the tutorial as done
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{room_id}/tutorial [post]
func (rc *RoomController) CompleteTutorial(c *gin.Context) {
	snap, err := rc.Engine.CompleteTutorial(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Submit a word
// @Description Mini, bonus or grand word. A lost race is a 200 with accepted=false
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room id"
// @Param body body wordBody true "Word"
// @Success 200 {object} game.SubmitResult
// @Failure 400 {object} object{error=string,code=string}
// @Failure 429 {object} object{error=string,code=string}
// @Router /rooms/{room_id}/words [post]
func (rc *RoomController) SubmitWord(c *gin.Context) {
	var body wordBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	res, err := rc.Engine.SubmitWord(c.Request.Context(), game.SubmitRequest{
		RoomID:   c.Param("room_id"),
		PlayerID: middleware.PlayerID(c),
		Word:     body.Word,
		Grand:    body.Grand,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Vote to shuffle the letters
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.ShuffleResult
// @Router /rooms/{room_id}/shuffle [post]
func (rc *RoomController) VoteShuffle(c *gin.Context) {
	res, err := rc.Engine.VoteShuffle(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Poll the room state
// @Description Refreshes the caller's liveness and advances timers
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{room_id}/state [get]
func (rc *RoomController) PollState(c *gin.Context) {
	snap, err := rc.Engine.PollState(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Reset a finished room for another match
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{room_id}/play-again [post]
func (rc *RoomController) PlayAgain(c *gin.Context) {
	snap, err := rc.Engine.PlayAgain(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Rounds of the current match
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} object{rounds=[]models.RoundHistoryEntry}
// @Router /rooms/{room_id}/rounds [get]
func (rc *RoomController) RoundHistory(c *gin.Context) {
	rounds, err := rc.Engine.RoundHistory(c.Request.Context(), c.Param("room_id"), middleware.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}
