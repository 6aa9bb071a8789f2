package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pokerroom.com/server/game"
	"pokerroom.com/server/util"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()

var manager *game.Manager

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createSessionRequest struct {
	OwnerID    string `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	MaxPlayers int    `json:"max_players"`
}

type sessionCreated struct {
	SessionID  string `json:"session_id"`
	MaxPlayers int    `json:"max_players"`
}

// RunRestServer serves the session management API: create a session, fetch
// a snapshot, health. Gameplay itself goes over the socket, not here.
func RunRestServer(addr string, m *game.Manager) {
	newRouter(m).Run(addr)
}

func newRouter(m *game.Manager) *gin.Engine {
	manager = m
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})
	r.POST("/sessions", createSession)
	r.GET("/sessions", listSessions)
	r.GET("/sessions/:sessionID", getSession)
	r.GET("/sessions/:sessionID/can-join", canJoinSession)
	return r
}

func createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.BindJSON(&req); err != nil {
		restLogger.Error().Msgf("Failed to parse create session request. Error: %v", err)
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil || req.OwnerName == "" {
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: "owner_id and owner_name are required",
		})
		return
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = util.TableServerEnvironment.GetDefaultMaxPlayers()
	}

	session, err := manager.CreateSession(c.Request.Context(), ownerID, req.OwnerName, req.MaxPlayers)
	if err != nil {
		restLogger.Error().Msgf("Unable to create session: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "failed to create session",
		})
		return
	}

	restLogger.Info().Str("sessionID", session.ID.String()).Msg("Session created over REST")
	c.JSON(http.StatusOK, sessionCreated{
		SessionID:  session.ID.String(),
		MaxPlayers: session.MaxPlayers,
	})
}

func listSessions(c *gin.Context) {
	ids, err := manager.Keys(c.Request.Context())
	if err != nil {
		restLogger.Error().Msgf("Unable to list sessions: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "failed to list sessions",
		})
		return
	}
	sessionIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		sessionIDs = append(sessionIDs, id.String())
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessionIDs})
}

func getSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: "malformed session id",
		})
		return
	}
	session, err := manager.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Cause(err) == game.ErrSessionNotFound {
			c.IndentedJSON(http.StatusNotFound, appError{
				Code:    http.StatusNotFound,
				Message: "session not found",
			})
			return
		}
		restLogger.Error().Msgf("Unable to load session: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "failed to load session",
		})
		return
	}
	// The lobby listing never leaks hole cards.
	c.JSON(http.StatusOK, session.View(uuid.Nil))
}

func canJoinSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: "malformed session id",
		})
		return
	}
	session, err := manager.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Cause(err) == game.ErrSessionNotFound {
			c.JSON(http.StatusOK, gin.H{"can_join": false})
			return
		}
		restLogger.Error().Msgf("Unable to load session: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "failed to load session",
		})
		return
	}
	freeSeats := 0
	for _, seat := range session.Seats {
		if seat == nil {
			freeSeats++
		}
	}
	c.JSON(http.StatusOK, gin.H{"can_join": freeSeats > 0, "free_seats": freeSeats})
}
