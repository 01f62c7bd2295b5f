package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

const (
	wsPingInterval = 25 * time.Second
	wsWriteTimeout = 10 * time.Second
)

type AuthHandler struct {
	authService service.IAuthService
	events      *service.AuthEvents
	upgrader    websocket.Upgrader
	logger      *logrus.Logger
}

func NewAuthHandler(authService service.IAuthService, events *service.AuthEvents, allowedOrigins []string, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		events:      events,
		upgrader:    websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
		logger:      logger,
	}
}

// RegisterRoutes wires the sign-up/sign-in endpoints on public and the
// session endpoints on protected
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
	}

	session := protected.Group("/auth")
	{
		session.POST("/signout", h.SignOut)
		session.GET("/session", h.Session)
		session.GET("/events", h.Events)
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req types.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		unauthorized(c)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		unauthorized(c)
		return
	}

	session, err := h.authService.CurrentSession(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Events streams the user's auth state changes over a websocket. The
// subscription lives exactly as long as the connection.
func (h *AuthHandler) Events(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := h.events.Subscribe(userID)
	defer unsubscribe()

	log := h.logger.WithField("user_id", userID)
	log.Debug("auth event stream opened")
	defer log.Debug("auth event stream closed")

	// read loop ends on client close/error
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(ev service.AuthEvent) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(ev)
	}

	if err := write(service.AuthEvent{Type: service.AuthEventInitialSession, UserID: userID, At: time.Now().UTC()}); err != nil {
		return
	}

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := write(ev); err != nil {
				return
			}
			if ev.Type == service.AuthEventSignedOut {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "signed out")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
