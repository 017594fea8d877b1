package aspentest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Header names understood by the fake service.
const (
	HeaderAppKey    = "X-PRO-Auth-App"
	HeaderPayload   = "X-PRO-Auth-Payload"
	HeaderRequestID = "X-PRO-Request-Id"
)

// MaxClockSkew is how far a payload epoch may drift from the server clock.
const MaxClockSkew = 5 * time.Minute

var pinPattern = regexp.MustCompile(`^[0-9]{4,6}$`)

// Claims is the payload the fake service expects in X-PRO-Auth-Payload.
type Claims struct {
	Nonce    string `json:"Nonce"`
	Epoch    int64  `json:"Epoch"`
	Token    string `json:"Token,omitempty"`
	DeviceID string `json:"DeviceId,omitempty"`
	Username string `json:"Username,omitempty"`
	gojwt.RegisteredClaims
}

// Exchange is one request handled by the Server together with its outcome.
type Exchange struct {
	Call
	Status int
	Claims *Claims
}

type user struct {
	docType        string
	docNumber      string
	password       string
	pin            string
	activationCode string
	tokensIssued   int
}

type forcedReply struct {
	status int
	body   string
}

// Server is an in-process fake of the Aspen service.
type Server struct {
	appKey    string
	appSecret string

	srv *httptest.Server

	mu        sync.Mutex
	now       func() time.Time
	users     map[string]*user
	tokens    map[string]*user
	nonces    map[string]bool
	exchanges []Exchange
	forced    []forcedReply
}

// NewServer starts a fake service that accepts requests signed with the
// given app credentials.
func NewServer(appKey, appSecret string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		appKey:    appKey,
		appSecret: appSecret,
		now:       time.Now,
		users:     make(map[string]*user),
		tokens:    make(map[string]*user),
		nonces:    make(map[string]bool),
	}

	engine := gin.New()
	engine.Use(s.record(), s.forcedReplies(), s.authenticate())

	engine.POST("/auth/signin", s.signIn)

	authed := engine.Group("/", s.requireSession())
	authed.POST("/users/pin", s.setPin)
	authed.PATCH("/users/pin", s.updatePin)
	authed.POST("/users/activation-code", s.requestActivationCode)
	authed.POST("/tokens/request", s.requestToken)

	s.srv = httptest.NewServer(engine)
	return s
}

// URL returns the base URL of the fake service.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// SetClock overrides the clock used to check payload epochs.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddUser registers credentials accepted by auth/signin.
func (s *Server) AddUser(docType, docNumber, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[docType+":"+docNumber] = &user{docType: docType, docNumber: docNumber, password: password}
}

// ActivationCode returns the last activation code sent to the user, or "".
func (s *Server) ActivationCode(docType, docNumber string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[docType+":"+docNumber]; ok {
		return u.activationCode
	}
	return ""
}

// Pin returns the transactional PIN currently set for the user, or "".
func (s *Server) Pin(docType, docNumber string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[docType+":"+docNumber]; ok {
		return u.pin
	}
	return ""
}

// TokensIssued returns how many single-use tokens the user requested.
func (s *Server) TokensIssued(docType, docNumber string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[docType+":"+docNumber]; ok {
		return u.tokensIssued
	}
	return 0
}

// FailNext makes the next request answer with status and body, before any
// authentication or routing.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = append(s.forced, forcedReply{status: status, body: body})
}

// Exchanges returns a copy of every request handled so far.
func (s *Server) Exchanges() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if id := c.GetHeader(HeaderRequestID); id != "" {
			c.Header(HeaderRequestID, id)
		}

		c.Next()

		headers := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			if len(v) > 0 {
				headers[k] = v[0]
			}
		}
		ex := Exchange{
			Call: Call{
				Method:  c.Request.Method,
				Path:    c.Request.URL.Path,
				Headers: headers,
			},
			Status: c.Writer.Status(),
		}
		if len(body) > 0 {
			ex.Body = body
		}
		if claims, ok := c.Get("claims"); ok {
			ex.Claims = claims.(*Claims)
		}

		s.mu.Lock()
		s.exchanges = append(s.exchanges, ex)
		s.mu.Unlock()
	}
}

func (s *Server) forcedReplies() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		var reply *forcedReply
		if len(s.forced) > 0 {
			reply = &s.forced[0]
			s.forced = s.forced[1:]
		}
		s.mu.Unlock()

		if reply != nil {
			c.Data(reply.status, "application/json", []byte(reply.body))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderAppKey) != s.appKey {
			abort(c, http.StatusUnauthorized, "unknown application")
			return
		}

		claims, err := s.parsePayload(c.GetHeader(HeaderPayload))
		if err != nil {
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func (s *Server) parsePayload(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errors.New("payload header required")
	}

	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(raw, claims, func(*gojwt.Token) (interface{}, error) {
		return []byte(s.appSecret), nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid payload signature")
	}
	if claims.Nonce == "" {
		return nil, errors.New("payload nonce required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	epoch := time.Unix(claims.Epoch, 0)
	if d := s.now().Sub(epoch); d > MaxClockSkew || d < -MaxClockSkew {
		return nil, fmt.Errorf("payload epoch out of range")
	}
	if s.nonces[claims.Nonce] {
		return nil, errors.New("payload nonce already used")
	}
	s.nonces[claims.Nonce] = true
	return claims, nil
}

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := c.MustGet("claims").(*Claims)

		s.mu.Lock()
		u, ok := s.tokens[claims.Token]
		s.mu.Unlock()

		if claims.Token == "" || !ok {
			abort(c, http.StatusUnauthorized, "session token required")
			return
		}
		c.Set("user", u)
		c.Next()
	}
}

func (s *Server) signIn(c *gin.Context) {
	var body struct {
		DocType   string
		DocNumber string
		Password  string
		DeviceId  string
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[body.DocType+":"+body.DocNumber]
	if !ok || u.password != body.Password {
		abort(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = u
	c.JSON(http.StatusOK, gin.H{"AuthToken": token})
}

func (s *Server) setPin(c *gin.Context) {
	var body struct {
		PinNumber      string
		ActivationCode string
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "malformed body")
		return
	}
	if body.PinNumber == "" || body.ActivationCode == "" {
		abort(c, http.StatusBadRequest, "PinNumber and ActivationCode are required")
		return
	}
	if !pinPattern.MatchString(body.PinNumber) {
		abort(c, http.StatusBadRequest, "PinNumber must be 4 to 6 digits")
		return
	}

	u := c.MustGet("user").(*user)

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.activationCode == "" || u.activationCode != body.ActivationCode {
		abort(c, http.StatusBadRequest, "invalid activation code")
		return
	}
	u.pin = body.PinNumber
	u.activationCode = ""
	c.Status(http.StatusOK)
}

func (s *Server) updatePin(c *gin.Context) {
	var body struct {
		CurrentValue string
		NewValue     string
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, "malformed body")
		return
	}
	if body.CurrentValue == "" || body.NewValue == "" {
		abort(c, http.StatusBadRequest, "CurrentValue and NewValue are required")
		return
	}
	if !pinPattern.MatchString(body.NewValue) {
		abort(c, http.StatusBadRequest, "NewValue must be 4 to 6 digits")
		return
	}

	u := c.MustGet("user").(*user)

	s.mu.Lock()
	defer s.mu.Unlock()

	if u.pin == "" || u.pin != body.CurrentValue {
		abort(c, http.StatusBadRequest, "current PIN does not match")
		return
	}
	u.pin = body.NewValue
	c.Status(http.StatusOK)
}

func (s *Server) requestActivationCode(c *gin.Context) {
	u := c.MustGet("user").(*user)

	s.mu.Lock()
	u.activationCode = fmt.Sprintf("%06d", uuid.New().ID()%1000000)
	s.mu.Unlock()

	c.Status(http.StatusAccepted)
}

func (s *Server) requestToken(c *gin.Context) {
	u := c.MustGet("user").(*user)

	s.mu.Lock()
	u.tokensIssued++
	s.mu.Unlock()

	c.Status(http.StatusAccepted)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"Message": message})
}
