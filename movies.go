/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Cinemaster Movie Game
//
// A movie is drawn at random from the catalog and the player has a fixed
// number of guesses, set by the chosen difficulty, to name it. Each wrong
// guess unlocks another clue: director, year, genres, lead actor, role and
// finally the title's initial.
//
// Features:
// - One hub per player cookie at /path and /path/ws; every open tab of the
//   same player shares the round
// - Commands are processed one at a time by the hub's run loop, which owns
//   the player's game.Session
// - Titles for the guess dropdown served as JSON from /path/titles
// - Hubs auto-reaped after configurable idle timeout
// - Player IDs are random UUIDs stored in a cookie
// - In-browser QR button to share the game URL, backed by go-qrcode

package main

import (
	"context"
	cryptorand "crypto/rand"
	_ "embed"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/cinemaster/catalog"
	"github.com/Seednode/cinemaster/game"
)

var _ game.Pool = (*catalog.Catalog)(nil)

// Messages coming from clients
type ClientMessage struct {
	Type       string `json:"type"`                 // "start", "guess", "abandon", "reset"
	Difficulty string `json:"difficulty,omitempty"` // start
	Title      string `json:"title,omitempty"`      // guess
}

// StateMessage describes the player's round after every change.
type StateMessage struct {
	Type        string      `json:"type"`                 // "state"
	Status      string      `json:"status"`               // idle, active, won, lost, abandoned
	Difficulty  string      `json:"difficulty,omitempty"` // set once a round has started
	Remaining   int         `json:"remaining"`
	MaxAttempts int         `json:"max_attempts"`
	Clues       []game.Clue `json:"clues,omitempty"` // every slot, locked ones without value
}

// ResultMessage reports the outcome of a guess or an abandon.
type ResultMessage struct {
	Type      string         `json:"type"`    // "result"
	Outcome   string         `json:"outcome"` // incorrect, won, lost, abandoned
	Guess     string         `json:"guess,omitempty"`
	Remaining int            `json:"remaining"`
	Answer    *catalog.Movie `json:"answer,omitempty"` // only once the round is over
	Message   string         `json:"message"`
}

// SimpleMessage is for generic notifications ("error").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type command struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	catalog *catalog.Catalog
	session *game.Session

	clients map[*Client]bool

	register chan *Client
	unreg    chan *Client
	commands chan command
	done     chan struct{}
	stopOnce sync.Once

	mu sync.RWMutex

	lastActive time.Time
	closed     bool
}

func newHub(playerID string, cat *catalog.Catalog, rng *rand.Rand) *Hub {
	return &Hub{
		id:         playerID,
		catalog:    cat,
		session:    game.New(rng),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.closed {
				close(c.send)
				_ = c.conn.Close()
				h.mu.Unlock()

				continue
			}
			h.lastActive = time.Now()
			h.clients[c] = true
			h.sendLocked(c, h.stateMessage())
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cfg, cmd)
		}
	}
}

// handleCommand applies one client command to the session. Only the run
// loop calls it, so the session is never touched concurrently.
func (h *Hub) handleCommand(cfg *Config, cmd command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	var err error

	switch cmd.msg.Type {
	case "start":
		err = h.startLocked(cfg, cmd.msg.Difficulty)
	case "guess":
		err = h.guessLocked(cfg, cmd.msg.Title)
	case "abandon":
		err = h.abandonLocked(cfg)
	case "reset":
		err = h.session.Reset()
	default:
		return
	}

	if err != nil {
		h.sendLocked(cmd.client, SimpleMessage{
			Type:    "error",
			Message: errorText(err),
		})

		return
	}

	h.broadcastLocked(h.stateMessage())
}

func (h *Hub) startLocked(cfg *Config, label string) error {
	d, err := game.ParseDifficulty(label)
	if err != nil {
		return err
	}

	if err := h.session.Start(d, h.catalog); err != nil {
		return err
	}

	logf(cfg, "GAMES: Player %s started a round on %s", h.id, d)

	return nil
}

func (h *Hub) guessLocked(cfg *Config, title string) error {
	out, err := h.session.Evaluate(title)
	if err != nil {
		return err
	}

	result := resultMessage(out)
	result.Guess = title

	switch out.Kind {
	case game.OutcomeWon:
		logf(cfg, "GAMES: Player %s guessed %q with %d attempts left", h.id, out.Target.Title, out.Remaining)
	case game.OutcomeLost:
		logf(cfg, "GAMES: Player %s ran out of attempts on %q", h.id, out.Target.Title)
	}

	h.broadcastLocked(result)

	return nil
}

func (h *Hub) abandonLocked(cfg *Config) error {
	out, err := h.session.Abandon()
	if err != nil {
		return err
	}

	logf(cfg, "GAMES: Player %s abandoned %q", h.id, out.Target.Title)

	h.broadcastLocked(resultMessage(out))

	return nil
}

func resultMessage(out game.Outcome) ResultMessage {
	msg := ResultMessage{
		Type:      "result",
		Outcome:   out.Kind.String(),
		Remaining: out.Remaining,
		Answer:    out.Target,
	}

	switch out.Kind {
	case game.OutcomeIncorrect:
		msg.Message = "That's not the movie."
	case game.OutcomeWon:
		msg.Message = "Correct! It was " + out.Target.Title + "."
	case game.OutcomeLost:
		msg.Message = "Out of attempts. The answer was " + out.Target.Title + "."
	case game.OutcomeAbandoned:
		msg.Message = "Round abandoned. The answer was " + out.Target.Title + "."
	}

	return msg
}

func errorText(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyPool):
		return "No movies are loaded, so a round cannot start."
	case errors.Is(err, game.ErrUnknownDifficulty):
		return "Pick easy, medium or hard."
	case errors.Is(err, game.ErrInvalidState):
		return "That isn't possible right now."
	}

	return err.Error()
}

func (h *Hub) stateMessage() StateMessage {
	msg := StateMessage{
		Type:        "state",
		Status:      h.session.State().String(),
		Remaining:   h.session.Remaining(),
		MaxAttempts: h.session.MaxAttempts(),
		Clues:       h.session.Clues(),
	}

	if h.session.State() != game.Idle {
		msg.Difficulty = h.session.Difficulty().String()
	}

	return msg
}

// sendLocked assumes h.mu is already held.
func (h *Hub) sendLocked(c *Client, msg any) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcastLocked assumes h.mu is already held.
func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		h.sendLocked(client, msg)
	}
}

// closeAll disconnects all clients of this hub and stops its run loop.
func (h *Hub) closeAll() {
	h.stopOnce.Do(func() {
		close(h.done)
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "cinemaster_id"

// getOrSetPlayerID returns the player's cookie value, issuing a new one if
// needed. The new cookie is set on w and also returned as a header set for
// handlers that hijack the connection.
func getOrSetPlayerID(cfg *Config, w http.ResponseWriter, r *http.Request) (string, http.Header) {
	if c, err := r.Cookie(playerCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value, nil
		}
	}

	id := uuid.NewString()

	cookie := &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     cfg.prefix + "/",
		HttpOnly: true,
		Secure:   cfg.scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}

	http.SetCookie(w, cookie)

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return id, header
}

// GameManager holds one hub per player ID.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	catalog     *catalog.Catalog
	idleTimeout time.Duration
	seed        int64
	seq         atomic.Uint64
}

func newGameManager(ctx context.Context, cat *catalog.Catalog, idleTimeout time.Duration, seed int64) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		catalog:     cat,
		idleTimeout: idleTimeout,
		seed:        seed,
	}

	if idleTimeout > 0 {
		go gm.reaperLoop(ctx)
	}

	go func() {
		<-ctx.Done()
		gm.closeAll()
	}()

	return gm
}

// newRand seeds a hub's random source. A fixed seed makes the sequence of
// targets reproducible per hub creation order.
func (gm *GameManager) newRand() *rand.Rand {
	n := gm.seq.Add(1)

	if gm.seed != 0 {
		return rand.New(rand.NewPCG(uint64(gm.seed), n))
	}

	var seed [32]byte
	_, _ = cryptorand.Read(seed[:])

	return rand.New(rand.NewChaCha8(seed))
}

func (gm *GameManager) getHub(cfg *Config, playerID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[playerID]; ok {
		return hub
	}

	hub := newHub(playerID, gm.catalog, gm.newRand())
	gm.hubs[playerID] = hub
	go hub.run(cfg)

	logf(cfg, "GAMES: Created hub for player %s", playerID)

	return hub
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop(ctx context.Context) {
	ticker := time.NewTicker(max(gm.idleTimeout/2, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

func (gm *GameManager) closeAll() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	for id, hub := range gm.hubs {
		delete(gm.hubs, id)
		hub.closeAll()
	}
}

// WebSocket handler that picks the hub based on the player cookie
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		playerID, header := getOrSetPlayerID(cfg, w, r)

		conn, err := upgrader.Upgrade(w, r, header)
		if err != nil {
			logf(cfg, "ERROR: Upgrade for %s failed: %v", realIP(r), err)
			return
		}

		hub := gm.getHub(cfg, playerID)

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			_ = conn.Close()
			return
		}

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unreg <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "start", "guess", "abandon", "reset":
			select {
			case h.commands <- command{client: c, msg: msg}:
			case <-h.done:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")
	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func serveTitles(cfg *Config, cat *catalog.Catalog, errs chan<- error) httprouter.Handle {
	titles := cat.Titles()
	if titles == nil {
		titles = []string{}
	}

	body, _ := json.Marshal(titles)

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(cfg, w)

		written, err := w.Write(body)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Title list (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// ---- Static file paths ----

//go:embed movies/index.html
var indexHTML []byte

//go:embed movies/app.css
var cinemasterCSS []byte

//go:embed movies/app.js
var cinemasterJS []byte

func staticHandler(cfg *Config, contentType string, data []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)
		_, _ = w.Write(data)
	}
}

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)
		_, _ = getOrSetPlayerID(cfg, w, r)
		_, _ = w.Write(indexHTML)
	}
}

// registerMovieGame sets up routes so that:
//   - $path           → HTML client
//   - $path/ws        → WebSocket for the player's hub
//   - $path/titles    → JSON list of guessable titles
//   - $path/qr        → PNG QR code for the game URL
func registerMovieGame(ctx context.Context, cfg *Config, cat *catalog.Catalog, path string, mux *httprouter.Router, errs chan<- error) {
	gm := newGameManager(ctx, cat, cfg.sessionTimeout, cfg.seed)

	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	mux.GET(cfg.prefix+"/assets/movies/app.css", staticHandler(cfg, "text/css; charset=utf-8", cinemasterCSS))
	mux.GET(cfg.prefix+"/assets/movies/app.js", staticHandler(cfg, "application/javascript; charset=utf-8", cinemasterJS))

	mux.GET(cfg.prefix+path+"/ws", serveWSForManager(cfg, gm))
	mux.GET(cfg.prefix+path+"/titles", serveTitles(cfg, cat, errs))
	mux.GET(cfg.prefix+path+"/qr", qrHandler)
}
