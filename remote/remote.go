// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package remote provides an HTTP and WebSocket interface to a
// [viewer.Viewer], so other processes can query and drive the selection.
// Every request runs on the owning goroutine of the viewer through
// its [viewer.Loop].
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"cogentcore.org/cadview/selection"
	"cogentcore.org/cadview/viewer"
	"cogentcore.org/core/base/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Selection is the JSON form of the current selection.
type Selection struct {

	// Objects are the names of the selected logical objects.
	Objects []string `json:"objects"`

	// Parts are the names of the selected renderables.
	Parts []string `json:"parts"`
}

// HighlightRequest is the body of a highlight request.
type HighlightRequest struct {
	Names []string `json:"names"`
}

// HighlightResponse is the response to a highlight request.
type HighlightResponse struct {

	// Missing are the requested names that match no object.
	Missing []string `json:"missing"`

	Selection Selection `json:"selection"`
}

// Server serves the selection of a viewer.
type Server struct {
	Viewer *viewer.Viewer

	router   chi.Router
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]chan Selection
}

// NewServer returns a new [Server] for the given viewer. It must be
// called on the owning goroutine of the viewer.
func NewServer(vw *viewer.Viewer) *Server {
	sv := &Server{Viewer: vw, clients: map[uuid.UUID]chan Selection{}}
	r := chi.NewRouter()
	r.Get("/selection", sv.getSelection)
	r.Post("/highlight", sv.postHighlight)
	r.Post("/clear", sv.postClear)
	r.Get("/events", sv.events)
	sv.router = r
	vw.OnChange(func(sel []selection.Renderable) {
		sv.broadcast(sv.selection())
	})
	return sv
}

func (sv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sv.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the given address until the context is done.
func (sv *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: sv}
	go func() {
		<-ctx.Done()
		errors.Log(hs.Close())
	}()
	slog.Info("remote: listening", "addr", addr)
	err := hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// selection must be called on the owning goroutine.
func (sv *Server) selection() Selection {
	sel := Selection{Objects: sv.Viewer.SelectedNames(), Parts: []string{}}
	for _, r := range sv.Viewer.SelectedRenderables() {
		sel.Parts = append(sel.Parts, renderableName(r))
	}
	return sel
}

func renderableName(r selection.Renderable) string {
	return fmt.Sprint(r)
}

func (sv *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	var sel Selection
	if err := sv.Viewer.Loop.Do(r.Context(), func() { sel = sv.selection() }); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (sv *Server) postHighlight(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp := HighlightResponse{Missing: []string{}}
	err := sv.Viewer.Loop.Do(r.Context(), func() {
		if missing := sv.Viewer.HighlightNames(req.Names...); missing != nil {
			resp.Missing = missing
		}
		resp.Selection = sv.selection()
	})
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (sv *Server) postClear(w http.ResponseWriter, r *http.Request) {
	if err := sv.Viewer.Loop.Do(r.Context(), sv.Viewer.ClearHighlights); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// events streams the selection to a WebSocket client: the current
// selection first, then the new selection after every change.
func (sv *Server) events(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	defer conn.Close()

	id := uuid.New()
	ch := make(chan Selection, 16)
	var first Selection
	err = sv.Viewer.Loop.Do(r.Context(), func() {
		first = sv.selection()
		sv.mu.Lock()
		sv.clients[id] = ch
		sv.mu.Unlock()
	})
	if err != nil {
		return
	}
	defer sv.remove(id)
	slog.Info("remote: client connected", "client", id)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if errors.Log(conn.WriteJSON(first)) != nil {
		return
	}
	for {
		select {
		case sel := <-ch:
			if errors.Log(conn.WriteJSON(sel)) != nil {
				return
			}
		case <-closed:
			slog.Info("remote: client disconnected", "client", id)
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (sv *Server) remove(id uuid.UUID) {
	sv.mu.Lock()
	delete(sv.clients, id)
	sv.mu.Unlock()
}

// broadcast sends the selection to every client. A client that is not
// keeping up misses the update.
func (sv *Server) broadcast(sel Selection) {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	for id, ch := range sv.clients {
		select {
		case ch <- sel:
		default:
			slog.Warn("remote: dropped selection update", "client", id)
		}
	}
}

// Clients returns the number of connected event clients.
func (sv *Server) Clients() int {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return len(sv.clients)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errors.Log(json.NewEncoder(w).Encode(v))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
