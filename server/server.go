/*
 * server.go, part of emperor.
 *
 * Copyright 2025 The emperor authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package server exposes the geometry normalizer and the DFTB+ job
machinery over HTTP. The API is a small JSON one: prepare a job from
pasted geometry or an uploaded POSCAR, run the solver in it, then
fetch results and artifacts. Validation failures surface as 400s
carrying the normalizer's message verbatim, so the front end can show
them to the user unchanged.
*/
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	geom "emperor"
	"emperor/dftb"
	"emperor/job"
)

// Server wires the HTTP handlers to their collaborators.
type Server struct {
	log    *zap.Logger
	store  *job.Store
	runner *dftb.Runner
	prefix string
	reader geom.StructureReader
}

// New assembles a server. prefix is the Slater-Koster parameter
// directory, reader the POSCAR structure extractor (vasp.Reader in
// production). A nil logger is replaced by a no-op one.
func New(log *zap.Logger, store *job.Store, runner *dftb.Runner, prefix string, reader geom.StructureReader) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, store: store, runner: runner, prefix: prefix, reader: reader}
}

// Handler returns the routed handler with CORS and request logging
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /param-sets", s.paramSets)
	mux.HandleFunc("POST /prepare-genformat", s.prepareGenFormat)
	mux.HandleFunc("POST /prepare-poscar", s.preparePoscar)
	mux.HandleFunc("POST /run/{job_id}", s.run)
	mux.HandleFunc("GET /results/{job_id}", s.results)
	mux.HandleFunc("GET /file/{job_id}/{filename}", s.file)
	mux.HandleFunc("GET /archive/{job_id}", s.archive)
	return s.logging(cors(mux))
}

// cors allows any origin; the service is meant to sit behind
// arbitrary front ends.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps an error to its status: normalizer rejections and bad
// requests are 400, unknown jobs and files 404, the rest 500. The
// message always goes out verbatim.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var verr *geom.Error
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, job.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
