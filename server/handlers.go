/*
 * handlers.go, part of emperor.
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

package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	geom "emperor"
	"emperor/dftb"
	"emperor/job"
)

// defaultParamSet is used when a prepare request names none.
const defaultParamSet = "mio-1-1"

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"DFTB_PREFIX": s.prefix,
		"param_sets":  dftb.AvailableParamSets(s.prefix),
	})
}

func (s *Server) paramSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"param_sets": dftb.AvailableParamSets(s.prefix),
	})
}

func (s *Server) paramSetFrom(r *http.Request) (string, error) {
	set := r.FormValue("param_set")
	if set == "" {
		set = defaultParamSet
	}
	return set, dftb.EnsureParamSet(s.prefix, set)
}

// prepare writes the artifacts every prepared job shares and renders
// the control file. extra holds artifacts specific to one input kind.
func (s *Server) prepare(g *geom.NormalizedGeometry, paramSet string, extra map[string]string) (string, error) {
	id, err := s.store.Create()
	if err != nil {
		return "", err
	}
	hsd, err := dftb.RenderInput(g, paramSet)
	if err != nil {
		return "", err
	}
	if err := s.store.WriteFile(id, dftb.InputFile, []byte(hsd)); err != nil {
		return "", err
	}
	for name, text := range extra {
		if err := s.store.WriteFile(id, name, []byte(text)); err != nil {
			return "", err
		}
	}
	return id, s.store.EnsureParamLink(id)
}

func (s *Server) prepareGenFormat(w http.ResponseWriter, r *http.Request) {
	paramSet, err := s.paramSetFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	raw := r.FormValue("genformat")
	g, err := geom.Normalize(raw, s.reader)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.prepare(g, paramSet, map[string]string{
		"GENFORMAT.txt": g.CanonicalText,
		"INPUT_RAW.txt": geom.StripFences(raw),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":         id,
		"prepared":       true,
		"elements":       g.Elements(),
		"species_order":  g.SpeciesOrder,
		"param_set":      paramSet,
		"detected_input": g.Kind.String(),
	})
}

func (s *Server) preparePoscar(w http.ResponseWriter, r *http.Request) {
	paramSet, err := s.paramSetFrom(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing POSCAR upload under 'file'"})
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		s.fail(w, err)
		return
	}
	text := string(raw)
	g, err := geom.NormalizePOSCAR(text, s.reader)
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := s.prepare(g, paramSet, map[string]string{"POSCAR": text})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":        id,
		"prepared":      true,
		"elements":      g.Elements(),
		"species_order": g.SpeciesOrder,
		"param_set":     paramSet,
	})
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("job_id")
	if _, err := s.store.ReadFile(id, dftb.InputFile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prepare first"})
		return
	}
	if err := s.store.EnsureParamLink(id); err != nil {
		s.fail(w, err)
		return
	}
	dir, err := s.store.Dir(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.runner.Run(r.Context(), dir)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id": id,
		"ok":     res.OK,
		"rc":     res.ExitCode,
	})
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("job_id")
	out := map[string]any{"job_id": id, "files": []string{}}
	if files, err := s.store.List(id); err == nil {
		out["files"] = files
		if dir, err := s.store.Dir(id); err == nil {
			if e, ok := dftb.TotalEnergy(dir); ok {
				out["total_energy_Hartree"] = e
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) file(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("job_id")
	name := r.PathValue("filename")
	if _, err := s.store.Dir(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	data, err := s.store.ReadFile(id, name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "file not found"})
		return
	}
	if job.TextExtensions[filepath.Ext(name)] {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	_, _ = w.Write(data)
}

func (s *Server) archive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("job_id")
	if _, err := s.store.Dir(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".tar.gz"))
	if err := s.store.Archive(w, id); err != nil {
		// headers are gone already; all we can do is log
		s.log.Error("archive failed", zap.String("job_id", id), zap.Error(err))
	}
}
