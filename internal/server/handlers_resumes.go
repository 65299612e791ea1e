package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/talent-match/internal/types"
)

// maxResumeBody bounds PUT /candidates/{id}/resume request bodies
const maxResumeBody = 1 << 20

// handlePutResume stores a candidate's parsed résumé, replacing any previous one
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.pathUUID(w, r, "id", "candidate ID")
	if !ok {
		return
	}

	var input types.ParsedResumeInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResumeBody)).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resume, err := s.resumes.Ingest(r.Context(), candidateID, &input)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume":   resume,
		"eligible": resume.HasParsedData(),
	})
}

// handleDeleteResume removes a candidate's résumé from the matching pool
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.pathUUID(w, r, "id", "candidate ID")
	if !ok {
		return
	}
	if err := s.resumes.Delete(r.Context(), candidateID); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
