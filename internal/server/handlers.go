package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"meetingflow/internal/jobs"
	"meetingflow/internal/meeting"
	"meetingflow/internal/store"
)

const maxUploadBytes = 2 << 30 // 2 GiB

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

// handleProcess accepts a multipart upload with the recording under "file"
// and an optional "participants" JSON form field.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	var participants []meeting.Participant
	if raw := r.FormValue("participants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &participants); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid participants JSON")
			return
		}
	}

	if err := os.MkdirAll(s.inputDir, 0755); err != nil {
		s.logger.Error(ctx, "Create input dir: %v", err)
		s.writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	inputPath := filepath.Join(s.inputDir, uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(inputPath)
	if err != nil {
		s.logger.Error(ctx, "Stage upload: %v", err)
		s.writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(inputPath)
		s.logger.Error(ctx, "Stage upload: %v", err)
		s.writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	dst.Close()

	jobID, err := s.runner.Submit(ctx, jobs.SubmitRequest{
		InputPath:    inputPath,
		Participants: participants,
	})
	if err != nil {
		os.Remove(inputPath)
		s.logger.Error(ctx, "Submit job: %v", err)
		s.writeError(w, http.StatusInternalServerError, "job intake failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"task_id": jobID,
		"status":  string(store.StatusProcessing),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		s.logger.Error(r.Context(), "Load job %s: %v", id, err)
		s.writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}

	resp := map[string]any{"status": job.Status}
	if job.Result != nil {
		resp["result"] = job.Result
	}
	if job.FailReason != "" {
		resp["error"] = job.FailReason
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		s.logger.Error(context.Background(), "Write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
