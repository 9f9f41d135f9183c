package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"youthwell/internal/app"
	"youthwell/internal/util"
	"youthwell/pkg/domain"
)

// multipart framing overhead on top of the media payload itself
const uploadOverhead = 1 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user domain.User) {
	maxUpload := s.app.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+uploadOverhead)

	file, header, err := r.FormFile("media")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	if header.Size > maxUpload {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	var relatedJournalID *int64
	if raw := r.FormValue("relatedJournalId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid relatedJournalId")
			return
		}
		relatedJournalID = &id
	}

	media, err := s.app.UploadMedia(r.Context(), user.ID, app.UploadInput{
		Reader:           file,
		Size:             header.Size,
		OriginalName:     header.Filename,
		MimeType:         header.Header.Get("Content-Type"),
		RelatedJournalID: relatedJournalID,
	})
	if err != nil {
		if errors.Is(err, app.ErrUnsupportedMediaType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		util.LoggerFromContext(r.Context()).Error("upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "File upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"file":    mediaView(media),
	})
}

// Streaming is public by filename; a bearer token, when sent, only tags the
// access log with the viewer.
func (s *Server) handleStreamMedia(w http.ResponseWriter, r *http.Request, viewer domain.User) {
	filename := r.PathValue("filename")
	media, blob, size, err := s.app.OpenMedia(r.Context(), filename)
	if err != nil {
		writeStoreError(w, r, err, "File not found")
		return
	}
	defer blob.Close()
	if viewer.ID != 0 {
		util.LoggerFromContext(r.Context()).Debug("media streamed", "filename", filename, "viewer", viewer.ID)
	}

	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" {
		w.Header().Set("Content-Type", media.MimeType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, blob)
		return
	}

	start, end, ok := parseRange(rangeHeader, size)
	if !ok {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		writeError(w, http.StatusRequestedRangeNotSatisfiable, "Range not satisfiable")
		return
	}
	if _, err := blob.Seek(start, io.SeekStart); err != nil {
		util.LoggerFromContext(r.Context()).Error("seek failed", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "File streaming failed")
		return
	}

	length := end - start + 1
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Content-Type", media.MimeType)
	w.WriteHeader(http.StatusPartialContent)
	_, _ = io.CopyN(w, blob, length)
}

// parseRange accepts a single "bytes=start-end" or "bytes=start-" range.
// Anything else, including suffix and multi-part ranges, is unsatisfiable.
func parseRange(header string, size int64) (start, end int64, ok bool) {
	spec, found := strings.CutPrefix(header, "bytes=")
	if !found || strings.Contains(spec, ",") {
		return 0, 0, false
	}
	startRaw, endRaw, found := strings.Cut(spec, "-")
	if !found || startRaw == "" {
		return 0, 0, false
	}
	start, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil || start < 0 || start >= size {
		return 0, 0, false
	}
	end = size - 1
	if endRaw != "" {
		end, err = strconv.ParseInt(endRaw, 10, 64)
		if err != nil || end < start {
			return 0, 0, false
		}
		if end >= size {
			end = size - 1
		}
	}
	return start, end, true
}

func (s *Server) handleMediaInfo(w http.ResponseWriter, r *http.Request, user domain.User) {
	filename := r.PathValue("filename")
	media, err := s.app.MediaInfo(user.ID, filename)
	if err != nil {
		if errors.Is(err, app.ErrForbidden) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		writeStoreError(w, r, err, "File not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"file": media})
}

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request, user domain.User) {
	files, err := s.app.ListMedia(user.ID)
	if err != nil {
		writeStoreError(w, r, err, "File not found")
		return
	}
	views := make([]mediaResponse, 0, len(files))
	for _, f := range files {
		views = append(views, mediaView(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": views})
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}
	if err := s.app.DeleteMedia(r.Context(), id, user.ID); err != nil {
		writeStoreError(w, r, err, "File not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// mediaResponse decorates file metadata with its URLs.
type mediaResponse struct {
	domain.MediaFile
	DownloadURL string `json:"downloadUrl"`
	StreamURL   string `json:"streamUrl"`
}

func mediaView(f domain.MediaFile) mediaResponse {
	url := "/api/media/" + f.Filename
	return mediaResponse{MediaFile: f, DownloadURL: url, StreamURL: url}
}
