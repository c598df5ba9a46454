package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
	"github.com/bharathvaddineniK/vicin-sub000/internal/validation"
)

// multipart form memory ceiling; anything bigger spills to disk
const maxFormMemory = 32 << 20

type AddMediaOutput struct {
	ID uuid.UUID `json:"id"`
}

// AddImageHandler ingests one image file and starts its pipeline. The item is
// created in compressing state; the client polls the session for progress.
func AddImageHandler(store *pipeline.Store, proc *pipeline.Processor, tmpDir string) http.HandlerFunc {
	return addMediaHandler(store, proc, tmpDir, model.MediaKindImage)
}

// AddVideoHandler ingests the singleton video. A second video is rejected
// before any bytes are staged.
func AddVideoHandler(store *pipeline.Store, proc *pipeline.Processor, tmpDir string) http.HandlerFunc {
	return addMediaHandler(store, proc, tmpDir, model.MediaKindVideo)
}

func addMediaHandler(store *pipeline.Store, proc *pipeline.Processor, tmpDir string, kind model.MediaKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, store)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart form", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "A \"file\" part is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		localPath, err := stageUpload(tmpDir, file, header)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not stage uploaded file", err)
			return
		}

		var item model.MediaItem
		if kind == model.MediaKindVideo {
			item, err = sess.AddVideo(localPath)
		} else {
			item, err = sess.AddImage(localPath)
		}
		if err != nil {
			// rejected at the call site: nothing was queued, drop the staged file
			_ = os.Remove(localPath)
			WritePipelineError(w, err)
			return
		}

		// the pipeline outlives this request but keeps its identity values
		go proc.Run(context.WithoutCancel(r.Context()), sess, item.ID)

		RespondJSON(w, http.StatusAccepted, AddMediaOutput{ID: item.ID})
		log.Printf("✅  Accepted %s %s into session #%s", kind, item.ID, sess.ID())
	}
}

type VideoPickerInput struct {
	Loading *bool `json:"loading" validate:"required"`
}

// VideoPickerHandler flags the window between tapping "add video" and the
// picker resolving, so the session reads as in-flight meanwhile.
func VideoPickerHandler(store *pipeline.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, store)
		if !ok {
			return
		}

		var in VideoPickerInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON body", err)
			return
		}
		if err := validation.ValidateStruct(in); err != nil {
			details, jsonErr := validation.ErrorsToJson(err)
			if jsonErr != nil {
				WriteError(w, http.StatusInternalServerError, "Could not render validation errors", jsonErr)
				return
			}
			WriteError(w, http.StatusUnprocessableEntity, details, nil)
			return
		}

		sess.SetVideoPickerLoading(*in.Loading)
		w.WriteHeader(http.StatusNoContent)
	}
}

// stageUpload copies the multipart part into the pipeline's temp dir,
// preserving the original extension so mime resolution keeps working.
func stageUpload(tmpDir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		return "", errors.New("uploaded file has no extension")
	}

	out, err := os.CreateTemp(tmpDir, "ingest_*"+ext)
	if err != nil {
		return "", fmt.Errorf("could not create staging file: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("could not write staging file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("could not close staging file: %w", err)
	}
	return out.Name(), nil
}
