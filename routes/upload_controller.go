package routes

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"formflow-server/app"
	"formflow-server/httpx"
	"formflow-server/log"
)

const maxUploadBytes = 50 << 20

// Upload receives one multipart file, stores it under the configured
// directory and answers with an opaque url plus mime type and size.
// Per-question size/type limits are enforced later at answer capture,
// against the owning question's rules.
func Upload(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "upload.parse_form")
			return
		}
		defer file.Close()

		head := make([]byte, 512)
		n, err := file.Read(head)
		if err != nil && err != io.EOF {
			httpx.LogInternalError(w, "upload.read", err)
			return
		}
		mimeType := http.DetectContentType(head[:n])

		if err = os.MkdirAll(app.UploadDir, 0o755); err != nil {
			httpx.LogInternalError(w, "upload.mkdir", err)
			return
		}

		name := uuid.Must(uuid.NewV4()).String() + filepath.Ext(header.Filename)
		dst, err := os.Create(filepath.Join(app.UploadDir, name))
		if err != nil {
			httpx.LogInternalError(w, "upload.create", err)
			return
		}
		defer dst.Close()

		size, err := dst.Write(head[:n])
		if err != nil {
			httpx.LogInternalError(w, "upload.write", err)
			return
		}
		rest, err := io.Copy(dst, file)
		if err != nil {
			httpx.LogInternalError(w, "upload.write", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"url":       "/uploads/" + name,
			"mimeType":  mimeType,
			"sizeBytes": int64(size) + rest,
		})
	}
}
