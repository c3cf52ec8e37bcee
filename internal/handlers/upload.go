package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"hallwaymonitor/internal/logger"
)

const maxUploadSize = 512 << 20 // 512 MB

var allowedVideoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

// UploadVideoHandler receives a multipart video upload and stores it in
// the uploads directory under its original base name.
func UploadVideoHandler(uploadDir string, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Invalid upload", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("video")
		if err != nil {
			http.Error(w, "Missing video file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		name := filepath.Base(header.Filename)
		ext := strings.ToLower(filepath.Ext(name))
		if !allowedVideoExtensions[ext] {
			http.Error(w, "Unsupported video format: "+ext, http.StatusBadRequest)
			return
		}

		if err := os.MkdirAll(uploadDir, 0755); err != nil {
			logger.Error("Failed to create upload directory: %v", err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		dst, err := os.Create(filepath.Join(uploadDir, name))
		if err != nil {
			logger.Error("Failed to create upload file: %v", err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}
		defer dst.Close()

		if _, err := io.Copy(dst, file); err != nil {
			logger.Error("Failed to write upload: %v", err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}

		logger.Info("Video uploaded: %s", name)
		http.Redirect(w, r, "/upload?file="+name, http.StatusSeeOther)
	}
}

// ListUploadsHandler returns the uploaded video filenames as JSON.
func ListUploadsHandler(uploadDir string, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := os.ReadDir(uploadDir)
		if err != nil {
			if os.IsNotExist(err) {
				writeJSON(w, []string{})
				return
			}
			logger.Error("Failed to read upload directory: %v", err)
			http.Error(w, "Failed to list uploads", http.StatusInternalServerError)
			return
		}

		files := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if allowedVideoExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, entry.Name())
			}
		}

		writeJSON(w, files)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
