package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// stubJob tracks one bulk validation job across the stub's lifecycle:
// Queued on creation, Processing after the file upload, Done on the
// second poll after upload.
type stubJob struct {
	ID        string
	Status    string
	Segments  int
	Processed int
	StartedAt int64
	Finished  int64
	Polls     int
}

type stubStore struct {
	mu   sync.Mutex
	jobs map[string]*stubJob
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  WARNING: This is a STUB API for local testing ONLY.      ║")
	log.Println("║  All responses are HARDCODED placeholders.                ║")
	log.Println("║                                                           ║")
	log.Println("║  Point the client at it with:                             ║")
	log.Println("║    SENDGRID_BASE_URL=http://localhost:8089/v3             ║")
	log.Println("║    SENDGRID_VALIDATION_BASE_URL=\\                         ║")
	log.Println("║      http://localhost:8089/v3/validations/email           ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")
	log.Println("")
	log.Println("Starting SendGrid STUB API (hardcoded responses)...")

	addr := os.Getenv("STUB_API_ADDR")
	if addr == "" {
		addr = ":8089"
	}

	store := &stubStore{jobs: make(map[string]*stubJob)}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"sendgrid-stub-api","warning":"THIS IS A STUB - responses are hardcoded"}`))
	})

	r.Route("/v3", func(r chi.Router) {
		r.Use(requireBearer)

		r.Post("/mail/send", func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeErrors(w, http.StatusBadRequest, "invalid JSON body", "")
				return
			}
			if _, ok := payload["personalizations"]; !ok {
				writeErrors(w, http.StatusBadRequest, "at least one personalization is required", "personalizations")
				return
			}
			w.Header().Set("X-Message-Id", uuid.New().String())
			w.WriteHeader(http.StatusAccepted)
		})

		r.Post("/validations/email", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Email  string `json:"email"`
				Source string `json:"source"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
				writeErrors(w, http.StatusBadRequest, "email is required", "email")
				return
			}
			local, host, _ := strings.Cut(req.Email, "@")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{
					"email":   req.Email,
					"verdict": "Valid",
					"score":   0.85021,
					"local":   local,
					"host":    host,
					"checks": map[string]any{
						"domain": map[string]bool{
							"has_valid_address_syntax":        true,
							"has_mx_or_a_record":              true,
							"is_suspected_disposable_address": false,
						},
						"local_part": map[string]bool{
							"is_suspected_role_address": false,
						},
						"additional": map[string]bool{
							"has_known_bounces":     false,
							"has_suspected_bounces": false,
						},
					},
					"ip_address": "192.168.1.1",
					"source":     req.Source,
				},
			})
		})

		r.Post("/validations/email/jobs", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				FileType string `json:"file_type"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeErrors(w, http.StatusBadRequest, "invalid JSON body", "")
				return
			}
			if req.FileType != "csv" && req.FileType != "zip" {
				writeErrors(w, http.StatusBadRequest, "file_type must be csv or zip", "file_type")
				return
			}

			contentType := "text/csv"
			if req.FileType == "zip" {
				contentType = "application/zip"
			}

			job := &stubJob{
				ID:        strings.ReplaceAll(uuid.New().String(), "-", "")[:26],
				Status:    "Queued",
				StartedAt: time.Now().Unix(),
			}
			store.mu.Lock()
			store.jobs[job.ID] = job
			store.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"job_id":     job.ID,
				"upload_uri": fmt.Sprintf("http://%s/stub-upload/%s", r.Host, job.ID),
				"upload_headers": []map[string]string{
					{"header": "content-type", "value": contentType},
					{"header": "x-amz-server-side-encryption", "value": "aws:kms"},
				},
			})
		})

		r.Get("/validations/email/jobs", func(w http.ResponseWriter, r *http.Request) {
			store.mu.Lock()
			result := make([]map[string]any, 0, len(store.jobs))
			for _, job := range store.jobs {
				result = append(result, map[string]any{
					"id":          job.ID,
					"status":      job.Status,
					"started_at":  job.StartedAt,
					"finished_at": job.Finished,
				})
			}
			store.mu.Unlock()

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"result": result})
		})

		r.Get("/validations/email/jobs/{jobID}", func(w http.ResponseWriter, r *http.Request) {
			jobID := chi.URLParam(r, "jobID")
			store.mu.Lock()
			job, ok := store.jobs[jobID]
			if ok {
				job.advance()
			}
			store.mu.Unlock()
			if !ok {
				writeErrors(w, http.StatusNotFound, "job not found", "job_id")
				return
			}

			// Nested shape, as the job-detail endpoint returns it
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"response": map[string]any{
					"value": map[string]any{
						"result": map[string]any{
							"id":                    job.ID,
							"status":                job.Status,
							"segments":              job.Segments,
							"segments_processed":    job.Processed,
							"is_download_available": job.Status == "Done",
							"started_at":            job.StartedAt,
							"finished_at":           job.Finished,
							"errors":                []any{},
						},
					},
				},
			})
		})
	})

	// Pre-signed upload target, outside the /v3 API path and without
	// bearer auth, like the real S3 destination.
	r.Put("/stub-upload/{jobID}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "" {
			writeErrors(w, http.StatusBadRequest, "missing content-type header", "")
			return
		}
		jobID := chi.URLParam(r, "jobID")
		store.mu.Lock()
		job, ok := store.jobs[jobID]
		if ok && job.Status == "Queued" {
			job.Status = "Processing"
			job.Segments = 3
			job.Processed = 1
		}
		store.mu.Unlock()
		if !ok {
			writeErrors(w, http.StatusNotFound, "unknown upload destination", "")
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("SendGrid stub API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// advance moves a processing job toward Done across polls so the
// 3-step flow can be exercised end to end. Must be called with the
// store lock held.
func (j *stubJob) advance() {
	if j.Status != "Processing" {
		return
	}
	j.Polls++
	if j.Polls >= 2 {
		j.Status = "Done"
		j.Processed = j.Segments
		j.Finished = time.Now().Unix()
	}
}

func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") == "" {
			writeErrors(w, http.StatusUnauthorized, "authorization required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeErrors(w http.ResponseWriter, status int, message, field string) {
	detail := map[string]string{"message": message}
	if field != "" {
		detail["field"] = field
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]string{detail}})
}
