// Package mockbackend is the development stub server standing in for the
// real records backend. It implements the exact HTTP surface the client
// consumes, including authorization rejection, so the full session lifecycle
// can be exercised locally.
package mockbackend

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"iusearch/model"
	validatorx "iusearch/utils/validator"
)

type Server struct {
	secret   []byte
	users    map[string]seedUser
	people   []*model.Record
	vehicles []*model.Record
}

// NewHandler builds the stub router. All routes live under /api to match the
// client's development base URL; everything except login requires a bearer
// token.
func NewHandler(jwtSecret string) http.Handler {
	s := &Server{
		secret:   []byte(jwtSecret),
		users:    seedUsers(),
		people:   seedPeople(),
		vehicles: seedVehicles(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/search/people", s.SearchPeople).Methods(http.MethodPost)
	r.HandleFunc("/api/search/vehicles", s.SearchVehicles).Methods(http.MethodPost)
	r.HandleFunc("/api/records/{id}", s.RecordDetails).Methods(http.MethodGet)

	r.Use(LoggingMiddleware())
	r.Use(s.AuthMiddleware())

	return r
}

// Login checks the seeded credentials and issues a signed token plus the
// user-info blob.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, ok := s.users[req.Username]
	if !ok || !user.checkPassword(req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, err := s.issueToken(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token, User: user.info})
}

// SearchPeople matches the query against the seeded people records.
func (s *Server) SearchPeople(w http.ResponseWriter, r *http.Request) {
	var req model.PeopleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "query and searchType are required")
		return
	}

	results := matchRecords(s.people, req.Query, string(req.SearchType))
	writeJSON(w, http.StatusOK, searchPayload(results))
}

// SearchVehicles matches the query against the seeded vehicle records.
func (s *Server) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	var req model.VehicleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	results := matchRecords(s.vehicles, req.Query, "")
	writeJSON(w, http.StatusOK, searchPayload(results))
}

// RecordDetails returns one record by id, scoped by the type query param.
func (s *Server) RecordDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	dataset := s.people
	if r.URL.Query().Get("type") == "vehicles" {
		dataset = s.vehicles
	}

	for _, rec := range dataset {
		if recID, ok := rec.Identifier(); ok && recID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Record not found.")
}

func (s *Server) issueToken(username string) (string, error) {
	jti, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        jti.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// matchRecords does a case-insensitive substring scan over record fields.
// A phone search only considers phone-ish fields; everything else scans all
// string fields.
func matchRecords(dataset []*model.Record, query, searchType string) []*model.Record {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := []*model.Record{}
	for _, rec := range dataset {
		for _, key := range rec.Keys() {
			if searchType == "phone" && !strings.Contains(key, "phone") {
				continue
			}
			value, _ := rec.Get(key)
			text, ok := value.(string)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(text), query) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return matched
}

func searchPayload(results []*model.Record) map[string]any {
	return map[string]any{
		"results": results,
		"total":   len(results),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
