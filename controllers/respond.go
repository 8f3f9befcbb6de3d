package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// internalError logs the failure server-side and returns the generic 500
// body. Internal detail never reaches the client.
func internalError(w http.ResponseWriter, logger logrus.FieldLogger, err error) {
	logger.WithError(err).Error("request failed")
	respondError(w, http.StatusInternalServerError, "Internal Server Error")
}
