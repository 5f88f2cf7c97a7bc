package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"famguard/internal/errors"
	"famguard/internal/metrics"
	"famguard/internal/middleware"
	"famguard/internal/models"
	"famguard/internal/service"
	"famguard/internal/tracing"
	"famguard/internal/validation"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router  *mux.Router
	logger  *logrus.Logger
	cfg     *models.Config
	groups  *service.GroupManager
	queue   *service.FraudQueue
	results *service.FraudResultStore
	server  *http.Server
}

func NewServer(cfg *models.Config, groups *service.GroupManager, queue *service.FraudQueue, results *service.FraudResultStore, logger *logrus.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		logger:  logger,
		cfg:     cfg,
		groups:  groups,
		queue:   queue,
		results: results,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.ObservabilityMiddleware(s.logger))

	// Health check and metrics
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Fraud check
	api.HandleFunc("/fraud/check", s.handleCheckFraud()).Methods(http.MethodPost)

	// Group lifecycle
	group := api.PathPrefix("/group").Subrouter()
	group.HandleFunc("/create", s.handleCreateGroup()).Methods(http.MethodPost)
	group.HandleFunc("/join", s.handleJoinGroup()).Methods(http.MethodPost)
	group.HandleFunc("/complete", s.handleCompleteGroup()).Methods(http.MethodPost)
	group.HandleFunc("/kick", s.handleKickMember()).Methods(http.MethodPost)
	group.HandleFunc("/cancel", s.handleCancelGroup()).Methods(http.MethodPost)
	group.HandleFunc("/info/{userID}", s.handleGroupInfo()).Methods(http.MethodGet)
	group.HandleFunc("/pending/{userID}", s.handlePendingGroupInfo()).Methods(http.MethodGet)
	group.HandleFunc("/leave/{userID}", s.handleLeaveGroup()).Methods(http.MethodDelete)
	group.HandleFunc("/warning/{userID}", s.handleUpdateWarning()).Methods(http.MethodPut)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeoutSec) * time.Second,
	}

	s.logger.Infof("Starting server on port %d", s.cfg.Server.Port)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// writeJSON writes a successful JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps an error to the standardized HTTP error body
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := tracing.GetRequestID(r.Context())
	status := errors.HTTPStatusCode(err)

	if status >= 500 {
		s.logger.WithFields(logrus.Fields{
			service.LogFieldRequestID: requestID,
			service.LogFieldErrorCode: string(errors.GetCode(err)),
			service.LogFieldURL:       r.URL.Path,
		}).WithError(err).Error("Request failed")
	}

	s.writeJSON(w, status, errors.ToHTTPResponse(err, requestID))
}

func (s *Server) decodeBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body")
	}
	return nil
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type checkFraudRequest struct {
	Message string `json:"message"`
}

type checkFraudResponse struct {
	Result *models.RiskAssessment `json:"result"`
}

// handleCheckFraud enqueues the message for classification and holds
// the connection while polling the result store, up to the wait
// ceiling. A timeout or a failed classification both answer
// {"result": null}; timed-out work stays queued and its eventual
// result is kept for a later identical request.
func (s *Server) handleCheckFraud() http.HandlerFunc {
	pollInterval := time.Duration(s.cfg.Fraud.PollIntervalSec) * time.Second
	waitCeiling := time.Duration(s.cfg.Fraud.WaitCeilingSec) * time.Second

	return func(w http.ResponseWriter, r *http.Request) {
		var req checkFraudRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateMessage(req.Message); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.queue.Push(req.Message)
		metrics.IncrementCounter("fraud_checks_submitted_total", nil, "Messages submitted for fraud checking")

		deadline := time.NewTimer(waitCeiling)
		defer deadline.Stop()
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-deadline.C:
				metrics.IncrementCounter("fraud_check_wait_timeouts_total", nil, "Fraud check requests that hit the wait ceiling")
				s.writeJSON(w, http.StatusOK, checkFraudResponse{Result: nil})
				return
			case <-ticker.C:
				outcome, ok := s.results.Take(req.Message)
				if !ok {
					continue
				}
				if outcome.Failed {
					s.writeJSON(w, http.StatusOK, checkFraudResponse{Result: nil})
					return
				}
				s.writeJSON(w, http.StatusOK, checkFraudResponse{Result: outcome.Assessment})
				return
			}
		}
	}
}

type createGroupRequest struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	GroupName string `json:"group_name"`
}

func (s *Server) handleCreateGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGroupRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserName(req.UserName); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateGroupName(req.GroupName); err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := s.groups.CreateGroup(req.UserID, req.UserName, req.GroupName)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, result)
	}
}

type joinGroupRequest struct {
	JoinCode string `json:"join_code"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func (s *Server) handleJoinGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinGroupRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateJoinCode(req.JoinCode); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserName(req.UserName); err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := s.groups.JoinGroup(req.JoinCode, req.UserID, req.UserName)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, result)
	}
}

type userIDRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleCompleteGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userIDRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}

		summary, err := s.groups.CompleteGroup(req.UserID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, summary)
	}
}

type kickMemberRequest struct {
	UserID       string `json:"user_id"`
	TargetUserID string `json:"target_user_id"`
}

func (s *Server) handleKickMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req kickMemberRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.TargetUserID); err != nil {
			s.writeError(w, r, err)
			return
		}

		summary, err := s.groups.KickMember(req.UserID, req.TargetUserID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) handleCancelGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userIDRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateUserID(req.UserID); err != nil {
			s.writeError(w, r, err)
			return
		}

		summary, err := s.groups.CancelGroup(req.UserID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) handleGroupInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userID"]
		if err := validation.ValidateUserID(userID); err != nil {
			s.writeError(w, r, err)
			return
		}

		info, ok := s.groups.GroupInfo(userID)
		if !ok {
			s.writeError(w, r, errors.NewGroupError(errors.ErrCodeUserNotInGroup, "user is not in a group"))
			return
		}
		s.writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) handlePendingGroupInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userID"]
		if err := validation.ValidateUserID(userID); err != nil {
			s.writeError(w, r, err)
			return
		}

		info, ok := s.groups.PendingGroupInfo(userID)
		if !ok {
			s.writeError(w, r, errors.NewGroupError(errors.ErrCodeNoPendingGroup, "user has no pending group"))
			return
		}
		s.writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) handleLeaveGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userID"]
		if err := validation.ValidateUserID(userID); err != nil {
			s.writeError(w, r, err)
			return
		}

		if !s.groups.LeaveGroup(userID) {
			s.writeError(w, r, errors.NewGroupError(errors.ErrCodeUserNotInGroup, "user is not in a group"))
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"user_id": userID,
			"left":    true,
		})
	}
}

type updateWarningRequest struct {
	Count int `json:"count"`
}

func (s *Server) handleUpdateWarning() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userID"]
		if err := validation.ValidateUserID(userID); err != nil {
			s.writeError(w, r, err)
			return
		}

		var req updateWarningRequest
		if err := s.decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateWarningCount(req.Count); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.groups.SetWarningCount(userID, req.Count)
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":       userID,
			"warning_count": req.Count,
		})
	}
}
