// Package server exposes the application pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/cv-copilot/internal/application"
	"github.com/spigell/cv-copilot/internal/document"
)

const (
	// DefaultAddr is used when no listen address is configured.
	DefaultAddr = ":8080"

	shutdownTimeout = 10 * time.Second
	// Multipart overhead allowed on top of document.MaxFileSize.
	uploadOverhead = 1 << 20
)

// AnalysisRequest is the body of POST /api/v1/analyses.
type AnalysisRequest struct {
	CVText         string `json:"cvText"`
	JobDescription string `json:"jobDescription" binding:"required"`
}

// Server serves the pipeline endpoints.
type Server struct {
	engine       *gin.Engine
	orchestrator *application.Orchestrator
	logger       *zap.Logger
	version      string
}

// New builds the gin engine and registers every route.
func New(orchestrator *application.Orchestrator, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:       gin.New(),
		orchestrator: orchestrator,
		logger:       logger,
		version:      version,
	}

	s.engine.Use(requestID(), logging(logger), recovery(logger))

	api := s.engine.Group("/api/v1")
	api.GET("/health", s.health)
	api.POST("/applications", s.processApplication)
	api.POST("/documents", s.parseDocument)
	api.POST("/analyses", s.analyze)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"writer":  s.orchestrator.Writer().Name(),
	})
}

func (s *Server) processApplication(c *gin.Context) {
	var req application.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "jobDescription is required")
		return
	}

	res, err := s.orchestrator.Process(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, codeProcessingFailed, application.ErrProcessingFailed.Error())
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) analyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "jobDescription is required")
		return
	}

	cvText := req.CVText
	if cvText == "" {
		cvText = application.EmptyCVPlaceholder
	}

	analysis, err := s.orchestrator.Analyze(c.Request.Context(), cvText, req.JobDescription)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, codeProcessingFailed, application.ErrProcessingFailed.Error())
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// parseDocument validates the multipart "file" field and converts it to text. A
// conversion failure is still a 200 with success=false.
func (s *Server) parseDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, document.MaxFileSize+uploadOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusBadRequest, codeInvalidFile, document.MsgTooLarge)
			return
		}
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "multipart field \"file\" is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if v := document.Validate(header.Size, contentType, header.Filename); !v.Valid {
		respondError(c, http.StatusBadRequest, codeInvalidFile, v.Error)
		return
	}

	f, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, codeInternal, "could not read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, codeInternal, "could not read upload")
		return
	}

	res := document.Parse(c.Request.Context(), data, contentType, header.Filename)
	if !res.Success {
		s.logger.Info("document not converted",
			zap.String("request_id", requestIDFrom(c)),
			zap.String("file_name", header.Filename),
			zap.String("reason", res.Error),
		)
	}

	c.JSON(http.StatusOK, res)
}
