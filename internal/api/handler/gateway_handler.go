package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tivit/users-api/internal/core/ports"
)

// GatewayHandler serves the protected resource routes by passing the request
// through to the downstream service with the shared cached credential.
// Authentication and role checks happen in the middleware chain before these
// handlers run.
type GatewayHandler struct {
	gateway ports.ExternalGateway
	log     zerolog.Logger
}

func NewGatewayHandler(gateway ports.ExternalGateway, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{gateway: gateway, log: log}
}

// User returns the user-tier downstream payload.
//
// @Summary      User resource
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /user [get]
func (h *GatewayHandler) User(c echo.Context) error {
	return h.passthrough(c, "/user")
}

// Admin returns the admin-tier downstream payload.
//
// @Summary      Admin resource
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /admin [get]
func (h *GatewayHandler) Admin(c echo.Context) error {
	return h.passthrough(c, "/admin")
}

func (h *GatewayHandler) passthrough(c echo.Context, path string) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	body, err := h.gateway.Get(c.Request().Context(), path)
	if err != nil {
		h.log.Error().Err(err).
			Str("path", path).
			Str("username", p.Username).
			Msg("downstream request failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "external service unavailable"})
	}

	return c.JSONBlob(http.StatusOK, body)
}
