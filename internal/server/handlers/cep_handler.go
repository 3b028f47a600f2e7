package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/pkg/clients/viacep"
)

// CEPHandler proxies postal code lookups for the customer form.
type CEPHandler struct {
	client *viacep.Client
	logger *zap.Logger
}

// NewCEPHandler constructs the HTTP handler adapter.
func NewCEPHandler(client *viacep.Client, logger *zap.Logger) *CEPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CEPHandler{client: client, logger: logger}
}

// Lookup resolves the :cep path parameter to an address.
func (h *CEPHandler) Lookup(c *gin.Context) {
	address, err := h.client.Lookup(c.Request.Context(), c.Param("cep"))
	switch {
	case errors.Is(err, viacep.ErrInvalidCEP):
		c.JSON(http.StatusBadRequest, gin.H{"error": "CEP inválido"})
	case errors.Is(err, viacep.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "CEP não encontrado"})
	case err != nil:
		h.logger.Warn("cep lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "falha ao consultar o CEP"})
	default:
		c.JSON(http.StatusOK, address)
	}
}
