package httpserver

import (
	"errors"
	"net/http"

	"dutyfree-pos/internal/checkout"
	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/service/terminal"
	"dutyfree-pos/internal/session"

	"github.com/gin-gonic/gin"
)

// statusError is an upstream Sales API failure.
type statusError interface {
	error
	StatusCode() int
	ServerMessage() string
}

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// writeError maps service errors to a status and a message for the cashier.
func (h *handlers) writeError(c *gin.Context, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("request failed")
	}
	c.JSON(status, body)
}

func errorStatus(err error) (int, errorResponse) {
	var cerr *checkout.Error
	if errors.As(err, &cerr) {
		body := errorResponse{Message: checkout.Notification(cerr), Kind: cerr.Kind.String()}
		switch {
		case errors.Is(cerr, checkout.ErrInProgress):
			return http.StatusConflict, body
		case cerr.Kind == checkout.KindValidation, cerr.Kind == checkout.KindRejection:
			return http.StatusUnprocessableEntity, body
		default:
			return http.StatusBadGateway, body
		}
	}

	switch {
	case errors.Is(err, terminal.ErrCartLocked):
		return http.StatusConflict, errorResponse{Message: "Un paiement est déjà en cours"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Message: "Introuvable"}
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return http.StatusBadRequest, errorResponse{Message: "Devise non prise en charge"}
	case errors.Is(err, domain.ErrUnsupportedPaymentMethod):
		return http.StatusBadRequest, errorResponse{Message: "Moyen de paiement non pris en charge"}
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest, errorResponse{Message: "Produit invalide"}
	case errors.Is(err, session.ErrNotAuthenticated):
		return http.StatusUnauthorized, errorResponse{Message: "Non connecté"}
	}

	var serr statusError
	if errors.As(err, &serr) {
		if serr.StatusCode() == http.StatusUnauthorized {
			return http.StatusUnauthorized, errorResponse{Message: "Session expirée, veuillez vous reconnecter"}
		}
		msg := serr.ServerMessage()
		if msg == "" {
			msg = http.StatusText(serr.StatusCode())
		}
		return http.StatusBadGateway, errorResponse{Message: msg}
	}
	return http.StatusInternalServerError, errorResponse{Message: "Erreur interne"}
}
