package handlers

import (
	"context"
	"errors"
	"server/internal/app"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
	"strings"

	bankInfoController "server/internal/controllers/bankinfo"
	contactController "server/internal/controllers/contact"
	contractController "server/internal/controllers/contracts"
	conversionController "server/internal/controllers/conversions"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FormHandler struct {
	Handler
	writeLock   *services.WriteLockService
	contracts   contractController.ContractController
	bankInfo    bankInfoController.BankInfoController
	conversions conversionController.ConversionReportController
	contact     contactController.ContactController
}

func NewFormHandler(app app.App, router fiber.Router) *FormHandler {
	log := logger.New("handlers").File("form_handler")
	return &FormHandler{
		writeLock:   app.WriteLockService,
		contracts:   *app.ContractController,
		bankInfo:    *app.BankInfoController,
		conversions: *app.ConversionController,
		contact:     *app.ContactController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *FormHandler) Register() {
	form := h.router.Group("/form")
	form.Post("/", h.write)
	form.Get("/", h.query)
}

// write dispatches one write action. Parsing and field validation happen
// before the lock so malformed or invalid requests never block writers.
func (h *FormHandler) write(c *fiber.Ctx) error {
	log := h.log.Function("write")
	requestID := uuid.NewString()

	var req WriteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse write request", err, "requestID", requestID)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse("Invalid JSON"))
	}

	if message, ok := validate(req); !ok {
		log.Warn("write request failed validation", "requestID", requestID, "action", req.Action, "message", message)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(message))
	}

	var message string
	err := h.writeLock.Execute(c.UserContext(), func(ctx context.Context) error {
		switch req.Action {
		case ActionContract:
			_, err := h.contracts.Submit(ctx, req)
			return err

		case ActionUpdatePaymentStatus:
			return h.contracts.ConfirmPayment(ctx, req)

		case ActionContact:
			return h.contact.Send(ctx, req)

		case ActionRegisterBankInfo:
			result, err := h.bankInfo.Register(ctx, req)
			if err != nil {
				return err
			}
			if result == services.UpsertUpdated {
				message = "Bank info updated"
			} else {
				message = "Bank info registered"
			}
			return nil

		case ActionSubmitConversionRepo:
			if err := h.conversions.Submit(ctx, req); err != nil {
				return err
			}
			message = "Conversion report submitted"
			return nil
		}

		// validate already rejected unknown actions
		return ErrRecordNotFound
	})
	if err != nil {
		log.Er("write action failed", err, "requestID", requestID, "action", req.Action)
		return respondError(c, err)
	}

	log.Info("write action handled", "requestID", requestID, "action", req.Action)
	return c.JSON(OkResponse(message))
}

// query serves the one pure-read lookup. It never takes the write lock.
func (h *FormHandler) query(c *fiber.Ctx) error {
	log := h.log.Function("query")

	action := strings.TrimSpace(c.Query("action"))
	if action != "checkBankInfo" {
		return c.JSON(OkResponse("GET received"))
	}

	response, err := h.bankInfo.CheckRegistration(c.UserContext(), c.Query("partnerName"))
	if err != nil {
		log.Er("bank info lookup failed", err, "partnerName", c.Query("partnerName"))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Lookup failed"))
	}

	return c.JSON(response)
}

// validate rejects requests that must not reach the lock: unknown actions
// and missing required fields.
func validate(req WriteRequest) (string, bool) {
	switch req.Action {
	case ActionContract, ActionContact, ActionSubmitConversionRepo:
		return "", true

	case ActionUpdatePaymentStatus:
		if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Email) == "" {
			return "name or email is required", false
		}
		return "", true

	case ActionRegisterBankInfo:
		if strings.TrimSpace(req.PartnerName) == "" {
			return "partnerName required", false
		}
		return "", true
	}

	return "Unknown action: " + req.Action, false
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		message := strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(message))

	case errors.Is(err, ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse("Record not found"))

	case errors.Is(err, ErrSheetNotFound):
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Sheet not found"))

	case errors.Is(err, ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse("Lock acquisition timed out"))
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal error"))
}
